package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc, opts ...Option) *CactusResolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := NewCactusResolver(server.URL+"/", opts...)
	require.NoError(t, err)
	return r
}

func TestNewCactusResolver_Defaults(t *testing.T) {
	r, err := NewCactusResolver("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, r.BaseURL())
}

func TestNewCactusResolver_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "not-a-url", "http://"} {
		_, err := NewCactusResolver(raw)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeConfigInvalid), raw)
	}
}

func TestResolve_Success(t *testing.T) {
	var gotPath, gotUA string
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotUA = req.Header.Get("User-Agent")
		_, _ = w.Write([]byte("C1=NC2=C(C(=N1)N)N=CN2\n"))
	}, WithUserAgent("sdfmine-test"))

	smiles, err := r.Resolve(context.Background(), "  73-24-5 ")
	require.NoError(t, err)
	assert.Equal(t, "C1=NC2=C(C(=N1)N)N=CN2", smiles)
	assert.Equal(t, "/73-24-5/smiles", gotPath)
	assert.Equal(t, "sdfmine-test", gotUA)
}

func TestResolve_EscapesKey(t *testing.T) {
	var rawPath string
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		rawPath = req.URL.EscapedPath()
		_, _ = w.Write([]byte("C"))
	})

	_, err := r.Resolve(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/a%2Fb%20c/smiles", rawPath)
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errCode pkgerrors.ErrorCode
	}{
		{"not found", http.StatusNotFound, "Page not found (404)", pkgerrors.ErrCodeResolverNotFound},
		{"server error", http.StatusInternalServerError, "oops", pkgerrors.ErrCodeResolverHTTP},
		{"empty body", http.StatusOK, "  \n", pkgerrors.ErrCodeResolverEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			smiles, err := r.Resolve(context.Background(), "50-00-0")
			assert.Empty(t, smiles)
			assert.True(t, pkgerrors.IsCode(err, tt.errCode), "got %v", err)
		})
	}
}

func TestResolve_EmptyKey(t *testing.T) {
	r, err := NewCactusResolver("")
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "   ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeResolverInvalidInput))
}

func TestResolve_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	r, err := NewCactusResolver(base, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "50-00-0")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeResolverHTTP))
}

func TestResolve_ContextCancelled(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("C"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "50-00-0")
	assert.ErrorIs(t, err, context.Canceled)
}

//Personal.AI order the ending
