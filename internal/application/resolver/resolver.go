// Package resolver maps CAS registry numbers to SMILES strings through an
// external structure-resolution service.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// DefaultBaseURL is the public NCI/CADD chemical identifier resolver.
const DefaultBaseURL = "http://cactus.nci.nih.gov/chemical/structure"

// maxBodyBytes bounds the response body read for a single lookup.
const maxBodyBytes = 1 << 20

// IdentifierResolver turns a registry number into a SMILES string.
type IdentifierResolver interface {
	Resolve(ctx context.Context, cas string) (string, error)
}

// CactusResolver queries GET {base}/{cas}/smiles.
type CactusResolver struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a CactusResolver.
type Option func(*CactusResolver)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(r *CactusResolver) {
		if httpClient != nil {
			r.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(r *CactusResolver) {
		if timeout > 0 {
			r.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(r *CactusResolver) {
		if userAgent != "" {
			r.userAgent = userAgent
		}
	}
}

// NewCactusResolver validates baseURL and builds a resolver.  An empty
// baseURL selects DefaultBaseURL.
func NewCactusResolver(baseURL string, opts ...Option) (*CactusResolver, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeConfigInvalid, "invalid resolver base URL").
			WithDetail("base_url=" + baseURL).WithCause(err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeConfigInvalid, "resolver base URL must be absolute http(s)").
			WithDetail("base_url=" + baseURL)
	}

	r := &CactusResolver{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "sdfmine",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BaseURL returns the normalised service root.
func (r *CactusResolver) BaseURL() string { return r.baseURL }

// Resolve performs one lookup.  The key is trimmed and path-escaped; the
// returned SMILES is the trimmed response body.
func (r *CactusResolver) Resolve(ctx context.Context, cas string) (string, error) {
	key := strings.TrimSpace(cas)
	if key == "" {
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverInvalidInput, "empty registry number")
	}

	endpoint := fmt.Sprintf("%s/%s/smiles", r.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverInvalidInput, "failed to build lookup request").
			WithDetail("cas=" + key).WithCause(err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverHTTP, "lookup request failed").
			WithDetail("cas=" + key).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverHTTP, "failed to read lookup response").
			WithDetail("cas=" + key).WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverNotFound, "structure not found").
			WithDetail("cas=" + key)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", pkgerrors.Newf(pkgerrors.ErrCodeResolverHTTP, "unexpected status %d", resp.StatusCode).
			WithDetail("cas=" + key)
	}

	smiles := strings.TrimSpace(string(body))
	if smiles == "" {
		return "", pkgerrors.New(pkgerrors.ErrCodeResolverEmptyBody, "empty lookup response").
			WithDetail("cas=" + key)
	}
	return smiles, nil
}

var _ IdentifierResolver = (*CactusResolver)(nil)

//Personal.AI order the ending
