package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
)

func TestMockLogger_RecordsLevels(t *testing.T) {
	l := NewMockLogger()
	l.Debug("d")
	l.Info("loaded", logging.Int("records", 3))
	l.Warn("lookup failed")
	l.Error("e")

	msgs := l.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "info", msgs[1].Level)
	assert.Equal(t, 3, msgs[1].Field("records"))
	assert.Nil(t, msgs[1].Field("absent"))
	assert.True(t, l.HasMessage("warn", "lookup"))
	assert.False(t, l.HasMessage("info", "lookup"))
	assert.Len(t, l.ByLevel("error"), 1)
}

func TestMockLogger_ChildrenShareRecord(t *testing.T) {
	l := NewMockLogger()
	child := l.Named("mining").With(logging.String("run_id", "r-1")).Named("resolve")
	child.Info("started")
	l.Info("parent")

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "mining.resolve", msgs[0].Logger)
	assert.Equal(t, "r-1", msgs[0].Field("run_id"))
	assert.Nil(t, msgs[1].Field("run_id"))
}

func TestMockLogger_Clear(t *testing.T) {
	l := NewMockLogger()
	l.Info("x")
	l.Clear()
	assert.Empty(t, l.Messages())
	assert.NoError(t, l.Sync())
}

//Personal.AI order the ending
