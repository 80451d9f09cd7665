package bootstrap_test

import (
	"context"
	"testing"

	"github.com/sourabhverman/people-hub-pro/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := bootstrap.NewStdoutAuditLogger(zap.New(core))

	logger.Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "shutting down gracefully",
		Meta:    map[string]any{"port": "3000"},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit event", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "shutting down gracefully", fields["message"])
	assert.Equal(t, map[string]any{"port": "3000"}, fields["meta"])
}

func TestStdoutAuditLogger_LogWithoutMeta(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := bootstrap.NewStdoutAuditLogger(zap.New(core))

	logger.Log(context.Background(), bootstrap.AuditLog{Action: "SERVER_START"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	_, hasMeta := entries[0].ContextMap()["meta"]
	assert.False(t, hasMeta)
}
