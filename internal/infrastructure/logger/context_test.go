package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextFallsBackToNop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Must be safe to use
	log.Info("ignored")
}

func TestWithCustomerID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, enriched := WithCustomerID(context.Background(), zap.New(core), "cust-42")

	enriched.Info("computed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "cust-42", fields["customer_id"])
	assert.Equal(t, "cust-42", GetCustomerID(ctx))
}

func TestGetCustomerIDMissing(t *testing.T) {
	assert.Empty(t, GetCustomerID(context.Background()))
}
