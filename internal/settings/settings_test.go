package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/pkg/domain"
)

func TestWindowEnabled(t *testing.T) {
	w := Window{Day1Enabled: true, Day2Enabled: false}
	assert.True(t, w.Enabled(domain.Day1))
	assert.False(t, w.Enabled(domain.Day2))
	assert.False(t, w.Enabled(domain.Day(3)), "unknown day is never open")
}

func TestInMemoryStoreDefaultsBothDaysOpen(t *testing.T) {
	w, err := NewInMemoryStore().Get(context.Background())
	require.NoError(t, err)
	assert.True(t, w.Day1Enabled)
	assert.True(t, w.Day2Enabled)
}

func TestSetDayFlipsOneSwitch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	w, err := store.SetDay(ctx, domain.Day2, false)
	require.NoError(t, err)
	assert.True(t, w.Day1Enabled, "day 1 untouched")
	assert.False(t, w.Day2Enabled)

	w, err = store.SetDay(ctx, domain.Day2, true)
	require.NoError(t, err)
	assert.True(t, w.Day2Enabled)
}

func TestServicePassesThrough(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	w, err := svc.SetDay(ctx, domain.Day1, false)
	require.NoError(t, err)
	assert.False(t, w.Day1Enabled)

	w, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, w.Day1Enabled)
	assert.True(t, w.Day2Enabled)
}
