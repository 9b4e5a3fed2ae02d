package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(start time.Time) (*Gate, *time.Time) {
	clock := start
	gate := NewGate(NewMemoryStore(), time.Hour)
	gate.now = func() time.Time { return clock }
	return gate, &clock
}

func TestAdmitStartsSessionOnFirstAttempt(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gate, _ := newTestGate(begin)

	require.NoError(t, gate.Admit(ctx, "kiosk:abc"))

	info, err := gate.Info(ctx, "kiosk:abc")
	require.NoError(t, err)
	assert.True(t, info.HasSession)
	assert.Equal(t, begin, info.StartedAt)
	assert.False(t, info.IsExpired)
	assert.Equal(t, int64(3600), info.RemainingSeconds)
}

func TestAdmitWithinWindow(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gate, clock := newTestGate(begin)

	require.NoError(t, gate.Admit(ctx, "table:5"))

	*clock = begin.Add(59 * time.Minute)
	assert.NoError(t, gate.Admit(ctx, "table:5"))
}

func TestAdmitRejectsAfterWindow(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gate, clock := newTestGate(begin)

	require.NoError(t, gate.Admit(ctx, "table:5"))

	*clock = begin.Add(61 * time.Minute)
	err := gate.Admit(ctx, "table:5")
	require.Error(t, err)

	var expired *ExpiredError
	require.ErrorAs(t, err, &expired)
	assert.Equal(t, begin, expired.StartedAt)
	assert.Contains(t, err.Error(), begin.Format(time.RFC3339))

	// Expired does not auto-reset; later attempts keep failing.
	*clock = begin.Add(3 * time.Hour)
	assert.Error(t, gate.Admit(ctx, "table:5"))
}

func TestResetStartsFreshWindow(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gate, clock := newTestGate(begin)

	require.NoError(t, gate.Admit(ctx, "kiosk:abc"))
	*clock = begin.Add(2 * time.Hour)
	require.Error(t, gate.Admit(ctx, "kiosk:abc"))

	require.NoError(t, gate.Reset(ctx, "kiosk:abc"))
	assert.NoError(t, gate.Admit(ctx, "kiosk:abc"))

	info, err := gate.Info(ctx, "kiosk:abc")
	require.NoError(t, err)
	assert.Equal(t, begin.Add(2*time.Hour), info.StartedAt)
}

func TestInfoExpired(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gate, clock := newTestGate(begin)

	require.NoError(t, gate.Admit(ctx, "kiosk:abc"))
	*clock = begin.Add(90 * time.Minute)

	info, err := gate.Info(ctx, "kiosk:abc")
	require.NoError(t, err)
	assert.True(t, info.HasSession)
	assert.True(t, info.IsExpired)
	assert.Equal(t, int64(0), info.RemainingSeconds)
}

func TestInfoNoSession(t *testing.T) {
	gate, _ := newTestGate(time.Now())
	info, err := gate.Info(context.Background(), "kiosk:none")
	require.NoError(t, err)
	assert.False(t, info.HasSession)
	assert.False(t, info.IsExpired)
}
