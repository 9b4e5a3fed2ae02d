package session

import (
	"context"
	"fmt"
	"time"
)

// ExpiredError rejects order attempts after the session window has elapsed.
// It carries the original start time for the customer-facing message.
type ExpiredError struct {
	StartedAt time.Time
	Window    time.Duration
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("ordering session expired: started at %s, window is %s",
		e.StartedAt.Format(time.RFC3339), e.Window)
}

// Info is the polling shape for the session endpoint.
type Info struct {
	HasSession       bool      `json:"hasSession"`
	StartedAt        time.Time `json:"startedAt,omitempty"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	IsExpired        bool      `json:"isExpired"`
}

// Gate enforces the rolling ordering window per session key. The check is
// evaluated lazily on each order attempt and is advisory: there is no lock,
// and a race between two attempts near the boundary only affects UX.
type Gate struct {
	store  Store
	window time.Duration
	now    func() time.Time
}

func NewGate(store Store, window time.Duration) *Gate {
	return &Gate{store: store, window: window, now: time.Now}
}

// retention keeps expired sessions visible well past the window, so an
// expired key stays expired instead of silently resetting when it ages out.
func (g *Gate) retention() time.Duration {
	return 24 * g.window
}

// Admit stamps the session start on the first attempt under a key and
// rejects attempts made more than one window after that start. An expired
// session stays expired until Reset.
func (g *Gate) Admit(ctx context.Context, key string) error {
	start, ok, err := g.store.GetStart(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return g.store.SetStart(ctx, key, g.now().UTC(), g.retention())
	}
	if g.now().UTC().Sub(start) > g.window {
		return &ExpiredError{StartedAt: start, Window: g.window}
	}
	return nil
}

func (g *Gate) Info(ctx context.Context, key string) (Info, error) {
	start, ok, err := g.store.GetStart(ctx, key)
	if err != nil {
		return Info{}, err
	}
	if !ok {
		return Info{}, nil
	}
	elapsed := g.now().UTC().Sub(start)
	info := Info{HasSession: true, StartedAt: start}
	if elapsed > g.window {
		info.IsExpired = true
	} else {
		info.RemainingSeconds = int64((g.window - elapsed).Seconds())
	}
	return info, nil
}

// Reset clears a session key. Kiosk keys reset when the customer revisits
// the landing page; table keys reset only by staff action.
func (g *Gate) Reset(ctx context.Context, key string) error {
	return g.store.Delete(ctx, key)
}
