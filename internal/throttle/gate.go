// Package throttle schedules outbound provider calls: a Gate spaces single
// requests against a provider quota and a Runner fans work out in groups with
// staggered starts and pauses between groups.
package throttle

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// ErrBurstExceeded is returned when a Gate can never admit a request.
var ErrBurstExceeded = errors.New("throttle: request exceeds gate burst")

// Gate admits at most one request per interval after an initial burst.
// A nil *Gate admits everything immediately.
type Gate struct {
	limiter *rate.Limiter
	clock   clockwork.Clock
}

// NewGate returns a Gate that allows burst requests at once and then one
// request every interval. A non-positive interval disables limiting.
func NewGate(interval time.Duration, burst int, clock clockwork.Clock) *Gate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Gate{
		limiter: rate.NewLimiter(limit, max(burst, 1)),
		clock:   clock,
	}
}

// Wait blocks until the gate admits one request or ctx is done, and reports
// how long it waited.
func (g *Gate) Wait(ctx context.Context) (time.Duration, error) {
	if g == nil {
		return 0, nil
	}

	now := g.clock.Now()
	r := g.limiter.ReserveN(now, 1)
	if !r.OK() {
		return 0, ErrBurstExceeded
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return 0, nil
	}

	if err := Sleep(ctx, g.clock, delay); err != nil {
		r.CancelAt(g.clock.Now())
		return 0, err
	}
	return delay, nil
}

// Sleep pauses for d on clock, returning early with ctx.Err() when ctx is done.
func Sleep(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
