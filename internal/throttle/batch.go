package throttle

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// Schedule shapes how a Runner releases work.
type Schedule struct {
	// GroupSize is the number of items in flight together. Values below 1 run
	// every item in a single group.
	GroupSize int
	// Stagger delays the start of the j-th member of a group by j*Stagger.
	Stagger time.Duration
	// Pause separates the completion of one group from the start of the next.
	Pause time.Duration
}

// Runner executes work according to a Schedule.
type Runner struct {
	schedule Schedule
	clock    clockwork.Clock
}

// NewRunner creates a Runner. A nil clock uses real time.
func NewRunner(s Schedule, clock clockwork.Clock) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{schedule: s, clock: clock}
}

// Schedule returns the runner's schedule.
func (r *Runner) Schedule() Schedule {
	return r.schedule
}

// Map applies fn to every item and returns the results in input order.
//
// Items run group by group. Every member of a group is awaited before the
// group's outcome is decided; if any member failed, Map returns the first
// error and does not start further groups.
func Map[In, Out any](ctx context.Context, r *Runner, items []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	results := make([]Out, len(items))
	size := r.schedule.GroupSize
	if size < 1 {
		size = max(len(items), 1)
	}

	for start := 0; start < len(items); start += size {
		if start > 0 {
			if err := Sleep(ctx, r.clock, r.schedule.Pause); err != nil {
				return nil, err
			}
		}

		end := min(start+size, len(items))
		var g errgroup.Group
		for i := start; i < end; i++ {
			offset := time.Duration(i-start) * r.schedule.Stagger
			g.Go(func() error {
				if offset > 0 {
					if err := Sleep(ctx, r.clock, offset); err != nil {
						return err
					}
				}
				out, err := fn(ctx, items[i])
				if err != nil {
					return err
				}
				results[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return results, nil
}
