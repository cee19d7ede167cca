package layout

import (
	"context"
	"sync"
	"time"
)

// Runner schedules simulation ticks cooperatively on its own goroutine, one tick per
// interval, until the simulation cools or the context is cancelled. All access to the
// simulation goes through the runner's lock.
type Runner struct {
	mu       sync.Mutex
	sim      *Simulation
	interval time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	stopped bool
	wg      sync.WaitGroup
}

func NewRunner(sim *Simulation, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Runner{sim: sim, interval: interval}
}

// Start begins ticking. Cancelling ctx tears the runner down like Stop.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.ctx != nil {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.launchLocked()
}

// Restart resumes ticking after the simulation has cooled, e.g. after Reheat or a drag.
func (r *Runner) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.ctx == nil || r.ctx.Err() != nil {
		return
	}
	r.launchLocked()
}

func (r *Runner) launchLocked() {
	if r.running {
		return
	}
	r.running = true
	r.wg.Add(1)
	go r.loop(r.ctx)
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			return
		case <-ticker.C:
			r.mu.Lock()
			r.sim.Tick()
			done := r.sim.Done()
			if done {
				r.running = false
			}
			r.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Stop cancels the tick loop and waits for it to exit. A stopped runner cannot restart.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// Running reports whether a tick loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Do runs fn with exclusive access to the simulation.
func (r *Runner) Do(fn func(s *Simulation) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.sim)
}

// Snapshot copies the current positions and alpha.
func (r *Runner) Snapshot() ([]Position, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Positions(), r.sim.Alpha()
}
