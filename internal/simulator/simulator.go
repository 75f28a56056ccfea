// Package simulator drives the fake activity stream.
//
// A Simulator alternates between normal operation, where every iteration picks
// a task, warning or error to show, and retrying a task that an earlier error
// left pending. It holds at most one pending task at a time.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"fakelog/internal/catalog"
	"fakelog/internal/display"
	"fakelog/internal/logger"
	"fakelog/internal/metrics"
)

// Source is the subset of *rand.Rand the simulator draws from.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeTask
	OutcomeWarning
	OutcomeError
	OutcomeRetryRecovered
	OutcomeRetryFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTask:
		return "task"
	case OutcomeWarning:
		return "warning"
	case OutcomeError:
		return "error"
	case OutcomeRetryRecovered:
		return "retry-recovered"
	case OutcomeRetryFailed:
		return "retry-failed"
	default:
		return "idle"
	}
}

type Simulator struct {
	out     display.Emitter
	rng     Source
	sleep   Sleeper
	metrics *metrics.RunMetrics

	pending *catalog.Task
}

// New builds a Simulator writing to out. A nil rng falls back to a randomly
// seeded PCG source, a nil sleep to SleepContext and a nil rm to fresh metrics.
func New(out display.Emitter, rng Source, sleep Sleeper, rm *metrics.RunMetrics) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if sleep == nil {
		sleep = SleepContext
	}
	if rm == nil {
		rm = metrics.New("")
	}
	return &Simulator{out: out, rng: rng, sleep: sleep, metrics: rm}
}

func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pending returns the task waiting to be retried, if any.
func (s *Simulator) Pending() (catalog.Task, bool) {
	if s.pending == nil {
		return catalog.Task{}, false
	}
	return *s.pending, true
}

func (s *Simulator) Metrics() *metrics.RunMetrics {
	return s.metrics
}

// Run steps until ctx is cancelled. Cancellation is a normal stop and
// returns nil; only output failures are reported.
func (s *Simulator) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		outcome, err := s.Step(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}

		// A task that failed again is retried without the usual pause.
		if outcome == OutcomeRetryFailed {
			continue
		}

		pause := s.inclusive(1, 5)
		if err := s.sleep(ctx, seconds(pause)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Step runs exactly one iteration: the pending retry if there is one,
// otherwise one randomly selected branch.
func (s *Simulator) Step(ctx context.Context) (Outcome, error) {
	s.metrics.Iterations++

	if s.pending != nil {
		return s.retryPending(ctx)
	}

	switch choice := s.rng.IntN(10); {
	case choice >= 0 && choice <= 5:
		s.metrics.Tasks++
		return OutcomeTask, s.runTask()
	case choice >= 6 && choice <= 8:
		s.metrics.Warnings++
		return OutcomeWarning, s.runWarning()
	case choice == 9:
		s.metrics.Errors++
		return OutcomeError, s.runError(ctx)
	default:
		return OutcomeIdle, nil
	}
}

func (s *Simulator) retryPending(ctx context.Context) (Outcome, error) {
	task := *s.pending
	s.metrics.Retries++

	if err := s.emit(display.LevelInfo, fmt.Sprintf("Retrying failed task: %s...", task.Failure), display.Green); err != nil {
		return OutcomeIdle, err
	}
	if err := s.sleep(ctx, seconds(s.between(2, 5))); err != nil {
		return OutcomeIdle, err
	}

	if s.rng.IntN(2) == 0 {
		if err := s.emit(display.LevelInfo, "    └─ "+task.Success, display.Green); err != nil {
			return OutcomeIdle, err
		}
		s.pending = nil
		s.metrics.Recovered++
		logger.Log.Printf("[Simulator] Pending task %q recovered", task.Failure)
		return OutcomeRetryRecovered, nil
	}

	if err := s.emit(display.LevelError, fmt.Sprintf("%s failed again.", task.Failure), display.Red); err != nil {
		return OutcomeIdle, err
	}
	s.metrics.FailedAgain++
	return OutcomeRetryFailed, nil
}

func (s *Simulator) runTask() error {
	command := catalog.Commands[s.rng.IntN(len(catalog.Commands))]

	// Each sub-line draws its number only after the previous line is out.
	lines := []struct {
		message func() string
		color   display.Color
	}{
		{func() string { return fmt.Sprintf("%s...", command) }, display.Green},
		{func() string { return fmt.Sprintf("    ├─ Processing batch %d", s.between(1000, 9999)) }, display.White},
		{func() string { return fmt.Sprintf("    ├─ Loaded %d records from cache", s.between(50, 500)) }, display.White},
		{func() string { return fmt.Sprintf("    └─ Operation completed in %dms", s.between(20, 150)) }, display.White},
	}
	for _, l := range lines {
		if err := s.emit(display.LevelInfo, l.message(), l.color); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) runWarning() error {
	warning := catalog.Warnings[s.rng.IntN(len(catalog.Warnings))]

	if err := s.emit(display.LevelWarning, warning, display.Yellow); err != nil {
		return err
	}
	if err := s.emit(display.LevelWarning, fmt.Sprintf("    ├─ Retrying in %ds", s.between(3, 10)), display.White); err != nil {
		return err
	}
	return s.emit(display.LevelWarning, "    └─ System monitoring engaged", display.White)
}

func (s *Simulator) runError(ctx context.Context) error {
	task := catalog.Errors[s.rng.IntN(len(catalog.Errors))]

	if err := s.emit(display.LevelError, task.Failure, display.Red); err != nil {
		return err
	}

	retries := s.inclusive(1, 3)
	for attempt := 1; attempt <= retries; attempt++ {
		wait := s.between(2, 6)
		s.metrics.RetryAttempts++
		if err := s.emit(display.LevelError, fmt.Sprintf("    ├─ Attempt %d: Retrying in %ds", attempt, wait), display.White); err != nil {
			return err
		}
		if err := s.sleep(ctx, seconds(wait)); err != nil {
			return err
		}
	}

	// Final attempt: one side leaves the task pending for the next iteration.
	if s.rng.IntN(2) == 0 {
		if err := s.emit(display.LevelError, "    ├─ Forced process restart initiated...", display.Red); err != nil {
			return err
		}
		if err := s.emit(display.LevelError, "    └─ Re-attempting the same task.", display.Red); err != nil {
			return err
		}
		s.pending = &task
		s.metrics.Deferred++
		logger.Log.Printf("[Simulator] Task %q deferred after %d attempt(s)", task.Failure, retries)
		return nil
	}

	if err := s.emit(display.LevelInfo, "    ├─ Forced process restart initiated...", display.Green); err != nil {
		return err
	}
	if err := s.emit(display.LevelInfo, "    └─ "+task.Success, display.Green); err != nil {
		return err
	}
	s.metrics.Resolved++
	return nil
}

func (s *Simulator) emit(level display.Level, message string, c display.Color) error {
	if err := s.out.Emit(level, message, c); err != nil {
		return err
	}
	s.metrics.Lines++
	return nil
}

// between draws from [lo, hi).
func (s *Simulator) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo)
}

// inclusive draws from [lo, hi].
func (s *Simulator) inclusive(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
