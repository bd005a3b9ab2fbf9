package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Default cron expressions.
const (
	DefaultCollectSchedule = "0 * * * *"
	DefaultDailySchedule   = "0 6 * * *"
)

// Scheduler runs named jobs on cron schedules. A job never overlaps itself:
// a tick that fires while the previous run is active is skipped.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

func NewScheduler(loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = Tokyo()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// guardedJob wraps a run function with a busy flag.
type guardedJob struct {
	name string
	run  func(ctx context.Context) error
	busy atomic.Bool
	log  zerolog.Logger
}

// trigger runs the job unless it is already running. It reports whether it ran.
func (g *guardedJob) trigger(ctx context.Context) bool {
	if !g.busy.CompareAndSwap(false, true) {
		g.log.Warn().Str("job", g.name).Msg("Cron skipped: job is still running")
		return false
	}
	defer g.busy.Store(false)

	start := time.Now()
	g.log.Info().Str("job", g.name).Msg("⏰ Scheduled run started")
	if err := g.run(ctx); err != nil {
		g.log.Error().Err(err).Str("job", g.name).Dur("took", time.Since(start)).Msg("❌ Scheduled run failed")
		return true
	}
	g.log.Info().Str("job", g.name).Dur("took", time.Since(start)).Msg("Scheduled run finished")
	return true
}

// Add registers run under spec.
func (s *Scheduler) Add(name, spec string, run func(ctx context.Context) error) error {
	job := &guardedJob{name: name, run: run, log: s.log}
	if _, err := s.cron.AddFunc(spec, func() { job.trigger(s.ctx) }); err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	s.log.Info().Str("job", name).Str("schedule", spec).Msg("Cron job registered")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for active ones until ctx ends, then cancels them.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	defer s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
