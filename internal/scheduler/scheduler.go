package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Poller is a job run on every tick of the schedule.
type Poller interface {
	Poll(ctx context.Context) error
}

// Scheduler manages the recurring dashboard tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Tape     Poller
	Interval time.Duration
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. Runs of a job never overlap; a tick
// that finds the previous run still busy is skipped.
func NewScheduler(ctx context.Context, tape Poller, interval time.Duration) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Tape:     tape,
		Interval: interval,
		Ctx:      ctx,
	}
}

// Spec returns the cron spec of the tape poll.
func (s *Scheduler) Spec() string {
	return fmt.Sprintf("@every %s", s.Interval)
}

// RegisterAll registers the ticker tape poll.
func (s *Scheduler) RegisterAll() error {
	if s.Interval < time.Second {
		return fmt.Errorf("poll interval %s is below one second", s.Interval)
	}
	if _, err := s.Cron.AddFunc(s.Spec(), s.tapeTask); err != nil {
		return fmt.Errorf("register tape task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Infof("scheduler started, tape every %s", s.Interval)
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunTapeNow polls the tape immediately (the poll at start).
func (s *Scheduler) RunTapeNow() {
	s.tapeTask()
}

func (s *Scheduler) tapeTask() {
	if s.Ctx.Err() != nil {
		return
	}
	// failures are logged by the tape; stale entries stay until the next tick
	_ = s.Tape.Poll(s.Ctx)
}
