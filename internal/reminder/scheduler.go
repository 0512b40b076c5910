package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"brf-backend/internal/task/domain"
	"brf-backend/internal/task/repository"
	"brf-backend/pkg/logger"
)

var log = logger.Component("reminder")

// Notifier delivers a single reminder. Dispatch is best-effort: failures are
// logged by the implementation and never retried here.
type Notifier interface {
	// Enabled is the per-pass platform condition: when false, no task in the
	// pass notifies.
	Enabled() bool
	Send(ctx context.Context, task domain.Task) error
}

// Scheduler drives the engine: a fixed-interval pass plus an extra pass
// whenever Poke signals that the task snapshot changed. Both run the same
// Evaluate, which is idempotent modulo the dedup guard, so back-to-back
// passes are safe.
type Scheduler struct {
	tasks    repository.TaskRepository
	notifier Notifier
	interval time.Duration

	cron *cron.Cron
	wake chan struct{}
	stop chan struct{}
}

func NewScheduler(tasks repository.TaskRepository, notifier Notifier, interval time.Duration, loc *time.Location) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		tasks:    tasks,
		notifier: notifier,
		interval: interval,
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start runs an immediate pass, then the periodic cadence and the wake
// listener. The scheduler runs for the lifetime of the process.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(everySpec(s.interval), func() { s.RunPass(time.Now()) }); err != nil {
		return fmt.Errorf("schedule reminder pass: %w", err)
	}

	s.RunPass(time.Now())
	s.cron.Start()

	go func() {
		for {
			select {
			case <-s.wake:
				s.RunPass(time.Now())
			case <-s.stop:
				return
			}
		}
	}()

	log.WithField("interval", s.interval.String()).Info("reminder scheduler started")
	return nil
}

// Stop halts the cadence and the wake listener.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	close(s.stop)
}

// everySpec renders the interval as a cron @every schedule. Formatting the
// duration itself keeps sub-minute and fractional intervals exact.
func everySpec(d time.Duration) string {
	return "@every " + d.String()
}

// Poke requests an extra pass. Non-blocking; a pending request is enough.
func (s *Scheduler) Poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// RunPass loads the current snapshot, evaluates it, and hands off side
// effects. Notification dispatch and patch writes are fire-and-forget: the
// pass never waits on them, and one task's failure never blocks another's.
func (s *Scheduler) RunPass(now time.Time) {
	passesTotal.Inc()

	tasks, err := s.tasks.FindAll(nil)
	if err != nil {
		log.WithError(err).Error("load tasks for evaluation")
		return
	}

	notify, patches := Evaluate(tasks, now, s.notifier.Enabled())

	for _, task := range notify {
		notificationsTotal.Inc()
		go func(t domain.Task) {
			if err := s.notifier.Send(context.Background(), t); err != nil {
				log.WithError(err).WithField("task", t.ID).Warn("reminder dispatch failed")
			}
		}(task)
	}

	for id, patch := range patches {
		if patch.Datetime != nil {
			rolloversTotal.Inc()
		}
		go func(id string, patch Patch) {
			if err := s.tasks.UpdateFields(id, patch.Fields()); err != nil {
				patchFailuresTotal.Inc()
				log.WithError(err).WithField("task", id).Warn("reminder patch write failed")
			}
		}(id, patch)
	}
}
