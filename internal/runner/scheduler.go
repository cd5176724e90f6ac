package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"bot_executor/internal/models"
	"bot_executor/pkg/logger"
)

var ErrCycleInProgress = errors.New("cycle already in progress")

type CycleRunner interface {
	RunCycle(ctx context.Context) ([]models.ActionResult, error)
}

// CycleRecorder получает итог каждого цикла (health state).
type CycleRecorder interface {
	RecordCycle(at time.Time, results []models.ActionResult, err error)
}

// Scheduler запускает циклы по таймеру и по внешнему триггеру.
// Два цикла одновременно не идут: пересекающийся запуск отклоняется.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	recorder CycleRecorder

	running sync.Mutex
}

func NewScheduler(r CycleRunner, interval time.Duration, rec CycleRecorder) *Scheduler {
	return &Scheduler{runner: r, interval: interval, recorder: rec}
}

func (s *Scheduler) RunOnce(ctx context.Context) ([]models.ActionResult, error) {
	if !s.running.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer s.running.Unlock()

	results, err := s.runner.RunCycle(ctx)
	if s.recorder != nil {
		s.recorder.RecordCycle(time.Now(), results, err)
	}
	return results, err
}

// Run блокирует до отмены ctx. Первый цикл, сразу при старте.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	_, err := s.RunOnce(ctx)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		logger.Warn("scheduler: previous cycle still running, tick skipped")
	case err != nil:
		logger.Error("scheduler: cycle aborted: %v", err)
	}
}
