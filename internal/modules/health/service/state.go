package service

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"bot_executor/internal/models"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastCycleOK   atomic.Bool
	lastCycleUnix atomic.Int64 // unix seconds

	mu          sync.RWMutex
	lastSummary map[models.Outcome]int
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// RecordCycle фиксирует итог цикла. Первый цикл (даже неудачный) делает сервис ready.
func (s *State) RecordCycle(at time.Time, results []models.ActionResult, err error) {
	s.lastCycleUnix.Store(at.Unix())
	s.lastCycleOK.Store(err == nil)

	s.mu.Lock()
	s.lastSummary = models.Summary(results)
	s.mu.Unlock()

	s.SetReady(true)
}

func (s *State) LastCycleOK() bool { return s.lastCycleOK.Load() }

func (s *State) LastCycle() time.Time {
	u := s.lastCycleUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) LastSummary() map[models.Outcome]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.lastSummary)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
