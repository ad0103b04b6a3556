// Package scheduler queues delayed state transitions on an injectable clock.
//
// The table uses it for every timed pause in a round (AI thinking time and
// the pacing pauses after a hit or stand). Production code passes
// quartz.NewReal(); tests pass a quartz.Mock and step through transitions
// with AdvanceNext.
package scheduler

import (
	rand "math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Tag is attached to every timer created by the scheduler so tests can trap them
const Tag = "scheduler"

// ID identifies a scheduled transition
type ID uint64

// Pending describes a transition that has not fired yet
type Pending struct {
	ID   ID
	Name string
	Due  time.Time
}

type entry struct {
	name  string
	due   time.Time
	timer *quartz.Timer
}

// Scheduler runs named callbacks after a delay. Callbacks run on the
// clock's goroutine; callers serialise their own state.
type Scheduler struct {
	clock  quartz.Clock
	logger *log.Logger

	mu      sync.Mutex
	nextID  ID
	pending map[ID]*entry
}

// New creates a scheduler driven by clock
func New(clock quartz.Clock, logger *log.Logger) *Scheduler {
	return &Scheduler{
		clock:   clock,
		logger:  logger.WithPrefix("scheduler"),
		pending: make(map[ID]*entry),
	}
}

// After schedules fn to run once d has elapsed
func (s *Scheduler) After(d time.Duration, name string, fn func()) ID {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	e := &entry{name: name, due: s.clock.Now().Add(d)}
	s.pending[id] = e
	s.mu.Unlock()

	timer := s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()

		if !live {
			return
		}
		s.logger.Debug("Firing transition", "name", name, "id", id)
		fn()
	}, Tag, name)

	s.mu.Lock()
	e.timer = timer
	s.mu.Unlock()

	s.logger.Debug("Scheduled transition", "name", name, "id", id, "delay", d)
	return id
}

// CancelAll stops every pending transition and returns how many were dropped
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id := range s.pending {
		if s.cancelLocked(id) {
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("Cancelled pending transitions", "count", n)
	}
	return n
}

func (s *Scheduler) cancelLocked(id ID) bool {
	e, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	if e.timer != nil {
		e.timer.Stop()
	}
	return true
}

// Len returns the number of pending transitions
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Pending lists pending transitions ordered by due time
func (s *Scheduler) Pending() []Pending {
	s.mu.Lock()
	out := make([]Pending, 0, len(s.pending))
	for id, e := range s.pending {
		out = append(out, Pending{ID: id, Name: e.name, Due: e.due})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Due.Equal(out[j].Due) {
			return out[i].ID < out[j].ID
		}
		return out[i].Due.Before(out[j].Due)
	})
	return out
}

// RandomBetween returns a duration uniformly distributed in [min, max].
// If max <= min it returns min.
func RandomBetween(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int64N(int64(max-min)+1))
}
