package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
	"github.com/mixmixailov/BRO247/internal/store"
)

// ErrPastDeadline is returned by Schedule when the resolved due time is not
// in the future. The caller surfaces it as a corrective message; nothing is
// persisted or armed.
var ErrPastDeadline = errors.New("due time is in the past")

// Sink delivers a fired reminder to its owner. telegram.Router implements it.
type Sink interface {
	Send(chatID int64, text string) error
}

// Scheduler owns the authoritative in-memory reminder set and one timer per
// pending reminder. The durable store is the source of truth across
// restarts; the timers are a derived cache rebuilt by Reconcile.
//
// All mutations (Schedule, Cancel, timer fire) are serialized through a
// single mutex, which is held across store writes (bounded local I/O) but
// never across delivery.
type Scheduler struct {
	store store.Reminders
	sink  Sink
	log   *zap.Logger
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]domain.Reminder
	timers  map[string]*time.Timer
}

// New creates a Scheduler. Call Reconcile before accepting schedule requests.
// The sink may be nil at construction time and set later via SetSink, because
// the Telegram router that implements it also depends on the scheduler.
func New(st store.Reminders, sink Sink, log *zap.Logger) *Scheduler {
	return &Scheduler{
		store:   st,
		sink:    sink,
		log:     log,
		now:     time.Now,
		pending: make(map[string]domain.Reminder),
		timers:  make(map[string]*time.Timer),
	}
}

// SetSink sets the delivery sink. Must be called before the first timer can
// fire, i.e. before Reconcile.
func (s *Scheduler) SetSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Reconcile loads the durable reminder set, discards entries already overdue
// (a reminder missed across a restart is not retried), persists the
// survivors and arms a timer for each. Run once at startup. A read failure
// degrades to an empty set inside the store, so startup never blocks here.
func (s *Scheduler) Reconcile(ctx context.Context) {
	now := s.now().UTC()
	all := s.store.LoadAll()

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for _, r := range all {
		if !r.DueAt.After(now) {
			dropped++
			continue
		}
		s.pending[r.ID] = r
		s.arm(r)
	}

	if dropped > 0 {
		if err := s.store.SaveAll(s.snapshot()); err != nil {
			s.log.Error("persist after dropping overdue reminders failed", zap.Error(err))
		}
	}

	s.log.Info("reminders reconciled",
		zap.Int("armed", len(s.pending)),
		zap.Int("dropped_overdue", dropped),
	)
}

// Schedule resolves the request against the clock, persists the reminder and
// arms its timer. The reminder is not considered scheduled until the store
// write succeeds.
func (s *Scheduler) Schedule(ctx context.Context, owner int64, req domain.Request) (domain.Reminder, error) {
	now := s.now().UTC()
	due := req.DueAt(now)
	if !due.After(now) {
		return domain.Reminder{}, ErrPastDeadline
	}

	r := domain.Reminder{
		ID:    uuid.NewString(),
		Owner: owner,
		DueAt: due,
		Body:  req.Body,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[r.ID] = r
	if err := s.store.SaveAll(s.snapshot()); err != nil {
		delete(s.pending, r.ID)
		return domain.Reminder{}, fmt.Errorf("persist reminder: %w", err)
	}
	s.arm(r)

	s.log.Info("reminder scheduled",
		zap.String("id", r.ID),
		zap.Int64("owner", owner),
		zap.Time("due_at", r.DueAt),
	)
	return r, nil
}

// Cancel removes the reminder from the timer set and the store iff it
// belongs to owner. A false return means nothing was removed (unknown id or
// foreign owner); that is a normal outcome, not an error.
func (s *Scheduler) Cancel(ctx context.Context, owner int64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.pending[id]
	if !ok || r.Owner != owner {
		return false
	}

	if t := s.timers[id]; t != nil {
		t.Stop()
	}
	delete(s.timers, id)
	delete(s.pending, id)

	if err := s.store.SaveAll(s.snapshot()); err != nil {
		s.log.Error("persist after cancel failed",
			zap.String("id", id), zap.Error(err))
	}

	s.log.Info("reminder cancelled", zap.String("id", id), zap.Int64("owner", owner))
	return true
}

// List returns the owner's pending reminders ordered by due time.
func (s *Scheduler) List(owner int64) []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []domain.Reminder
	for _, r := range s.pending {
		if r.Owner == owner {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].DueAt.Before(res[j].DueAt) })
	return res
}

// Stop cancels all armed timers. Pending reminders stay in the store and are
// re-armed by the next Reconcile.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// arm starts the timer for r. Caller holds s.mu.
func (s *Scheduler) arm(r domain.Reminder) {
	delay := r.DueAt.Sub(s.now().UTC())
	s.timers[r.ID] = time.AfterFunc(delay, func() { s.fire(r.ID) })
}

// fire delivers a due reminder at most once. It re-checks the reminder still
// exists under the lock (a cancel may race the expiring timer), retires it
// from memory and store, then delivers outside the lock. Delivery failure is
// logged only: there is no retry.
func (s *Scheduler) fire(id string) {
	s.mu.Lock()
	r, ok := s.pending[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	delete(s.timers, id)
	if err := s.store.SaveAll(s.snapshot()); err != nil {
		s.log.Error("persist after fire failed",
			zap.String("id", id), zap.Error(err))
	}
	sink := s.sink
	s.mu.Unlock()

	if sink == nil {
		s.log.Error("no delivery sink configured, reminder dropped", zap.String("id", id))
		return
	}
	if err := sink.Send(r.Owner, r.Body); err != nil {
		s.log.Error("reminder delivery failed",
			zap.String("id", id),
			zap.Int64("owner", r.Owner),
			zap.Error(err),
		)
		return
	}
	s.log.Info("reminder delivered", zap.String("id", id), zap.Int64("owner", r.Owner))
}

// snapshot returns the pending set ordered by due time. Caller holds s.mu.
func (s *Scheduler) snapshot() []domain.Reminder {
	res := make([]domain.Reminder, 0, len(s.pending))
	for _, r := range s.pending {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].DueAt.Before(res[j].DueAt) })
	return res
}
