package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"

	"github.com/google/uuid"
)

// MemoryEventRepo keeps events in process memory. It evaluates queries with
// query.Filter.Matches and query.Sort.Less.
type MemoryEventRepo struct {
	mu     sync.RWMutex
	events map[string]model.Event
	now    func() time.Time
}

func NewMemoryEventRepo() *MemoryEventRepo {
	return NewMemoryEventRepoWithClock(func() time.Time { return time.Now().UTC() })
}

// NewMemoryEventRepoWithClock stamps created_at/updated_at using now.
func NewMemoryEventRepoWithClock(now func() time.Time) *MemoryEventRepo {
	return &MemoryEventRepo{
		events: map[string]model.Event{},
		now:    now,
	}
}

func (r *MemoryEventRepo) Find(ctx context.Context, q query.Query) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := []model.Event{}
	for _, e := range r.events {
		if q.Filter.Matches(e) {
			events = append(events, copyEvent(e))
		}
	}

	if q.Sort != nil {
		s := *q.Sort
		sort.SliceStable(events, func(i, j int) bool {
			return s.Less(events[i], events[j])
		})
	} else {
		// Map order is random; keep insertion order for unsorted listings.
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		})
	}

	if q.Limit > 0 && len(events) > q.Limit {
		events = events[:q.Limit]
	}

	return events, nil
}

func (r *MemoryEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	e = copyEvent(e)
	return &e, nil
}

func (r *MemoryEventRepo) Insert(ctx context.Context, event model.Event) (*model.Event, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	event.ID = id.String()
	event.CreatedAt = now
	event.UpdatedAt = now
	r.events[event.ID] = copyEvent(event)

	return &event, nil
}

func (r *MemoryEventRepo) FindByIDAndReplace(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	e = patch.Apply(e)
	e.UpdatedAt = r.now()
	r.events[id] = e

	e = copyEvent(e)
	return &e, nil
}

func (r *MemoryEventRepo) DeleteByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	delete(r.events, id)

	return &e, nil
}

func (r *MemoryEventRepo) DeleteMany(ctx context.Context, f query.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.events {
		if f.Matches(e) {
			delete(r.events, id)
			n++
		}
	}

	return n, nil
}

func (r *MemoryEventRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyEvent(e model.Event) model.Event {
	if e.Price != nil {
		price := *e.Price
		e.Price = &price
	}
	return e
}
