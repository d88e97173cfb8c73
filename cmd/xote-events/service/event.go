package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"
)

// Collection is the document store the service runs against.
// Missing ids are reported as model.ErrNotFound.
type Collection interface {
	Find(ctx context.Context, q query.Query) ([]model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Insert(ctx context.Context, event model.Event) (*model.Event, error)
	FindByIDAndReplace(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)
	DeleteByID(ctx context.Context, id string) (*model.Event, error)
	DeleteMany(ctx context.Context, f query.Filter) (int64, error)
}

// StorageError wraps a collection failure. It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type ListResult struct {
	Items []model.Event
	Count int
}

type EventService struct {
	events         Collection
	contextTimeout time.Duration
	recentLimitMax int
}

type Option func(*EventService)

// WithTimeout bounds every storage call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *EventService) {
		s.contextTimeout = d
	}
}

// WithRecentLimitMax caps the limit accepted by ListRecent. Zero disables the cap.
func WithRecentLimitMax(n int) Option {
	return func(s *EventService) {
		s.recentLimitMax = n
	}
}

func NewEventService(events Collection, opts ...Option) *EventService {
	s := &EventService{
		events:         events,
		recentLimitMax: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func storageErr(op string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}

func (s *EventService) list(ctx context.Context, op string, q query.Query) (ListResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.events.Find(ctx, q)
	if err != nil {
		return ListResult{}, storageErr(op, err)
	}
	if events == nil {
		events = []model.Event{}
	}

	return ListResult{Items: events, Count: len(events)}, nil
}

func (s *EventService) ListAll(ctx context.Context) (ListResult, error) {
	return s.list(ctx, "list all", query.All())
}

// ListByPaymentType lists paid events for kind "paid" and free events otherwise.
func (s *EventService) ListByPaymentType(ctx context.Context, kind string) (ListResult, error) {
	return s.list(ctx, "list by payment type", query.ByPayment(kind == "paid"))
}

func (s *EventService) ListPaid(ctx context.Context) (ListResult, error) {
	return s.list(ctx, "list paid", query.ByPayment(true))
}

func (s *EventService) ListFree(ctx context.Context) (ListResult, error) {
	return s.list(ctx, "list free", query.ByPayment(false))
}

func (s *EventService) ListByPriceAsc(ctx context.Context) (ListResult, error) {
	return s.list(ctx, "list by price asc", query.ByPrice(false))
}

func (s *EventService) ListByPriceDesc(ctx context.Context) (ListResult, error) {
	return s.list(ctx, "list by price desc", query.ByPrice(true))
}

func (s *EventService) ListByDateAsc(ctx context.Context, startDate, endDate string) (ListResult, error) {
	q, err := query.ByDate(startDate, endDate, false)
	if err != nil {
		return ListResult{}, err
	}
	return s.list(ctx, "list by date asc", q)
}

func (s *EventService) ListByDateDesc(ctx context.Context, startDate, endDate string) (ListResult, error) {
	q, err := query.ByDate(startDate, endDate, true)
	if err != nil {
		return ListResult{}, err
	}
	return s.list(ctx, "list by date desc", q)
}

// ListByType is the one listing where no match is an error: it returns
// model.ErrNotFound instead of an empty result.
func (s *EventService) ListByType(ctx context.Context, eventType string) (ListResult, error) {
	result, err := s.list(ctx, "list by type", query.ByType(eventType))
	if err != nil {
		return ListResult{}, err
	}
	if result.Count == 0 {
		return ListResult{}, model.ErrNotFound
	}
	return result, nil
}

// ListRecent returns the newest events. limit is the raw request value.
func (s *EventService) ListRecent(ctx context.Context, limit string) (ListResult, error) {
	return s.list(ctx, "list recent", query.Recent(limit, s.recentLimitMax))
}

func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("get by id", err)
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, req model.EventCreateRequest) (*model.Event, error) {
	event, err := model.ValidateCreate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.events.Insert(ctx, event)
	if err != nil {
		return nil, storageErr("create", err)
	}
	return created, nil
}

// Update validates the supplied fields and replaces them atomically.
// An update carrying no fields returns the stored event unchanged.
func (s *EventService) Update(ctx context.Context, id string, req model.EventUpdateRequest) (*model.Event, error) {
	patch, err := model.ValidateUpdate(req)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.events.FindByIDAndReplace(ctx, id, patch)
	if err != nil {
		return nil, storageErr("update", err)
	}
	return updated, nil
}

func (s *EventService) DeleteByID(ctx context.Context, id string) (*model.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.events.DeleteByID(ctx, id)
	if err != nil {
		return nil, storageErr("delete by id", err)
	}
	return deleted, nil
}

func (s *EventService) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.events.DeleteMany(ctx, query.Filter{})
	if err != nil {
		return 0, storageErr("delete all", err)
	}
	return n, nil
}
