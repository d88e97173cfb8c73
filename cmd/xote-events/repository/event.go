package repository

import (
	"context"
	"errors"
	"time"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) Find(ctx context.Context, q query.Query) ([]model.Event, error) {

	var events []model.Event

	tx := applyFilter(
		r.db.WithContext(ctx).Model(&model.Event{}),
		q.Filter,
	)

	if q.Sort != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Sort.Field},
			Desc:   q.Sort.Desc,
		})
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	result := tx.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		Take(&event)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &event, nil
}

// Insert assigns the id and timestamps before writing the row.
func (r *EventRepo) Insert(ctx context.Context, event model.Event) (*model.Event, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event.ID = id.String()
	event.CreatedAt = now
	event.UpdatedAt = now

	result := r.db.
		WithContext(ctx).
		Create(&event)

	if result.Error != nil {
		return nil, result.Error
	}

	return &event, nil
}

// FindByIDAndReplace writes the patch and reads the row back in one
// UPDATE ... RETURNING statement.
func (r *EventRepo) FindByIDAndReplace(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {

	fields := patch.Fields()
	fields[model.FieldUpdatedAt] = time.Now().UTC()

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&events).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(events) == 0 {
		return nil, model.ErrNotFound
	}

	return &events[0], nil
}

func (r *EventRepo) DeleteByID(ctx context.Context, id string) (*model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&events)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(events) == 0 {
		return nil, model.ErrNotFound
	}

	return &events[0], nil
}

func (r *EventRepo) DeleteMany(ctx context.Context, f query.Filter) (int64, error) {

	tx := applyFilter(r.db.WithContext(ctx), f)

	// An empty filter deletes every row.
	if f == (query.Filter{}) {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	}

	result := tx.Delete(&model.Event{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *EventRepo) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func applyFilter(tx *gorm.DB, f query.Filter) *gorm.DB {
	if f.Pay != nil {
		tx = tx.Where("pay = ?", *f.Pay)
	}
	if f.Type != nil {
		tx = tx.Where("type = ?", *f.Type)
	}
	if f.DateFrom != nil {
		tx = tx.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("date <= ?", *f.DateTo)
	}
	return tx
}
