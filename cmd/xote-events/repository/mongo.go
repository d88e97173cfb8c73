package repository

import (
	"context"
	"errors"
	"time"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const eventsCollection = "events"

type MongoEventRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoEventRepo(client *mongo.Client, database string) *MongoEventRepo {
	return &MongoEventRepo{
		client: client,
		coll:   client.Database(database).Collection(eventsCollection),
	}
}

func (r *MongoEventRepo) Find(ctx context.Context, q query.Query) ([]model.Event, error) {

	cursor, err := r.coll.Find(ctx, mongoFilter(q.Filter), mongoFindOptions(q))
	if err != nil {
		return nil, err
	}

	events := []model.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *MongoEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {

	var event model.Event

	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *MongoEventRepo) Insert(ctx context.Context, event model.Event) (*model.Event, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	// Mongo stores milliseconds; truncate so the returned copy matches a later read.
	now := time.Now().UTC().Truncate(time.Millisecond)
	event.ID = id.String()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *MongoEventRepo) FindByIDAndReplace(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {

	var event model.Event

	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		mongoUpdate(patch, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *MongoEventRepo) DeleteByID(ctx context.Context, id string) (*model.Event, error) {

	var event model.Event

	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *MongoEventRepo) DeleteMany(ctx context.Context, f query.Filter) (int64, error) {

	result, err := r.coll.DeleteMany(ctx, mongoFilter(f))
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *MongoEventRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func mongoFilter(f query.Filter) bson.D {
	filter := bson.D{}
	if f.Pay != nil {
		filter = append(filter, bson.E{Key: model.FieldPay, Value: *f.Pay})
	}
	if f.Type != nil {
		filter = append(filter, bson.E{Key: model.FieldType, Value: *f.Type})
	}

	dateRange := bson.D{}
	if f.DateFrom != nil {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: *f.DateFrom})
	}
	if f.DateTo != nil {
		dateRange = append(dateRange, bson.E{Key: "$lte", Value: *f.DateTo})
	}
	if len(dateRange) > 0 {
		filter = append(filter, bson.E{Key: model.FieldDate, Value: dateRange})
	}

	return filter
}

func mongoFindOptions(q query.Query) *options.FindOptions {
	opts := options.Find()
	if q.Sort != nil {
		order := 1
		if q.Sort.Desc {
			order = -1
		}
		opts.SetSort(bson.D{{Key: q.Sort.Field, Value: order}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

// mongoUpdate sets the supplied fields and unsets a cleared price, keeping
// free events free of a stored price key.
func mongoUpdate(patch model.EventPatch, now time.Time) bson.D {
	set := bson.M{model.FieldUpdatedAt: now}
	for k, v := range patch.Fields() {
		if v == nil {
			continue
		}
		set[k] = v
	}

	update := bson.D{{Key: "$set", Value: set}}
	if patch.Price == nil && patch.ClearPrice {
		update = append(update, bson.E{Key: "$unset", Value: bson.M{model.FieldPrice: ""}})
	}

	return update
}
