package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoFilter(t *testing.T) {
	assert.Equal(t, bson.D{}, mongoFilter(query.Filter{}))

	q, err := query.ByDate("2024-01-01", "2024-01-31", false)
	require.NoError(t, err)

	got := mongoFilter(q.Filter)
	require.Len(t, got, 1)
	assert.Equal(t, model.FieldDate, got[0].Key)
	assert.Equal(t, bson.D{
		{Key: "$gte", Value: *q.Filter.DateFrom},
		{Key: "$lte", Value: *q.Filter.DateTo},
	}, got[0].Value)

	paid := query.ByPayment(true)
	kind := "festival"
	paid.Filter.Type = &kind
	assert.Equal(t, bson.D{
		{Key: "pay", Value: true},
		{Key: "type", Value: "festival"},
	}, mongoFilter(paid.Filter))
}

func TestMongoFindOptions(t *testing.T) {
	opts := mongoFindOptions(query.Recent("3", 100))
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(3), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, opts.Sort)

	opts = mongoFindOptions(query.ByPrice(false))
	assert.Nil(t, opts.Limit)
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, opts.Sort)

	opts = mongoFindOptions(query.All())
	assert.Nil(t, opts.Sort)
}

func TestMongoUpdate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pay := false
	title := "Renamed event"

	update := mongoUpdate(model.EventPatch{Pay: &pay, Title: &title, ClearPrice: true}, now)
	require.Len(t, update, 2)

	assert.Equal(t, "$set", update[0].Key)
	assert.Equal(t, bson.M{"pay": false, "title": "Renamed event", "updated_at": now}, update[0].Value)
	assert.Equal(t, "$unset", update[1].Key)
	assert.Equal(t, bson.M{"price": ""}, update[1].Value)

	price := 12.0
	pay = true
	update = mongoUpdate(model.EventPatch{Pay: &pay, Price: &price}, now)
	require.Len(t, update, 1)
	assert.Equal(t, bson.M{"pay": true, "price": 12.0, "updated_at": now}, update[0].Value)
}

// Runs against a live server when XOTE_TEST_MONGO_URI is set.
func TestMongoEventRepo_Live(t *testing.T) {
	uri := os.Getenv("XOTE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skipping mongo test. Set XOTE_TEST_MONGO_URI to run.")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	repo := NewMongoEventRepo(client, "xote_test")
	_, err = repo.DeleteMany(ctx, query.Filter{})
	require.NoError(t, err)
	require.NoError(t, repo.Ping(ctx))

	price := 25.0
	created, err := repo.Insert(ctx, model.Event{
		Title: "Forró na praça",
		Type:  "festival",
		Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Pay:   true,
		Price: &price,
	})
	require.NoError(t, err)

	q, err := query.ByDate("2024-01-01", "2024-01-31", false)
	require.NoError(t, err)
	events, err := repo.Find(ctx, q)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)

	pay := false
	updated, err := repo.FindByIDAndReplace(ctx, created.ID, model.EventPatch{Pay: &pay, ClearPrice: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)

	_, err = repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = repo.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, err := repo.DeleteMany(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
