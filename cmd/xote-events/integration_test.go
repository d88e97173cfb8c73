package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/query"
	"xote-events-backend/cmd/xote-events/repository"
	"xote-events-backend/cmd/xote-events/service"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Skip integration tests if not in integration test environment
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=1 to run.")
	}

	var cfg EnvCfg
	require.NoError(t, envconfig.Process("XOTE", &cfg))

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(&model.Event{})
	require.NoError(t, err, "Failed to migrate test database")

	db.Exec("TRUNCATE TABLE events")

	return db
}

func teardownTestDB(t *testing.T, db *gorm.DB) {
	db.Exec("TRUNCATE TABLE events")

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func TestIntegration_EventLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	ctx := context.Background()
	events := service.NewEventService(repository.NewEventRepo(db))

	pay := true
	price := 30.0
	created, err := events.Create(ctx, model.EventCreateRequest{
		ImageURL:       "https://img.example.com/a.png",
		Title:          "Forró na praça",
		Description:    "Open air night",
		Date:           "15-01-2024",
		Time:           "20:30",
		Type:           "festival",
		Pay:            &pay,
		Price:          &price,
		LocalGoogleURL: "maps.app.goo.gl/a",
	})
	require.NoError(t, err)

	got, err := events.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "15-01-2024", model.FormatDate(got.Date))
	assert.Equal(t, 30.0, *got.Price)

	inRange, err := events.ListByDateAsc(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 1, inRange.Count)

	outOfRange, err := events.ListByDateAsc(ctx, "2024-02-01", "")
	require.NoError(t, err)
	assert.Zero(t, outOfRange.Count)

	free := false
	updated, err := events.Update(ctx, created.ID, model.EventUpdateRequest{Pay: &free})
	require.NoError(t, err)
	assert.False(t, updated.Pay)
	assert.Nil(t, updated.Price)

	var stored model.Event
	require.NoError(t, db.Take(&stored, "id = ?", created.ID).Error)
	assert.Nil(t, stored.Price, "price column must be cleared")

	_, err = events.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = events.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, err := events.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_RecentOrdering(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	ctx := context.Background()
	repo := repository.NewEventRepo(db)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, model.Event{Title: title, Type: "festival"})
		require.NoError(t, err)
	}

	recent, err := repo.Find(ctx, query.Recent("2", 100))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)
}

func TestIntegration_HTTP(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	cfg := testConfig()
	e := newServer(repository.NewEventRepo(db), cfg, quietLogger())

	rec := serve(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPost, "/xote/post", validEventJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodGet, "/xote/paid/desc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data model.ListPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Data.Count)
	assert.Equal(t, "Forró na praça", response.Data.Items[0].Title)
}
