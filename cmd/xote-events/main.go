package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xote-events-backend/cmd/xote-events/apis"
	"xote-events-backend/cmd/xote-events/repository"
	"xote-events-backend/cmd/xote-events/service"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type EnvCfg struct {
	Port           int           `envconfig:"PORT" default:"3000"`
	StoreDriver    string        `envconfig:"STORE_DRIVER" default:"postgres"`
	StoreTimeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	RecentLimitMax int           `envconfig:"RECENT_LIMIT_MAX" default:"100"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"xote"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"xote"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
}

func (c EnvCfg) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}

type eventStore interface {
	service.Collection
	apis.Pinger
}

func loadConfig() (EnvCfg, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	var cfg EnvCfg
	err := envconfig.Process("XOTE", &cfg)
	return cfg, err
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg EnvCfg) (eventStore, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		gormLogger := logger.Default.LogMode(logger.Warn)
		if cfg.Debug {
			gormLogger = logger.Default.LogMode(logger.Info)
		}

		db, err := gorm.Open(
			postgres.Open(cfg.PostgresDSN()),
			&gorm.Config{Logger: gormLogger},
		)
		if err != nil {
			return nil, nil, err
		}

		return repository.NewEventRepo(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}

		return repository.NewMongoEventRepo(client, cfg.MongoDatabase), func() {
			client.Disconnect(context.Background())
		}, nil

	case "memory":
		return repository.NewMemoryEventRepo(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func newServer(store eventStore, cfg EnvCfg, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger(log))

	rootg := e.Group("")
	xoteg := rootg.Group("/xote")

	apis.
		NewHealthCheckAPI(store).
		Setup(rootg)

	events := service.NewEventService(
		store,
		service.WithTimeout(cfg.StoreTimeout),
		service.WithRecentLimitMax(cfg.RecentLimitMax),
	)

	apis.
		NewEventAPI(events, log, cfg.Debug).
		Setup(xoteg)

	return e
}

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	e := newServer(store, cfg, log)

	go func() {
		log.Info("app running", "port", cfg.Port, "driver", cfg.StoreDriver)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
