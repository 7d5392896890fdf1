package app

import (
	"context"
	"log"
	"time"

	"mkononi/internal/config"
	"mkononi/internal/database"
	"mkononi/internal/database/migration"
	dbpostgres "mkononi/internal/database/postgres"
	"mkononi/internal/database/seeder"
	"mkononi/internal/infrastructure/cache"
	"mkononi/internal/ws"
)

// Container holds the long-lived infrastructure: the database pool, the
// cache client and the websocket hub.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.IsDevelopment() {
		if err := seeder.New(db, logger).Run(ctx); err != nil {
			// Seed data is a convenience; a failure must not block boot.
			logger.Printf("seeding failed | err=%v", err)
		}
	}

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redis,
		Hub:    hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	ws.SetDefaultHub(nil)
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
