package handler

import (
	"time"

	"mkononi/internal/database"
	"mkononi/internal/infrastructure/cache"
	"mkononi/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports the database as mandatory and the cache as advisory:
// a missing cache degrades performance, a missing database is an outage.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx := c.Context()

	status := fiber.StatusOK
	dbState := "up"
	if h.db == nil {
		dbState = "down"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		dbState = "down"
		status = fiber.StatusServiceUnavailable
	}

	cacheState := "up"
	if h.cache == nil {
		cacheState = "down"
	} else if err := h.cache.Ping(ctx); err != nil {
		cacheState = "down"
	}

	data := map[string]any{
		"database": dbState,
		"cache":    cacheState,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}
	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
