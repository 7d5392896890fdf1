package v1

import (
	"log"

	"mkononi/internal/config"
	"mkononi/internal/database"
	"mkononi/internal/delivery/http/handler"
	"mkononi/internal/delivery/http/middleware"
	"mkononi/internal/domain/matching"
	"mkononi/internal/infrastructure/cache"
	"mkononi/internal/pkg/jwt"
	"mkononi/internal/repository"
	"mkononi/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		d.Config.JWT.AccessSecret,
		d.Config.JWT.RefreshSecret,
		d.Config.JWT.AccessExpiresIn,
		d.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	workerRepo := repository.NewPostgresWorkerRepository(d.DB)
	jobRepo := repository.NewPostgresJobRepository(d.DB)
	appRepo := repository.NewPostgresApplicationRepository(d.DB)
	scoreRepo := repository.NewPostgresMatchScoreRepository(d.DB)
	employerRepo := repository.NewPostgresEmployerRepository(d.DB)

	engine := matching.NewEngine(nil)

	authUC := usecase.NewAuthUsecase(employerRepo, jwtSvc)
	workerUC := usecase.NewWorkerUsecase(workerRepo)
	jobUC := usecase.NewJobUsecase(jobRepo)
	appUC := usecase.NewApplicationUsecase(workerRepo, jobRepo, appRepo)
	matchUC := usecase.NewMatchingUsecase(jobRepo, workerRepo, scoreRepo, d.Cache, engine, d.Logger)
	whatsappUC := usecase.NewWhatsAppUsecase(workerRepo, jobRepo, appRepo, engine)
	ussdUC := usecase.NewUSSDUsecase(workerRepo, jobRepo, appRepo, d.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	workerHandler := handler.NewWorkerHandler(workerUC)
	jobHandler := handler.NewJobHandler(jobUC, matchUC)
	appHandler := handler.NewApplicationHandler(appUC)
	webhookHandler := handler.NewWebhookHandler(whatsappUC, ussdUC, d.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))
	workerHandler.RegisterRoutes(r.Group("/workers"))
	jobHandler.RegisterRoutes(r.Group("/jobs"))
	appHandler.RegisterRoutes(r.Group("/applications"))

	protected := r.Group("", authMw.Middleware())
	workerHandler.RegisterProtectedRoutes(protected.Group("/workers"))
	jobHandler.RegisterProtectedRoutes(protected.Group("/jobs"))
	appHandler.RegisterProtectedRoutes(protected.Group("/applications"))

	// Webhooks sit outside auth: the gateways cannot carry a bearer
	// token. Throttling stands in for authentication here.
	rateMw := middleware.NewRateLimitMiddleware(5, 10)
	webhookHandler.RegisterRoutes(r.Group("/webhooks", rateMw.Middleware()))
}
