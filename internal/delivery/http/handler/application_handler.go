package handler

import (
	"errors"
	"strconv"

	"mkononi/internal/delivery/http/dto"
	"mkononi/internal/delivery/http/middleware"
	"mkononi/internal/domain/application"
	"mkononi/internal/pkg/response"
	"mkononi/internal/pkg/validation"
	"mkononi/internal/repository"
	"mkononi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Apply)
	r.Get("/", h.ListByPhone)
}

func (h *ApplicationHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, created, err := h.uc.Apply(c.Context(), usecase.ApplyInput{
		JobID:       req.JobID,
		WorkerID:    req.WorkerID,
		WorkerPhone: req.WorkerPhone,
		Channel:     application.ChannelWeb,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, dto.FromApplication(app))
}

func (h *ApplicationHandler) ListByPhone(c fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	apps, err := h.uc.ListByPhone(c.Context(), phone, limit)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromWorkerApplications(apps))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	employerID, ok := c.Locals(middleware.CtxEmployerIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateStatus(c.Context(), employerID, id, req.Status); err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrWorkerIdentity):
		return middleware.NewAppError(fiber.StatusBadRequest, "Provide exactly one of worker_id or worker_phone", nil, err)
	case errors.Is(err, usecase.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Job is closed", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, repository.ErrWorkerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Worker not found", nil, err)
	case errors.Is(err, repository.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, repository.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
