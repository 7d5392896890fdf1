package handler

import (
	"errors"
	"strconv"

	"mkononi/internal/delivery/http/dto"
	"mkononi/internal/delivery/http/middleware"
	"mkononi/internal/pkg/response"
	"mkononi/internal/pkg/validation"
	"mkononi/internal/repository"
	"mkononi/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WorkerHandler struct {
	uc usecase.WorkerUsecase
}

func NewWorkerHandler(uc usecase.WorkerUsecase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

func (h *WorkerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Register)
}

func (h *WorkerHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id", h.GetByID)
}

// Register is lookup-or-create: posting the same phone twice returns
// the existing profile with 200 instead of 201.
func (h *WorkerHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterWorkerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	w, created, err := h.uc.Register(c.Context(), usecase.RegisterWorkerInput{
		FullName:           req.FullName,
		PhoneNumber:        req.PhoneNumber,
		Location:           req.Location,
		Skills:             req.Skills,
		ExperienceLevel:    req.ExperienceLevel,
		LanguagePreference: req.LanguagePreference,
		PreferredJobTypes:  req.PreferredJobTypes,
	})
	if err != nil {
		return mapWorkerUsecaseError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, dto.FromWorker(w))
}

func (h *WorkerHandler) GetByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	w, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapWorkerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromWorker(w))
}

func mapWorkerUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repository.ErrWorkerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Worker not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
