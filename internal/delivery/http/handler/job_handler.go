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
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs    usecase.JobUsecase
	matches usecase.MatchingUsecase
}

func NewJobHandler(jobs usecase.JobUsecase, matches usecase.MatchingUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, matches: matches}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
}

func (h *JobHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/:id/matches", h.Matches)
	r.Get("/:id/scores", h.Scores)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))

	jobs, err := h.jobs.List(c.Context(), usecase.JobListParams{
		Location: c.Query("location"),
		Limit:    limit,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobs(jobs))
}

func (h *JobHandler) GetByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	employerID, ok := c.Locals(middleware.CtxEmployerIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.Create(c.Context(), employerID, usecase.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		PayRate:        req.PayRate,
		RequiredSkills: req.RequiredSkills,
		JobType:        req.JobType,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromJob(j))
}

func (h *JobHandler) Matches(c fiber.Ctx) error {
	if _, ok := c.Locals(middleware.CtxEmployerIDKey).(uuid.UUID); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	matches, err := h.matches.JobMatches(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobMatches(id, matches))
}

// Scores returns the scores persisted by earlier match runs, without
// triggering a recompute.
func (h *JobHandler) Scores(c fiber.Ctx) error {
	if _, ok := c.Locals(middleware.CtxEmployerIDKey).(uuid.UUID); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := h.matches.PersistedScores(c.Context(), id, limit)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPersistedScores(id, rows))
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
