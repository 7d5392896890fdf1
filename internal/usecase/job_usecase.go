package usecase

import (
	"context"
	"strings"

	"mkononi/internal/domain/job"
	"mkononi/internal/repository"

	"github.com/google/uuid"
)

type JobListParams struct {
	Location string
	Limit    int
}

type CreateJobInput struct {
	Title          string
	Description    string
	Location       string
	PayRate        float64
	RequiredSkills []string
	JobType        string
}

type JobUsecase interface {
	List(ctx context.Context, p JobListParams) ([]job.Job, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	Create(ctx context.Context, employerID uuid.UUID, in CreateJobInput) (job.Job, error)
}

type Jobs struct {
	jobs repository.JobRepository
}

func NewJobUsecase(jobs repository.JobRepository) *Jobs {
	return &Jobs{jobs: jobs}
}

func (u *Jobs) List(ctx context.Context, p JobListParams) ([]job.Job, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return u.jobs.ListOpenByLocation(ctx, strings.TrimSpace(p.Location), limit)
}

func (u *Jobs) GetByID(ctx context.Context, id int64) (job.Job, error) {
	if id <= 0 {
		return job.Job{}, repository.ErrJobNotFound
	}
	return u.jobs.GetByID(ctx, id)
}

func (u *Jobs) Create(ctx context.Context, employerID uuid.UUID, in CreateJobInput) (job.Job, error) {
	if employerID == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.PayRate < 0 {
		return job.Job{}, ErrInvalidInput
	}
	if in.JobType != "" && !job.ValidType(in.JobType) {
		return job.Job{}, ErrInvalidInput
	}

	return u.jobs.Create(ctx, job.Job{
		EmployerID:     employerID,
		Title:          title,
		Description:    in.Description,
		Location:       strings.TrimSpace(in.Location),
		PayRate:        in.PayRate,
		RequiredSkills: in.RequiredSkills,
		JobType:        in.JobType,
	})
}
