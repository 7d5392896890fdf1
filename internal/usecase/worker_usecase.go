package usecase

import (
	"context"
	"strings"

	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
)

type RegisterWorkerInput struct {
	FullName           string
	PhoneNumber        string
	Location           string
	Skills             []string
	ExperienceLevel    string
	LanguagePreference string
	PreferredJobTypes  []string
}

type WorkerUsecase interface {
	// Register is lookup-or-create by phone. The boolean reports whether
	// a new profile was created; an existing profile is returned
	// untouched.
	Register(ctx context.Context, in RegisterWorkerInput) (worker.Worker, bool, error)
	GetByID(ctx context.Context, id int64) (worker.Worker, error)
}

type Workers struct {
	workers repository.WorkerRepository
}

func NewWorkerUsecase(workers repository.WorkerRepository) *Workers {
	return &Workers{workers: workers}
}

func (u *Workers) Register(ctx context.Context, in RegisterWorkerInput) (worker.Worker, bool, error) {
	phone := strings.TrimSpace(in.PhoneNumber)
	name := strings.TrimSpace(in.FullName)
	if phone == "" || name == "" {
		return worker.Worker{}, false, ErrInvalidInput
	}
	if in.ExperienceLevel != "" && !worker.ValidExperienceLevel(in.ExperienceLevel) {
		return worker.Worker{}, false, ErrInvalidInput
	}
	for _, t := range in.PreferredJobTypes {
		if !job.ValidType(t) {
			return worker.Worker{}, false, ErrInvalidInput
		}
	}

	return u.workers.CreateOrGetByPhone(ctx, phone, repository.WorkerDefaults{
		FullName:           name,
		Location:           strings.TrimSpace(in.Location),
		Skills:             in.Skills,
		ExperienceLevel:    in.ExperienceLevel,
		LanguagePreference: in.LanguagePreference,
		PreferredJobTypes:  in.PreferredJobTypes,
	})
}

func (u *Workers) GetByID(ctx context.Context, id int64) (worker.Worker, error) {
	if id <= 0 {
		return worker.Worker{}, repository.ErrWorkerNotFound
	}
	return u.workers.GetByID(ctx, id)
}
