package usecase

import (
	"context"
	"errors"
	"strings"

	"mkononi/internal/domain/application"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
	"mkononi/internal/ws"

	"github.com/google/uuid"
)

var (
	// ErrWorkerIdentity: the caller must identify the worker by exactly
	// one of id or phone; both or neither is rejected.
	ErrWorkerIdentity = errors.New("exactly one of worker_id or worker_phone must be provided")
	ErrJobClosed      = errors.New("job closed")
	ErrForbidden      = errors.New("forbidden")
)

type ApplyInput struct {
	JobID       int64
	WorkerID    int64
	WorkerPhone string
	Channel     string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplyInput) (application.Application, bool, error)
	ListByPhone(ctx context.Context, phone string, limit int) ([]repository.WorkerApplication, error)
	UpdateStatus(ctx context.Context, employerID uuid.UUID, applicationID int64, status string) error
}

type Applications struct {
	workers repository.WorkerRepository
	jobs    repository.JobRepository
	apps    repository.ApplicationRepository
}

func NewApplicationUsecase(
	workers repository.WorkerRepository,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
) *Applications {
	return &Applications{workers: workers, jobs: jobs, apps: apps}
}

func (u *Applications) Apply(ctx context.Context, in ApplyInput) (application.Application, bool, error) {
	phone := strings.TrimSpace(in.WorkerPhone)
	if (in.WorkerID != 0) == (phone != "") {
		return application.Application{}, false, ErrWorkerIdentity
	}

	w, err := u.resolveWorker(ctx, in.WorkerID, phone)
	if err != nil {
		return application.Application{}, false, err
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		return application.Application{}, false, err
	}
	if !j.IsOpen {
		return application.Application{}, false, ErrJobClosed
	}

	app, created, err := u.apps.CreateOrGet(ctx, w.ID, j.ID, repository.ApplicationDefaults{
		Channel: in.Channel,
	})
	if err != nil {
		return application.Application{}, false, err
	}

	if created {
		ws.NotifyApplicationCreated(j.EmployerID.String(), j.ID, j.Title, w.ID, app.Channel)
	}
	return app, created, nil
}

func (u *Applications) ListByPhone(ctx context.Context, phone string, limit int) ([]repository.WorkerApplication, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrInvalidInput
	}
	w, err := u.workers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return u.apps.ListByWorker(ctx, w.ID, limit)
}

// UpdateStatus lets the employer who owns the job move an application
// between pending/accepted/rejected.
func (u *Applications) UpdateStatus(ctx context.Context, employerID uuid.UUID, applicationID int64, status string) error {
	if !application.ValidStatus(status) {
		return ErrInvalidInput
	}

	app, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	j, err := u.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if j.EmployerID != employerID {
		return ErrForbidden
	}

	return u.apps.UpdateStatus(ctx, applicationID, status)
}

func (u *Applications) resolveWorker(ctx context.Context, workerID int64, phone string) (worker.Worker, error) {
	if workerID != 0 {
		return u.workers.GetByID(ctx, workerID)
	}
	return u.workers.FindByPhone(ctx, phone)
}
