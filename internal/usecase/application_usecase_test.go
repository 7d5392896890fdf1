package usecase

import (
	"context"
	"errors"
	"testing"

	"mkononi/internal/domain/application"
	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"

	"github.com/google/uuid"
)

func newApplicationFixture() (*Applications, *memWorkerRepo, *memJobRepo, *memApplicationRepo) {
	workers := &memWorkerRepo{}
	jobs := &memJobRepo{}
	apps := &memApplicationRepo{}
	return NewApplicationUsecase(workers, jobs, apps), workers, jobs, apps
}

func TestApplyRequiresExactlyOneIdentity(t *testing.T) {
	uc, _, _, _ := newApplicationFixture()
	ctx := context.Background()

	for _, in := range []ApplyInput{
		{JobID: 10},
		{JobID: 10, WorkerID: 1, WorkerPhone: "+254700000001"},
	} {
		if _, _, err := uc.Apply(ctx, in); !errors.Is(err, ErrWorkerIdentity) {
			t.Errorf("Apply(%+v) err = %v, want ErrWorkerIdentity", in, err)
		}
	}
}

func TestApplyByIDAndByPhoneHitTheSameRow(t *testing.T) {
	uc, workers, jobs, apps := newApplicationFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	jobs.jobs = []job.Job{{ID: 10, EmployerID: uuid.New(), Title: "Pipe repair", IsOpen: true}}
	ctx := context.Background()

	first, created, err := uc.Apply(ctx, ApplyInput{JobID: 10, WorkerID: 1, Channel: application.ChannelWeb})
	if err != nil {
		t.Fatalf("apply by id: %v", err)
	}
	if !created {
		t.Fatal("first apply reported created=false")
	}

	second, created, err := uc.Apply(ctx, ApplyInput{JobID: 10, WorkerPhone: "+254700000001", Channel: application.ChannelWhatsApp})
	if err != nil {
		t.Fatalf("apply by phone: %v", err)
	}
	if created {
		t.Error("second apply reported created=true")
	}
	if second.ID != first.ID {
		t.Errorf("ids differ: %d vs %d", first.ID, second.ID)
	}
	if len(apps.apps) != 1 {
		t.Errorf("applications = %d, want 1", len(apps.apps))
	}
	// The original channel survives the duplicate attempt.
	if apps.apps[0].Channel != application.ChannelWeb {
		t.Errorf("channel = %q, want web", apps.apps[0].Channel)
	}
}

func TestApplyClosedJob(t *testing.T) {
	uc, workers, jobs, _ := newApplicationFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	jobs.jobs = []job.Job{{ID: 10, Title: "Old gig", IsOpen: false}}

	if _, _, err := uc.Apply(context.Background(), ApplyInput{JobID: 10, WorkerID: 1}); !errors.Is(err, ErrJobClosed) {
		t.Errorf("err = %v, want ErrJobClosed", err)
	}
}

func TestUpdateStatusOwnership(t *testing.T) {
	uc, workers, jobs, apps := newApplicationFixture()
	owner := uuid.New()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	jobs.jobs = []job.Job{{ID: 10, EmployerID: owner, Title: "Pipe repair", IsOpen: true}}
	apps.apps = []application.Application{{ID: 1, JobID: 10, WorkerID: 1, Status: application.StatusPending}}
	ctx := context.Background()

	if err := uc.UpdateStatus(ctx, uuid.New(), 1, application.StatusAccepted); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign employer err = %v, want ErrForbidden", err)
	}
	if err := uc.UpdateStatus(ctx, owner, 1, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad status err = %v, want ErrInvalidInput", err)
	}
	if err := uc.UpdateStatus(ctx, owner, 1, application.StatusAccepted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if apps.apps[0].Status != application.StatusAccepted {
		t.Errorf("status = %q, want accepted", apps.apps[0].Status)
	}
}
