package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"mkononi/internal/domain/application"
	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"
)

func newUSSDFixture() (*USSD, *memWorkerRepo, *memJobRepo, *memApplicationRepo) {
	workers := &memWorkerRepo{}
	jobs := &memJobRepo{}
	apps := &memApplicationRepo{}
	logger := log.New(io.Discard, "", 0)
	return NewUSSDUsecase(workers, jobs, apps, logger), workers, jobs, apps
}

func TestUSSDRootMenu(t *testing.T) {
	uc, _, _, _ := newUSSDFixture()

	r := uc.Handle(context.Background(), "s1", "+254700000001", "")
	if r.Verb != VerbContinue {
		t.Errorf("verb = %q, want CON", r.Verb)
	}
	if r.Text != ussdRootMenu {
		t.Errorf("text = %q, want root menu", r.Text)
	}
	if got := r.Render(); !strings.HasPrefix(got, "CON Welcome to Mkononi") {
		t.Errorf("Render() = %q", got)
	}
}

func TestUSSDRegisterPrompt(t *testing.T) {
	uc, _, _, _ := newUSSDFixture()

	r := uc.Handle(context.Background(), "s1", "+254700000001", "1")
	if r.Verb != VerbContinue || r.Text != ussdRegisterPrompt {
		t.Errorf("reply = %+v, want CON register prompt", r)
	}
}

func TestUSSDRegisterComplete(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()

	r := uc.Handle(context.Background(), "s1", "+254700000001", "1*Jane*Nakuru*cleaning,cooking")
	if r.Verb != VerbEnd {
		t.Errorf("verb = %q, want END", r.Verb)
	}
	if want := "Welcome Jane! Registration complete."; r.Text != want {
		t.Errorf("text = %q, want %q", r.Text, want)
	}
	if workers.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", workers.createCalls)
	}
	w := workers.workers[0]
	if w.FullName != "Jane" || w.Location != "Nakuru" || len(w.Skills) != 2 {
		t.Errorf("stored worker = %+v", w)
	}
}

func TestUSSDRegisterTooFewFieldsReprompts(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()

	r := uc.Handle(context.Background(), "s1", "+254700000001", "1*Jane")
	if r.Verb != VerbContinue || r.Text != ussdRegisterReprompt {
		t.Errorf("reply = %+v, want CON reprompt", r)
	}
	if workers.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", workers.createCalls)
	}
}

func TestUSSDRegisterStoreFaultEndsSession(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()
	workers.err = errors.New("connection refused")

	r := uc.Handle(context.Background(), "s1", "+254700000001", "1*Jane*Nakuru*cleaning")
	if r.Verb != VerbEnd || r.Text != ussdRegisterFailed {
		t.Errorf("reply = %+v, want END registration-failed", r)
	}
}

func TestUSSDJobSearch(t *testing.T) {
	uc, workers, jobs, _ := newUSSDFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	jobs.jobs = []job.Job{
		{ID: 10, Title: "Pipe repair", PayRate: 1500, IsOpen: true},
		{ID: 11, Title: "House cleaning", PayRate: 800, IsOpen: true},
	}

	r := uc.Handle(context.Background(), "s1", "+254700000001", "2")
	if r.Verb != VerbContinue {
		t.Errorf("verb = %q, want CON", r.Verb)
	}
	if !strings.HasPrefix(r.Text, "Available Jobs:\n1. Pipe repair - $1500.00\n") {
		t.Errorf("text = %q", r.Text)
	}
	if !strings.Contains(r.Text, "2. House cleaning - $800.00") {
		t.Errorf("text = %q, want second job line", r.Text)
	}
}

func TestUSSDJobSearchUnregistered(t *testing.T) {
	uc, _, _, _ := newUSSDFixture()

	r := uc.Handle(context.Background(), "s1", "+254700000001", "2")
	if r.Verb != VerbEnd || r.Text != ussdRegisterFirst {
		t.Errorf("reply = %+v, want END register-first", r)
	}
}

func TestUSSDJobSearchNoJobs(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}

	r := uc.Handle(context.Background(), "s1", "+254700000001", "2")
	if r.Verb != VerbEnd || r.Text != ussdNoJobs {
		t.Errorf("reply = %+v, want END no-jobs", r)
	}
}

func TestUSSDApplications(t *testing.T) {
	uc, workers, _, apps := newUSSDFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	apps.apps = []application.Application{
		{ID: 1, JobID: 10, WorkerID: 1, Status: application.StatusPending},
		{ID: 2, JobID: 11, WorkerID: 1, Status: application.StatusAccepted},
	}
	apps.jobTitles = map[int64]string{10: "Pipe repair", 11: "House cleaning"}

	r := uc.Handle(context.Background(), "s1", "+254700000001", "3")
	if r.Verb != VerbEnd {
		t.Errorf("verb = %q, want END", r.Verb)
	}
	if !strings.Contains(r.Text, "Pipe repair: pending") || !strings.Contains(r.Text, "House cleaning: accepted") {
		t.Errorf("text = %q", r.Text)
	}
}

func TestUSSDApplicationsEmpty(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}

	r := uc.Handle(context.Background(), "s1", "+254700000001", "3")
	if r.Verb != VerbEnd || r.Text != ussdNoApplications {
		t.Errorf("reply = %+v, want END no-applications", r)
	}
}

func TestUSSDInvalidOption(t *testing.T) {
	uc, _, _, _ := newUSSDFixture()

	for _, text := range []string{"9", "2*1", "abc"} {
		r := uc.Handle(context.Background(), "s1", "+254700000001", text)
		if r.Verb != VerbEnd || r.Text != ussdInvalidOption {
			t.Errorf("Handle(%q) = %+v, want END invalid-option", text, r)
		}
	}
}

func TestUSSDFaultsAlwaysEnd(t *testing.T) {
	uc, workers, _, _ := newUSSDFixture()
	workers.err = errors.New("connection refused")

	for _, text := range []string{"2", "3"} {
		r := uc.Handle(context.Background(), "s1", "+254700000001", text)
		if r.Verb != VerbEnd {
			t.Errorf("Handle(%q) verb = %q, want END on fault", text, r.Verb)
		}
		if r.Text != ussdUnavailable {
			t.Errorf("Handle(%q) text = %q, want unavailable", text, r.Text)
		}
	}
}

func TestUSSDIsDeterministic(t *testing.T) {
	uc, workers, jobs, _ := newUSSDFixture()
	workers.workers = []worker.Worker{{ID: 1, PhoneNumber: "+254700000001"}}
	jobs.jobs = []job.Job{{ID: 10, Title: "Pipe repair", PayRate: 1500, IsOpen: true}}

	for _, text := range []string{"", "1", "2", "3"} {
		first := uc.Handle(context.Background(), "s1", "+254700000001", text)
		second := uc.Handle(context.Background(), "s2", "+254700000001", text)
		if first != second {
			t.Errorf("Handle(%q) not deterministic: %+v vs %+v", text, first, second)
		}
	}
}
