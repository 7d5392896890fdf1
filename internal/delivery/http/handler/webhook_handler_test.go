package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mkononi/internal/delivery/http/dto"
	"mkononi/internal/delivery/http/middleware"
	"mkononi/internal/domain/application"
	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
	"mkononi/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type semanticEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stubWorkerRepo struct {
	workers []worker.Worker
	nextID  int64
}

func (s *stubWorkerRepo) FindByPhone(_ context.Context, phone string) (worker.Worker, error) {
	for _, w := range s.workers {
		if w.PhoneNumber == phone {
			return w, nil
		}
	}
	return worker.Worker{}, repository.ErrWorkerNotFound
}

func (s *stubWorkerRepo) GetByID(_ context.Context, id int64) (worker.Worker, error) {
	for _, w := range s.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, repository.ErrWorkerNotFound
}

func (s *stubWorkerRepo) CreateOrGetByPhone(ctx context.Context, phone string, defaults repository.WorkerDefaults) (worker.Worker, bool, error) {
	if w, err := s.FindByPhone(ctx, phone); err == nil {
		return w, false, nil
	}
	s.nextID++
	w := worker.Worker{
		ID:          s.nextID,
		FullName:    defaults.FullName,
		PhoneNumber: phone,
		Location:    defaults.Location,
		Skills:      defaults.Skills,
		CreatedAt:   time.Now(),
	}
	s.workers = append(s.workers, w)
	return w, true, nil
}

func (s *stubWorkerRepo) ListAll(_ context.Context, _ int) ([]worker.Worker, error) {
	return append([]worker.Worker(nil), s.workers...), nil
}

type stubJobRepo struct {
	jobs []job.Job
}

func (s *stubJobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	for _, j := range s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (s *stubJobRepo) ListOpenByLocation(_ context.Context, text string, limit int) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for _, j := range s.jobs {
		if j.IsOpen && strings.Contains(strings.ToLower(j.Location), strings.ToLower(text)) {
			out = append(out, j)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubJobRepo) ListOpen(ctx context.Context, limit int) ([]job.Job, error) {
	return s.ListOpenByLocation(ctx, "", limit)
}

func (s *stubJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	j.ID = int64(len(s.jobs) + 1)
	s.jobs = append(s.jobs, j)
	return j, nil
}

type stubApplicationRepo struct {
	apps   []application.Application
	titles map[int64]string
}

func (s *stubApplicationRepo) CreateOrGet(_ context.Context, workerID, jobID int64, defaults repository.ApplicationDefaults) (application.Application, bool, error) {
	for _, a := range s.apps {
		if a.WorkerID == workerID && a.JobID == jobID {
			return a, false, nil
		}
	}
	a := application.Application{
		ID:        int64(len(s.apps) + 1),
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    application.StatusPending,
		Channel:   defaults.Channel,
		AppliedAt: time.Now(),
	}
	s.apps = append(s.apps, a)
	return a, true, nil
}

func (s *stubApplicationRepo) GetByID(_ context.Context, id int64) (application.Application, error) {
	for _, a := range s.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

func (s *stubApplicationRepo) ListByWorker(_ context.Context, workerID int64, limit int) ([]repository.WorkerApplication, error) {
	out := make([]repository.WorkerApplication, 0)
	for _, a := range s.apps {
		if a.WorkerID == workerID {
			out = append(out, repository.WorkerApplication{Application: a, JobTitle: s.titles[a.JobID]})
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubApplicationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps[i].Status = status
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

func newWebhookTestApp(jobs []job.Job) (*fiber.App, *stubApplicationRepo) {
	workers := &stubWorkerRepo{}
	jobRepo := &stubJobRepo{jobs: jobs}
	apps := &stubApplicationRepo{titles: map[int64]string{}}
	for _, j := range jobs {
		apps.titles[j.ID] = j.Title
	}

	logger := log.New(io.Discard, "", 0)
	whatsappUC := usecase.NewWhatsAppUsecase(workers, jobRepo, apps, nil)
	ussdUC := usecase.NewUSSDUsecase(workers, jobRepo, apps, logger)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	NewWebhookHandler(whatsappUC, ussdUC, logger).RegisterRoutes(app.Group("/webhooks"))
	return app, apps
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) semanticEnvelope {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer res.Body.Close()

	var env semanticEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != res.StatusCode {
		t.Fatalf("envelope status %d != http status %d", env.Status, res.StatusCode)
	}
	return env
}

func whatsAppMessage(t *testing.T, env semanticEnvelope) string {
	t.Helper()
	var out dto.WhatsAppReplyResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode whatsapp reply: %v", err)
	}
	return out.Message
}

func ussdResponse(t *testing.T, env semanticEnvelope) string {
	t.Helper()
	var out dto.USSDReplyResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode ussd reply: %v", err)
	}
	return out.Response
}

func TestWhatsAppWebhookFullFlow(t *testing.T) {
	app, apps := newWebhookTestApp([]job.Job{
		{ID: 1, Title: "Pipe repair", Location: "Nairobi", PayRate: 1500, RequiredSkills: []string{"plumbing"}, IsOpen: true},
	})

	send := func(body string) string {
		env := postJSON(t, app, "/webhooks/whatsapp", dto.WhatsAppInboundRequest{
			From: "whatsapp:+254700000001",
			Body: body,
		})
		if env.Status != fiber.StatusOK {
			t.Fatalf("status = %d", env.Status)
		}
		return whatsAppMessage(t, env)
	}

	if got := send("register John Nairobi plumbing"); !strings.HasPrefix(got, "Welcome John!") {
		t.Fatalf("register reply = %q", got)
	}
	if got := send("jobs"); !strings.Contains(got, "Pipe repair") {
		t.Fatalf("jobs reply = %q", got)
	}
	if got := send("apply 1"); !strings.HasPrefix(got, "Applied to Pipe repair!") {
		t.Fatalf("apply reply = %q", got)
	}
	if got := send("apply 1"); got != "You already applied to this job." {
		t.Fatalf("repeat apply reply = %q", got)
	}
	if len(apps.apps) != 1 {
		t.Fatalf("applications = %d, want 1", len(apps.apps))
	}
	if apps.apps[0].Channel != application.ChannelWhatsApp {
		t.Fatalf("channel = %q", apps.apps[0].Channel)
	}
}

func TestWhatsAppWebhookRejectsMissingSender(t *testing.T) {
	app, _ := newWebhookTestApp(nil)

	env := postJSON(t, app, "/webhooks/whatsapp", dto.WhatsAppInboundRequest{Body: "jobs"})
	if env.Status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestUSSDWebhookFullFlow(t *testing.T) {
	app, _ := newWebhookTestApp([]job.Job{
		{ID: 1, Title: "Pipe repair", Location: "Nairobi", PayRate: 1500, IsOpen: true},
	})

	send := func(text string) string {
		env := postJSON(t, app, "/webhooks/ussd", dto.USSDInboundRequest{
			SessionID:   "sess-1",
			PhoneNumber: "+254700000002",
			Text:        text,
		})
		if env.Status != fiber.StatusOK {
			t.Fatalf("status = %d", env.Status)
		}
		return ussdResponse(t, env)
	}

	if got := send(""); !strings.HasPrefix(got, "CON Welcome to Mkononi") {
		t.Fatalf("root menu = %q", got)
	}
	if got := send("1"); !strings.HasPrefix(got, "CON Enter your details:") {
		t.Fatalf("register prompt = %q", got)
	}
	if got := send("1*Jane*Nairobi*plumbing"); got != "END Welcome Jane! Registration complete." {
		t.Fatalf("register reply = %q", got)
	}
	if got := send("2"); !strings.HasPrefix(got, "CON Available Jobs:") {
		t.Fatalf("jobs reply = %q", got)
	}
	if got := send("3"); got != "END No applications yet." {
		t.Fatalf("applications reply = %q", got)
	}
}
