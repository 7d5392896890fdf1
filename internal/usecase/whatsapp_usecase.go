package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mkononi/internal/domain/application"
	"mkononi/internal/domain/matching"
	"mkononi/internal/repository"
	"mkononi/internal/ws"
)

// Reply strings for the WhatsApp channel. The channel carries plain
// text only, so these double as the whole user interface.
const (
	whatsAppHelpReply      = "Commands: 'register [name] [location] [skills]', 'jobs [location]', 'apply [job_id]'"
	whatsAppRegisterFormat = "Format: register [name] [location] [skills]"
	whatsAppAlreadyReply   = "You're already registered. Send 'jobs' to find work."
	whatsAppRegisterFirst  = "Please register first: register [name] [location] [skills]"
	whatsAppInvalidJob     = "Invalid job ID or you're not registered."
	whatsAppAlreadyApplied = "You already applied to this job."
)

const whatsAppJobLimit = 5

// WhatsAppUsecase routes a single inbound free-text message to an
// intent and produces the reply text. Single-shot: no state is kept
// between messages.
type WhatsAppUsecase interface {
	Handle(ctx context.Context, phone, body string) (string, error)
}

type WhatsApp struct {
	workers repository.WorkerRepository
	jobs    repository.JobRepository
	apps    repository.ApplicationRepository
	engine  *matching.Engine
}

func NewWhatsAppUsecase(
	workers repository.WorkerRepository,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	engine *matching.Engine,
) *WhatsApp {
	if engine == nil {
		engine = matching.NewEngine(nil)
	}
	return &WhatsApp{workers: workers, jobs: jobs, apps: apps, engine: engine}
}

// PhoneFromSender strips the provider prefix from the webhook From
// field ("whatsapp:+254700000001" -> "+254700000001").
func PhoneFromSender(from string) string {
	from = strings.TrimSpace(from)
	if i := strings.LastIndexByte(from, ':'); i >= 0 {
		from = from[i+1:]
	}
	return strings.TrimSpace(from)
}

// Handle dispatches on a case-insensitive prefix of the trimmed body,
// first match wins: register, jobs, apply. Anything else gets the help
// text. Only store-layer faults come back as errors; every user mistake
// is answered with a guidance reply.
func (u *WhatsApp) Handle(ctx context.Context, phone, body string) (string, error) {
	body = strings.TrimSpace(body)
	lower := strings.ToLower(body)

	switch {
	case strings.HasPrefix(lower, "register"):
		return u.handleRegister(ctx, phone, body)
	case strings.HasPrefix(lower, "jobs"):
		return u.handleJobSearch(ctx, phone, body)
	case strings.HasPrefix(lower, "apply"):
		return u.handleApply(ctx, phone, body)
	default:
		return whatsAppHelpReply, nil
	}
}

func (u *WhatsApp) handleRegister(ctx context.Context, phone, body string) (string, error) {
	args := strings.Fields(body)[1:]
	if len(args) < 3 {
		return whatsAppRegisterFormat, nil
	}

	name := args[0]
	location := args[1]
	skills := splitSkills(args[2])

	w, created, err := u.workers.CreateOrGetByPhone(ctx, phone, repository.WorkerDefaults{
		FullName: name,
		Location: location,
		Skills:   skills,
	})
	if err != nil {
		return "", err
	}
	if !created {
		return whatsAppAlreadyReply, nil
	}
	return fmt.Sprintf("Welcome %s! You're registered. Send 'jobs %s' to find work.", w.FullName, w.Location), nil
}

func (u *WhatsApp) handleJobSearch(ctx context.Context, phone, body string) (string, error) {
	w, err := u.workers.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrWorkerNotFound) {
			return whatsAppRegisterFirst, nil
		}
		return "", err
	}

	location := w.Location
	if fields := strings.Fields(body); len(fields) > 1 {
		location = strings.Join(fields[1:], " ")
	}

	jobs, err := u.jobs.ListOpenByLocation(ctx, location, whatsAppJobLimit)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return fmt.Sprintf("No jobs found in %s. Try different location.", location), nil
	}

	// Presentation follows retrieval order; no score filtering here.
	var b strings.Builder
	fmt.Fprintf(&b, "Jobs in %s:\n", location)
	for _, j := range jobs {
		score := u.engine.Score(engineWorker(w), engineJob(j))
		fmt.Fprintf(&b, "%d: %s - $%.2f (Match: %.0f%%)\n", j.ID, j.Title, j.PayRate, score*100)
	}
	b.WriteString("Reply 'apply [job_id]' to apply")
	return b.String(), nil
}

// handleApply deliberately answers every failure mode with the same
// reply: the channel gives end users no way to act on the distinction
// between a bad id, an unregistered phone, and a closed job.
func (u *WhatsApp) handleApply(ctx context.Context, phone, body string) (string, error) {
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return whatsAppInvalidJob, nil
	}
	jobID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return whatsAppInvalidJob, nil
	}

	w, err := u.workers.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrWorkerNotFound) {
			return whatsAppInvalidJob, nil
		}
		return "", err
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return whatsAppInvalidJob, nil
		}
		return "", err
	}
	if !j.IsOpen {
		return whatsAppInvalidJob, nil
	}

	app, created, err := u.apps.CreateOrGet(ctx, w.ID, j.ID, repository.ApplicationDefaults{
		Channel: application.ChannelWhatsApp,
	})
	if err != nil {
		return "", err
	}
	if !created {
		return whatsAppAlreadyApplied, nil
	}

	ws.NotifyApplicationCreated(j.EmployerID.String(), j.ID, j.Title, w.ID, app.Channel)
	return fmt.Sprintf("Applied to %s! Employer will contact you if selected.", j.Title), nil
}
