package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mkononi/internal/repository"
)

// USSD protocol verbs. The gateway keeps the session alive on CON and
// tears it down on END; the rendered prefix is part of the wire
// contract, not cosmetic.
const (
	VerbContinue = "CON"
	VerbEnd      = "END"
)

const (
	ussdRootMenu = "Welcome to Mkononi\n1. Register as Worker\n2. Find Jobs\n3. My Applications"

	ussdRegisterPrompt   = "Enter your details:\nName*Location*Skills (comma separated)"
	ussdRegisterReprompt = "Enter: Name*Location*Skills"
	ussdRegisterFailed   = "Registration failed. Try again."
	ussdRegisterFirst    = "Please register first (Option 1)"
	ussdNoJobs           = "No jobs available."
	ussdNoApplications   = "No applications yet."
	ussdInvalidOption    = "Invalid option"
	ussdUnavailable      = "Service unavailable. Try again later."
)

const ussdListLimit = 3

type USSDReply struct {
	Verb string
	Text string
}

// Render produces the gateway wire format ("CON ..." / "END ...").
func (r USSDReply) Render() string {
	return r.Verb + " " + r.Text
}

// USSDUsecase is the menu state machine. The whole session state is
// re-derived from the cumulative *-joined text on every request; the
// session id is opaque and never looked up. Same input, same output.
type USSDUsecase interface {
	Handle(ctx context.Context, sessionID, phone, text string) USSDReply
}

type USSD struct {
	workers repository.WorkerRepository
	jobs    repository.JobRepository
	apps    repository.ApplicationRepository
	logger  *log.Logger
}

func NewUSSDUsecase(
	workers repository.WorkerRepository,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	logger *log.Logger,
) *USSD {
	return &USSD{workers: workers, jobs: jobs, apps: apps, logger: logger}
}

// Handle never returns an error: a USSD session with no valid next
// input would hang the caller's handset, so every fault degrades to a
// terminal END reply.
func (u *USSD) Handle(ctx context.Context, sessionID, phone, text string) USSDReply {
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return USSDReply{Verb: VerbContinue, Text: ussdRootMenu}
	case text == "1":
		return USSDReply{Verb: VerbContinue, Text: ussdRegisterPrompt}
	case text == "2":
		return u.jobSearch(ctx, phone)
	case text == "3":
		return u.applications(ctx, phone)
	case strings.HasPrefix(text, "1*"):
		return u.register(ctx, sessionID, phone, text)
	default:
		return USSDReply{Verb: VerbEnd, Text: ussdInvalidOption}
	}
}

func (u *USSD) register(ctx context.Context, sessionID, phone, text string) USSDReply {
	fields := strings.Split(text, "*")[1:]
	if len(fields) < 3 {
		return USSDReply{Verb: VerbContinue, Text: ussdRegisterReprompt}
	}

	name := strings.TrimSpace(fields[0])
	location := strings.TrimSpace(fields[1])
	skills := splitSkills(fields[2])

	if _, _, err := u.workers.CreateOrGetByPhone(ctx, phone, repository.WorkerDefaults{
		FullName: name,
		Location: location,
		Skills:   skills,
	}); err != nil {
		u.logf("USSD registration failed | session=%s err=%v", sessionID, err)
		return USSDReply{Verb: VerbEnd, Text: ussdRegisterFailed}
	}

	return USSDReply{Verb: VerbEnd, Text: fmt.Sprintf("Welcome %s! Registration complete.", name)}
}

func (u *USSD) jobSearch(ctx context.Context, phone string) USSDReply {
	if _, err := u.workers.FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, repository.ErrWorkerNotFound) {
			return USSDReply{Verb: VerbEnd, Text: ussdRegisterFirst}
		}
		u.logf("USSD worker lookup failed | err=%v", err)
		return USSDReply{Verb: VerbEnd, Text: ussdUnavailable}
	}

	jobs, err := u.jobs.ListOpen(ctx, ussdListLimit)
	if err != nil {
		u.logf("USSD job listing failed | err=%v", err)
		return USSDReply{Verb: VerbEnd, Text: ussdUnavailable}
	}
	if len(jobs) == 0 {
		return USSDReply{Verb: VerbEnd, Text: ussdNoJobs}
	}

	var b strings.Builder
	b.WriteString("Available Jobs:\n")
	for i, j := range jobs {
		fmt.Fprintf(&b, "%d. %s - $%.2f\n", i+1, j.Title, j.PayRate)
	}
	return USSDReply{Verb: VerbContinue, Text: b.String()}
}

func (u *USSD) applications(ctx context.Context, phone string) USSDReply {
	w, err := u.workers.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrWorkerNotFound) {
			return USSDReply{Verb: VerbEnd, Text: "Please register first"}
		}
		u.logf("USSD worker lookup failed | err=%v", err)
		return USSDReply{Verb: VerbEnd, Text: ussdUnavailable}
	}

	apps, err := u.apps.ListByWorker(ctx, w.ID, ussdListLimit)
	if err != nil {
		u.logf("USSD application listing failed | err=%v", err)
		return USSDReply{Verb: VerbEnd, Text: ussdUnavailable}
	}
	if len(apps) == 0 {
		return USSDReply{Verb: VerbEnd, Text: ussdNoApplications}
	}

	var b strings.Builder
	b.WriteString("Your Applications:\n")
	for _, a := range apps {
		fmt.Fprintf(&b, "%s: %s\n", a.JobTitle, a.Status)
	}
	return USSDReply{Verb: VerbEnd, Text: b.String()}
}

func (u *USSD) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
