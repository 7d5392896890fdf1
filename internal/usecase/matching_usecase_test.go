package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
)

func newMatchingFixture() (*Matching, *memWorkerRepo, *memJobRepo, *memScoreRepo, *memCache) {
	workers := &memWorkerRepo{}
	jobs := &memJobRepo{}
	scores := &memScoreRepo{}
	cache := &memCache{}
	logger := log.New(io.Discard, "", 0)
	return NewMatchingUsecase(jobs, workers, scores, cache, nil, logger), workers, jobs, scores, cache
}

func TestJobMatchesRanksAndFilters(t *testing.T) {
	uc, workers, jobs, scores, _ := newMatchingFixture()
	jobs.jobs = []job.Job{{
		ID:             10,
		Title:          "Plumbing contract",
		Location:       "Nairobi",
		RequiredSkills: []string{"plumbing", "electrical"},
		JobType:        "full_time",
		IsOpen:         true,
	}}
	workers.workers = []worker.Worker{
		// Perfect fit: every sub-score maxed.
		{ID: 1, FullName: "Ada", Location: "Nairobi", Skills: []string{"plumbing", "electrical"},
			ExperienceLevel: worker.ExperienceExperienced, PreferredJobTypes: []string{"full_time"}},
		// Partial fit, still above the cutoff.
		{ID: 2, FullName: "Ben", Location: "Nairobi West", Skills: []string{"plumbing"},
			ExperienceLevel: worker.ExperienceEntry},
		// Poor fit: ends up at or below the cutoff and is dropped.
		{ID: 3, FullName: "Cy", Location: "Kisumu", ExperienceLevel: worker.ExperienceEntry,
			PreferredJobTypes: []string{"temporary"}},
	}

	got, err := uc.JobMatches(context.Background(), 10)
	if err != nil {
		t.Fatalf("JobMatches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2: %+v", len(got), got)
	}
	if got[0].WorkerID != 1 || got[1].WorkerID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", got[0].WorkerID, got[1].WorkerID)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("top score = %v, want 1.0", got[0].Score)
	}
	if got[1].Score <= 0.3 || got[1].Score >= got[0].Score {
		t.Errorf("second score = %v, want in (0.3, 1.0)", got[1].Score)
	}
	if got[0].FullName != "Ada" || got[0].Location != "Nairobi" {
		t.Errorf("match payload = %+v", got[0])
	}

	// Every ranked pair is persisted for later lookups.
	if len(scores.upserts) != 2 {
		t.Fatalf("upserts = %d, want 2", len(scores.upserts))
	}
	for _, u := range scores.upserts {
		if u.JobID != 10 || u.CalculatedAt.IsZero() {
			t.Errorf("upsert = %+v", u)
		}
	}
}

func TestJobMatchesServedFromCache(t *testing.T) {
	uc, workers, jobs, _, cache := newMatchingFixture()
	jobs.jobs = []job.Job{{ID: 10, Location: "Nairobi", RequiredSkills: []string{"plumbing"}, IsOpen: true}}
	workers.workers = []worker.Worker{
		{ID: 1, FullName: "Ada", Location: "Nairobi", Skills: []string{"plumbing"}},
	}
	ctx := context.Background()

	first, err := uc.JobMatches(ctx, 10)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	// A worker added after the first call stays invisible within the TTL.
	workers.workers = append(workers.workers, worker.Worker{
		ID: 2, FullName: "Ben", Location: "Nairobi", Skills: []string{"plumbing"},
	})

	second, err := uc.JobMatches(ctx, 10)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if len(second) != len(first) {
		t.Errorf("cached result changed: first=%d second=%d", len(first), len(second))
	}
}

func TestJobMatchesUnknownJob(t *testing.T) {
	uc, _, _, _, _ := newMatchingFixture()

	if _, err := uc.JobMatches(context.Background(), 999); !errors.Is(err, repository.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestPersistedScores(t *testing.T) {
	uc, workers, jobs, _, _ := newMatchingFixture()
	jobs.jobs = []job.Job{{ID: 10, Location: "Nairobi", RequiredSkills: []string{"plumbing"}, IsOpen: true}}
	workers.workers = []worker.Worker{
		{ID: 1, FullName: "Ada", Location: "Nairobi", Skills: []string{"plumbing"}},
	}
	ctx := context.Background()

	if _, err := uc.JobMatches(ctx, 10); err != nil {
		t.Fatalf("JobMatches: %v", err)
	}

	rows, err := uc.PersistedScores(ctx, 10, 0)
	if err != nil {
		t.Fatalf("PersistedScores: %v", err)
	}
	if len(rows) != 1 || rows[0].WorkerID != 1 {
		t.Errorf("rows = %+v", rows)
	}

	if _, err := uc.PersistedScores(ctx, 999, 0); !errors.Is(err, repository.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestJobMatchesWithoutCacheOrScores(t *testing.T) {
	workers := &memWorkerRepo{workers: []worker.Worker{
		{ID: 1, FullName: "Ada", Location: "Nairobi", Skills: []string{"plumbing"}},
	}}
	jobs := &memJobRepo{jobs: []job.Job{{ID: 10, Location: "Nairobi", RequiredSkills: []string{"plumbing"}, IsOpen: true}}}
	uc := NewMatchingUsecase(jobs, workers, nil, nil, nil, nil)

	got, err := uc.JobMatches(context.Background(), 10)
	if err != nil {
		t.Fatalf("JobMatches: %v", err)
	}
	if len(got) != 1 || got[0].WorkerID != 1 {
		t.Errorf("matches = %+v", got)
	}
}
