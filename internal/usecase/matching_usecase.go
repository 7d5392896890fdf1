package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"mkononi/internal/domain/matching"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
)

const (
	matchCacheTTL      = 15 * time.Minute
	matchWorkerScanCap = 500
)

type JobMatch struct {
	WorkerID    int64   `json:"worker_id"`
	FullName    string  `json:"full_name"`
	PhoneNumber string  `json:"phone_number"`
	Location    string  `json:"location"`
	Score       float64 `json:"score"`
}

// MatchingUsecase scores every worker against one job and returns the
// ranked shortlist. Results are served read-through from the cache;
// staleness within the TTL is accepted.
type MatchingUsecase interface {
	JobMatches(ctx context.Context, jobID int64) ([]JobMatch, error)
	// PersistedScores reads the last stored scores without recomputing.
	PersistedScores(ctx context.Context, jobID int64, limit int) ([]repository.MatchScoreRow, error)
}

type Matching struct {
	jobs    repository.JobRepository
	workers repository.WorkerRepository
	scores  repository.MatchScoreRepository
	cache   MatchCache
	engine  *matching.Engine
	logger  *log.Logger
}

func NewMatchingUsecase(
	jobs repository.JobRepository,
	workers repository.WorkerRepository,
	scores repository.MatchScoreRepository,
	cache MatchCache,
	engine *matching.Engine,
	logger *log.Logger,
) *Matching {
	if engine == nil {
		engine = matching.NewEngine(nil)
	}
	return &Matching{jobs: jobs, workers: workers, scores: scores, cache: cache, engine: engine, logger: logger}
}

func matchCacheKey(jobID int64) string {
	return fmt.Sprintf("matches:job:%d", jobID)
}

func (u *Matching) JobMatches(ctx context.Context, jobID int64) ([]JobMatch, error) {
	key := matchCacheKey(jobID)

	if u.cache != nil {
		var cached []JobMatch
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	workers, err := u.workers.ListAll(ctx, matchWorkerScanCap)
	if err != nil {
		return nil, err
	}

	// Candidates are built in repository order so tie-breaking stays
	// deterministic through the stable ranking sort.
	byID := make(map[int64]worker.Worker, len(workers))
	candidates := make([]matching.Candidate, 0, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
		candidates = append(candidates, matching.Candidate{
			WorkerID: w.ID,
			JobID:    j.ID,
			Score:    u.engine.Score(engineWorker(w), engineJob(j)),
		})
	}

	ranked := matching.Rank(candidates, matching.TopN)

	now := time.Now().UTC()
	out := make([]JobMatch, 0, len(ranked))
	for _, c := range ranked {
		w := byID[c.WorkerID]
		out = append(out, JobMatch{
			WorkerID:    w.ID,
			FullName:    w.FullName,
			PhoneNumber: w.PhoneNumber,
			Location:    w.Location,
			Score:       c.Score,
		})

		if u.scores != nil {
			if err := u.scores.Upsert(ctx, repository.MatchScoreUpsert{
				WorkerID:     c.WorkerID,
				JobID:        j.ID,
				Score:        c.Score,
				CalculatedAt: now,
			}); err != nil && u.logger != nil {
				u.logger.Printf("match score upsert failed | job=%d worker=%d err=%v", j.ID, c.WorkerID, err)
			}
		}
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, matchCacheTTL)
	}
	return out, nil
}

func (u *Matching) PersistedScores(ctx context.Context, jobID int64, limit int) ([]repository.MatchScoreRow, error) {
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	if u.scores == nil {
		return []repository.MatchScoreRow{}, nil
	}
	return u.scores.ListByJob(ctx, jobID, limit)
}
