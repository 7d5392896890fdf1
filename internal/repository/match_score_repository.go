package repository

import (
	"context"
	"time"

	"mkononi/internal/database"
)

type MatchScoreUpsert struct {
	WorkerID     int64
	JobID        int64
	Score        float64
	CalculatedAt time.Time
}

type MatchScoreRow struct {
	WorkerID     int64
	JobID        int64
	Score        float64
	CalculatedAt time.Time
}

// MatchScoreRepository keeps the latest computed score per (worker, job)
// pair. Scores are recomputed on demand; this table only backs the
// read-only listing endpoint.
type MatchScoreRepository interface {
	Upsert(ctx context.Context, m MatchScoreUpsert) error
	ListByJob(ctx context.Context, jobID int64, limit int) ([]MatchScoreRow, error)
}

type PostgresMatchScoreRepository struct {
	db database.DB
}

func NewPostgresMatchScoreRepository(db database.DB) *PostgresMatchScoreRepository {
	return &PostgresMatchScoreRepository{db: db}
}

func (r *PostgresMatchScoreRepository) Upsert(ctx context.Context, m MatchScoreUpsert) error {
	if m.WorkerID == 0 || m.JobID == 0 {
		return nil
	}
	if m.CalculatedAt.IsZero() {
		m.CalculatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO match_scores (worker_id, job_id, score, calculated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (worker_id, job_id) DO UPDATE SET
			score = EXCLUDED.score,
			calculated_at = EXCLUDED.calculated_at`,
		m.WorkerID, m.JobID, m.Score, m.CalculatedAt,
	)
	return err
}

func (r *PostgresMatchScoreRepository) ListByJob(ctx context.Context, jobID int64, limit int) ([]MatchScoreRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT worker_id, job_id, score, calculated_at
		 FROM match_scores
		 WHERE job_id = $1
		 ORDER BY score DESC, worker_id ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchScoreRow, 0)
	for rows.Next() {
		var m MatchScoreRow
		if err := rows.Scan(&m.WorkerID, &m.JobID, &m.Score, &m.CalculatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
