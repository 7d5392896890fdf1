package repository

import (
	"context"
	"encoding/json"
	"errors"

	"mkononi/internal/database"
	"mkononi/internal/domain/job"

	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (job.Job, error)
	// ListOpenByLocation returns open jobs whose location contains text
	// as a case-insensitive substring, newest first. Empty text matches
	// every open job.
	ListOpenByLocation(ctx context.Context, text string, limit int) ([]job.Job, error)
	ListOpen(ctx context.Context, limit int) ([]job.Job, error)
	Create(ctx context.Context, j job.Job) (job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, employer_id, title, description, location, pay_rate, required_skills, job_type, is_open, created_at, updated_at`

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) ListOpenByLocation(ctx context.Context, text string, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_open = TRUE AND location ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC
		 LIMIT $2`,
		text, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_open = TRUE
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	skills, err := json.Marshal(emptyIfNil(j.RequiredSkills))
	if err != nil {
		return job.Job{}, err
	}

	jobType := j.JobType
	if !job.ValidType(jobType) {
		jobType = job.TypeFullTime
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, description, location, pay_rate, required_skills, job_type, is_open)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		 RETURNING `+jobColumns,
		j.EmployerID, j.Title, j.Description, j.Location, j.PayRate, string(skills), jobType,
	)
	return scanJob(row)
}

func scanJob(row scannable) (job.Job, error) {
	var j job.Job
	var skills []byte
	if err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location,
		&j.PayRate, &skills, &j.JobType, &j.IsOpen,
		&j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	if err := json.Unmarshal(skills, &j.RequiredSkills); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
