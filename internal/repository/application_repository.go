package repository

import (
	"context"
	"errors"

	"mkononi/internal/database"
	"mkononi/internal/domain/application"

	"github.com/jackc/pgx/v5"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationDefaults struct {
	Channel string
}

// WorkerApplication is an application joined with enough job context to
// render a one-line summary ("<title>: <status>").
type WorkerApplication struct {
	application.Application
	JobTitle string
}

type ApplicationRepository interface {
	// CreateOrGet is idempotent on the (job, worker) pair. The boolean
	// reports whether a new row was created.
	CreateOrGet(ctx context.Context, workerID, jobID int64, defaults ApplicationDefaults) (application.Application, bool, error)
	GetByID(ctx context.Context, id int64) (application.Application, error)
	ListByWorker(ctx context.Context, workerID int64, limit int) ([]WorkerApplication, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, worker_id, status, channel, applied_at, updated_at`

func (r *PostgresApplicationRepository) CreateOrGet(ctx context.Context, workerID, jobID int64, defaults ApplicationDefaults) (application.Application, bool, error) {
	channel := defaults.Channel
	if !application.ValidChannel(channel) {
		channel = application.ChannelWeb
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (job_id, worker_id, status, channel)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (job_id, worker_id) DO NOTHING
		 RETURNING `+applicationColumns,
		jobID, workerID, application.StatusPending, channel,
	)

	created, err := scanApplication(row)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, ErrApplicationNotFound) {
		return application.Application{}, false, err
	}

	existing := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND worker_id = $2`,
		jobID, workerID,
	)
	app, err := scanApplication(existing)
	if err != nil {
		return application.Application{}, false, err
	}
	return app, false, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id int64) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByWorker(ctx context.Context, workerID int64, limit int) ([]WorkerApplication, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.worker_id, a.status, a.channel, a.applied_at, a.updated_at, j.title
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.worker_id = $1
		 ORDER BY a.applied_at DESC
		 LIMIT $2`,
		workerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WorkerApplication, 0)
	for rows.Next() {
		var wa WorkerApplication
		if err := rows.Scan(
			&wa.ID, &wa.JobID, &wa.WorkerID, &wa.Status, &wa.Channel,
			&wa.AppliedAt, &wa.UpdatedAt, &wa.JobTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, wa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row scannable) (application.Application, error) {
	var a application.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.Channel, &a.AppliedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}
