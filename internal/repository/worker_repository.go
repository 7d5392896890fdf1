package repository

import (
	"context"
	"encoding/json"
	"errors"

	"mkononi/internal/database"
	"mkononi/internal/domain/worker"

	"github.com/jackc/pgx/v5"
)

var ErrWorkerNotFound = errors.New("worker not found")

// WorkerDefaults is applied only when CreateOrGetByPhone actually
// creates a row. Re-registration never overwrites an existing profile.
type WorkerDefaults struct {
	FullName           string
	Location           string
	Skills             []string
	ExperienceLevel    string
	LanguagePreference string
	PreferredJobTypes  []string
}

type WorkerRepository interface {
	FindByPhone(ctx context.Context, phone string) (worker.Worker, error)
	GetByID(ctx context.Context, id int64) (worker.Worker, error)
	CreateOrGetByPhone(ctx context.Context, phone string, defaults WorkerDefaults) (worker.Worker, bool, error)
	ListAll(ctx context.Context, limit int) ([]worker.Worker, error)
}

type PostgresWorkerRepository struct {
	db database.DB
}

func NewPostgresWorkerRepository(db database.DB) *PostgresWorkerRepository {
	return &PostgresWorkerRepository{db: db}
}

const workerColumns = `id, full_name, phone_number, location, skills, experience_level, language_preference, preferred_job_types, created_at, updated_at`

func (r *PostgresWorkerRepository) FindByPhone(ctx context.Context, phone string) (worker.Worker, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE phone_number = $1`, phone)
	return scanWorker(row)
}

func (r *PostgresWorkerRepository) GetByID(ctx context.Context, id int64) (worker.Worker, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
	return scanWorker(row)
}

// CreateOrGetByPhone is atomic under concurrent identical calls: the
// insert relies on the phone_number uniqueness constraint, and a
// conflict is resolved by reading the winner's row.
func (r *PostgresWorkerRepository) CreateOrGetByPhone(ctx context.Context, phone string, defaults WorkerDefaults) (worker.Worker, bool, error) {
	skills, err := json.Marshal(emptyIfNil(defaults.Skills))
	if err != nil {
		return worker.Worker{}, false, err
	}
	prefTypes, err := json.Marshal(emptyIfNil(defaults.PreferredJobTypes))
	if err != nil {
		return worker.Worker{}, false, err
	}

	experience := defaults.ExperienceLevel
	if !worker.ValidExperienceLevel(experience) {
		experience = worker.ExperienceEntry
	}
	language := defaults.LanguagePreference
	if language == "" {
		language = worker.LanguageEnglish
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO workers (full_name, phone_number, location, skills, experience_level, language_preference, preferred_job_types)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (phone_number) DO NOTHING
		 RETURNING `+workerColumns,
		defaults.FullName, phone, defaults.Location, string(skills), experience, language, string(prefTypes),
	)

	created, err := scanWorker(row)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, ErrWorkerNotFound) {
		return worker.Worker{}, false, err
	}

	existing, err := r.FindByPhone(ctx, phone)
	if err != nil {
		return worker.Worker{}, false, err
	}
	return existing, false, nil
}

func (r *PostgresWorkerRepository) ListAll(ctx context.Context, limit int) ([]worker.Worker, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+workerColumns+` FROM workers ORDER BY id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanWorker(row scannable) (worker.Worker, error) {
	var w worker.Worker
	var skills, prefTypes []byte
	if err := row.Scan(
		&w.ID, &w.FullName, &w.PhoneNumber, &w.Location, &skills,
		&w.ExperienceLevel, &w.LanguagePreference, &prefTypes,
		&w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, ErrWorkerNotFound
		}
		return worker.Worker{}, err
	}
	if err := json.Unmarshal(skills, &w.Skills); err != nil {
		return worker.Worker{}, err
	}
	if err := json.Unmarshal(prefTypes, &w.PreferredJobTypes); err != nil {
		return worker.Worker{}, err
	}
	return w, nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
