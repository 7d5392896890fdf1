package repository

import (
	"context"
	"errors"

	"mkononi/internal/database"
	"mkononi/internal/domain/employer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresEmployerRepository struct {
	db database.DB
}

func NewPostgresEmployerRepository(db database.DB) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{db: db}
}

const employerColumns = `id, company_name, email, password_hash, phone, sector, verified, created_at, updated_at`

func (r *PostgresEmployerRepository) Create(ctx context.Context, e employer.Employer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employers (id, company_name, email, password_hash, phone, sector)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.CompanyName, e.Email, e.PasswordHash, e.Phone, e.Sector,
	)
	return err
}

func (r *PostgresEmployerRepository) GetByID(ctx context.Context, id uuid.UUID) (employer.Employer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1`, id)
	return scanEmployer(row)
}

func (r *PostgresEmployerRepository) GetByEmail(ctx context.Context, email string) (employer.Employer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employerColumns+` FROM employers WHERE email = $1`, email)
	return scanEmployer(row)
}

func (r *PostgresEmployerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employers WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanEmployer(row scannable) (employer.Employer, error) {
	var e employer.Employer
	if err := row.Scan(
		&e.ID, &e.CompanyName, &e.Email, &e.PasswordHash,
		&e.Phone, &e.Sector, &e.Verified, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employer.Employer{}, employer.ErrNotFound
		}
		return employer.Employer{}, err
	}
	return e, nil
}
