package employer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("employer not found")

type Repository interface {
	Create(ctx context.Context, e Employer) error
	GetByID(ctx context.Context, id uuid.UUID) (Employer, error)
	GetByEmail(ctx context.Context, email string) (Employer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
