package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeFullTime  = "full_time"
	TypePartTime  = "part_time"
	TypeContract  = "contract"
	TypeTemporary = "temporary"
)

// Job is a posting owned by an employer. Job ids are integers on purpose:
// workers reference them directly in text commands ("apply 42").
type Job struct {
	ID             int64
	EmployerID     uuid.UUID
	Title          string
	Description    string
	Location       string
	PayRate        float64
	RequiredSkills []string
	JobType        string
	IsOpen         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ValidType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeTemporary:
		return true
	}
	return false
}
