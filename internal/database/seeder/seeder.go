package seeder

import (
	"context"
	"encoding/json"
	"log"

	"mkononi/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeder loads a small demo dataset in development so the channels have
// something to answer with on a fresh database. Each table is seeded
// only when it is empty.
type Seeder struct {
	db     database.DB
	logger *log.Logger
}

func New(db database.DB, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{db: db, logger: logger}
}

type seedWorker struct {
	FullName        string
	Phone           string
	Location        string
	Skills          []string
	ExperienceLevel string
	PreferredTypes  []string
}

type seedJob struct {
	Title          string
	Description    string
	Location       string
	PayRate        float64
	RequiredSkills []string
	JobType        string
}

var seedWorkers = []seedWorker{
	{"Amina Otieno", "+254700000101", "Nairobi", []string{"plumbing", "pipefitting"}, "experienced", []string{"full_time", "contract"}},
	{"Brian Mwangi", "+254700000102", "Nairobi", []string{"carpentry"}, "intermediate", []string{"part_time"}},
	{"Chebet Kiprono", "+254700000103", "Nakuru", []string{"cleaning", "cooking"}, "entry", nil},
}

var seedJobs = []seedJob{
	{"Residential plumbing", "Fix bathroom piping in a three-bedroom house.", "Nairobi", 1500, []string{"plumbing"}, "contract"},
	{"Furniture assembly", "Assemble office desks and shelving.", "Nairobi", 900, []string{"carpentry"}, "part_time"},
	{"House cleaning", "Weekly deep clean for a family home.", "Nakuru", 600, []string{"cleaning"}, "temporary"},
}

func (s *Seeder) Run(ctx context.Context) error {
	employerID, err := s.seedEmployer(ctx)
	if err != nil {
		return err
	}
	if err := s.seedWorkers(ctx); err != nil {
		return err
	}
	return s.seedJobs(ctx, employerID)
}

func (s *Seeder) seedEmployer(ctx context.Context) (uuid.UUID, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM employers`).Scan(&count); err != nil {
		return uuid.Nil, err
	}
	if count > 0 {
		var id uuid.UUID
		err := s.db.QueryRow(ctx, `SELECT id FROM employers ORDER BY created_at ASC LIMIT 1`).Scan(&id)
		return id, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme-demo"), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if _, err := s.db.Exec(ctx,
		`INSERT INTO employers (id, company_name, email, password_hash, phone, sector)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, "Demo Constructions Ltd", "demo@mkononi.example", string(hash), "+254711000001", "construction",
	); err != nil {
		return uuid.Nil, err
	}

	s.logger.Printf("seeded demo employer | id=%s", id)
	return id, nil
}

func (s *Seeder) seedWorkers(ctx context.Context) error {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM workers`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, w := range seedWorkers {
		skills, err := json.Marshal(w.Skills)
		if err != nil {
			return err
		}
		prefs := []string{}
		if w.PreferredTypes != nil {
			prefs = w.PreferredTypes
		}
		prefJSON, err := json.Marshal(prefs)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx,
			`INSERT INTO workers (full_name, phone_number, location, skills, experience_level, preferred_job_types)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (phone_number) DO NOTHING`,
			w.FullName, w.Phone, w.Location, string(skills), w.ExperienceLevel, string(prefJSON),
		); err != nil {
			return err
		}
	}

	s.logger.Printf("seeded demo workers | count=%d", len(seedWorkers))
	return nil
}

func (s *Seeder) seedJobs(ctx context.Context, employerID uuid.UUID) error {
	if employerID == uuid.Nil {
		return nil
	}

	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, j := range seedJobs {
		skills, err := json.Marshal(j.RequiredSkills)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx,
			`INSERT INTO jobs (employer_id, title, description, location, pay_rate, required_skills, job_type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			employerID, j.Title, j.Description, j.Location, j.PayRate, string(skills), j.JobType,
		); err != nil {
			return err
		}
	}

	s.logger.Printf("seeded demo jobs | count=%d", len(seedJobs))
	return nil
}
