package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"mkononi/internal/domain/application"
	"mkononi/internal/domain/job"
	"mkononi/internal/domain/worker"
	"mkononi/internal/repository"
)

type memWorkerRepo struct {
	workers []worker.Worker
	nextID  int64
	err     error

	createCalls int
}

func (m *memWorkerRepo) FindByPhone(_ context.Context, phone string) (worker.Worker, error) {
	if m.err != nil {
		return worker.Worker{}, m.err
	}
	for _, w := range m.workers {
		if w.PhoneNumber == phone {
			return w, nil
		}
	}
	return worker.Worker{}, repository.ErrWorkerNotFound
}

func (m *memWorkerRepo) GetByID(_ context.Context, id int64) (worker.Worker, error) {
	if m.err != nil {
		return worker.Worker{}, m.err
	}
	for _, w := range m.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, repository.ErrWorkerNotFound
}

func (m *memWorkerRepo) CreateOrGetByPhone(ctx context.Context, phone string, defaults repository.WorkerDefaults) (worker.Worker, bool, error) {
	if m.err != nil {
		return worker.Worker{}, false, m.err
	}
	if w, err := m.FindByPhone(ctx, phone); err == nil {
		return w, false, nil
	}
	m.createCalls++
	m.nextID++
	w := worker.Worker{
		ID:                m.nextID,
		FullName:          defaults.FullName,
		PhoneNumber:       phone,
		Location:          defaults.Location,
		Skills:            defaults.Skills,
		ExperienceLevel:   defaults.ExperienceLevel,
		PreferredJobTypes: defaults.PreferredJobTypes,
		CreatedAt:         time.Now(),
	}
	if w.ExperienceLevel == "" {
		w.ExperienceLevel = worker.ExperienceEntry
	}
	m.workers = append(m.workers, w)
	return w, true, nil
}

func (m *memWorkerRepo) ListAll(_ context.Context, limit int) ([]worker.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := m.workers
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return append([]worker.Worker(nil), out...), nil
}

type memJobRepo struct {
	jobs   []job.Job
	nextID int64
	err    error
}

func (m *memJobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	for _, j := range m.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (m *memJobRepo) ListOpenByLocation(_ context.Context, text string, limit int) ([]job.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	needle := strings.ToLower(text)
	out := make([]job.Job, 0)
	for _, j := range m.jobs {
		if !j.IsOpen {
			continue
		}
		if !strings.Contains(strings.ToLower(j.Location), needle) {
			continue
		}
		out = append(out, j)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memJobRepo) ListOpen(_ context.Context, limit int) ([]job.Job, error) {
	return m.ListOpenByLocation(context.Background(), "", limit)
}

func (m *memJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	m.nextID++
	j.ID = m.nextID
	j.IsOpen = true
	m.jobs = append(m.jobs, j)
	return j, nil
}

type memApplicationRepo struct {
	apps      []application.Application
	jobTitles map[int64]string
	nextID    int64
	err       error
}

func (m *memApplicationRepo) CreateOrGet(_ context.Context, workerID, jobID int64, defaults repository.ApplicationDefaults) (application.Application, bool, error) {
	if m.err != nil {
		return application.Application{}, false, m.err
	}
	for _, a := range m.apps {
		if a.WorkerID == workerID && a.JobID == jobID {
			return a, false, nil
		}
	}
	m.nextID++
	a := application.Application{
		ID:        m.nextID,
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    application.StatusPending,
		Channel:   defaults.Channel,
		AppliedAt: time.Now(),
	}
	m.apps = append(m.apps, a)
	return a, true, nil
}

func (m *memApplicationRepo) GetByID(_ context.Context, id int64) (application.Application, error) {
	if m.err != nil {
		return application.Application{}, m.err
	}
	for _, a := range m.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

func (m *memApplicationRepo) ListByWorker(_ context.Context, workerID int64, limit int) ([]repository.WorkerApplication, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]repository.WorkerApplication, 0)
	for _, a := range m.apps {
		if a.WorkerID != workerID {
			continue
		}
		out = append(out, repository.WorkerApplication{Application: a, JobTitle: m.jobTitles[a.JobID]})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memApplicationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.apps {
		if m.apps[i].ID == id {
			m.apps[i].Status = status
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

type memScoreRepo struct {
	upserts []repository.MatchScoreUpsert
}

func (m *memScoreRepo) Upsert(_ context.Context, u repository.MatchScoreUpsert) error {
	m.upserts = append(m.upserts, u)
	return nil
}

func (m *memScoreRepo) ListByJob(_ context.Context, jobID int64, _ int) ([]repository.MatchScoreRow, error) {
	out := make([]repository.MatchScoreRow, 0)
	for _, u := range m.upserts {
		if u.JobID == jobID {
			out = append(out, repository.MatchScoreRow(u))
		}
	}
	return out, nil
}

type memCache struct {
	data map[string][]byte
	gets int
	hits int
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
