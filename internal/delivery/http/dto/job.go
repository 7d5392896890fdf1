package dto

import (
	"time"

	"mkononi/internal/domain/job"
	"mkononi/internal/repository"
	"mkononi/internal/usecase"
)

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	PayRate        float64  `json:"pay_rate" validate:"gte=0"`
	RequiredSkills []string `json:"required_skills"`
	JobType        string   `json:"job_type" validate:"omitempty,oneof=full_time part_time contract temporary"`
}

type JobResponse struct {
	ID             int64     `json:"id"`
	EmployerID     string    `json:"employer_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location"`
	PayRate        float64   `json:"pay_rate"`
	RequiredSkills []string  `json:"required_skills"`
	JobType        string    `json:"job_type"`
	IsOpen         bool      `json:"is_open"`
	CreatedAt      time.Time `json:"created_at"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type JobMatchResponse struct {
	WorkerID    int64   `json:"worker_id"`
	FullName    string  `json:"full_name"`
	PhoneNumber string  `json:"phone_number"`
	Location    string  `json:"location"`
	Score       float64 `json:"score"`
}

type JobMatchListResponse struct {
	JobID   int64              `json:"job_id"`
	Matches []JobMatchResponse `json:"matches"`
}

type PersistedScoreResponse struct {
	WorkerID     int64     `json:"worker_id"`
	Score        float64   `json:"score"`
	CalculatedAt time.Time `json:"calculated_at"`
}

type PersistedScoreListResponse struct {
	JobID  int64                    `json:"job_id"`
	Scores []PersistedScoreResponse `json:"scores"`
}

func FromJob(j job.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		EmployerID:     j.EmployerID.String(),
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		PayRate:        j.PayRate,
		RequiredSkills: j.RequiredSkills,
		JobType:        j.JobType,
		IsOpen:         j.IsOpen,
		CreatedAt:      j.CreatedAt,
	}
}

func FromJobs(jobs []job.Job) JobListResponse {
	out := JobListResponse{Jobs: make([]JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, FromJob(j))
	}
	return out
}

func FromPersistedScores(jobID int64, rows []repository.MatchScoreRow) PersistedScoreListResponse {
	out := PersistedScoreListResponse{JobID: jobID, Scores: make([]PersistedScoreResponse, 0, len(rows))}
	for _, r := range rows {
		out.Scores = append(out.Scores, PersistedScoreResponse{
			WorkerID:     r.WorkerID,
			Score:        r.Score,
			CalculatedAt: r.CalculatedAt,
		})
	}
	return out
}

func FromJobMatches(jobID int64, matches []usecase.JobMatch) JobMatchListResponse {
	out := JobMatchListResponse{JobID: jobID, Matches: make([]JobMatchResponse, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, JobMatchResponse{
			WorkerID:    m.WorkerID,
			FullName:    m.FullName,
			PhoneNumber: m.PhoneNumber,
			Location:    m.Location,
			Score:       m.Score,
		})
	}
	return out
}
