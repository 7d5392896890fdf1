package dto

import (
	"time"

	"mkononi/internal/domain/application"
	"mkononi/internal/repository"
)

type ApplyRequest struct {
	JobID       int64  `json:"job_id" validate:"required,gt=0"`
	WorkerID    int64  `json:"worker_id" validate:"omitempty,gt=0"`
	WorkerPhone string `json:"worker_phone"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type ApplicationResponse struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	WorkerID  int64     `json:"worker_id"`
	Status    string    `json:"status"`
	Channel   string    `json:"channel"`
	AppliedAt time.Time `json:"applied_at"`
}

type WorkerApplicationResponse struct {
	ApplicationResponse
	JobTitle string `json:"job_title"`
}

type WorkerApplicationListResponse struct {
	Applications []WorkerApplicationResponse `json:"applications"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		WorkerID:  a.WorkerID,
		Status:    a.Status,
		Channel:   a.Channel,
		AppliedAt: a.AppliedAt,
	}
}

func FromWorkerApplications(apps []repository.WorkerApplication) WorkerApplicationListResponse {
	out := WorkerApplicationListResponse{Applications: make([]WorkerApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		out.Applications = append(out.Applications, WorkerApplicationResponse{
			ApplicationResponse: FromApplication(a.Application),
			JobTitle:            a.JobTitle,
		})
	}
	return out
}
