package dto

import (
	"time"

	"mkononi/internal/domain/worker"
)

type RegisterWorkerRequest struct {
	FullName           string   `json:"full_name" validate:"required"`
	PhoneNumber        string   `json:"phone_number" validate:"required"`
	Location           string   `json:"location"`
	Skills             []string `json:"skills"`
	ExperienceLevel    string   `json:"experience_level" validate:"omitempty,oneof=entry intermediate experienced expert"`
	LanguagePreference string   `json:"language_preference" validate:"omitempty,oneof=en sw fr"`
	PreferredJobTypes  []string `json:"preferred_job_types" validate:"omitempty,dive,oneof=full_time part_time contract temporary"`
}

type WorkerResponse struct {
	ID                 int64     `json:"id"`
	FullName           string    `json:"full_name"`
	PhoneNumber        string    `json:"phone_number"`
	Location           string    `json:"location"`
	Skills             []string  `json:"skills"`
	ExperienceLevel    string    `json:"experience_level"`
	LanguagePreference string    `json:"language_preference"`
	PreferredJobTypes  []string  `json:"preferred_job_types"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromWorker(w worker.Worker) WorkerResponse {
	return WorkerResponse{
		ID:                 w.ID,
		FullName:           w.FullName,
		PhoneNumber:        w.PhoneNumber,
		Location:           w.Location,
		Skills:             w.Skills,
		ExperienceLevel:    w.ExperienceLevel,
		LanguagePreference: w.LanguagePreference,
		PreferredJobTypes:  w.PreferredJobTypes,
		CreatedAt:          w.CreatedAt,
	}
}
