package dto

import (
	"time"

	"mkononi/internal/domain/employer"
)

type RegisterEmployerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required"`
	Phone       string `json:"phone"`
	Sector      string `json:"sector" validate:"omitempty,oneof=construction hospitality retail manufacturing agriculture transport other"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmployerResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Sector      string    `json:"sector"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	Employer     EmployerResponse `json:"employer"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func FromEmployer(e employer.Employer) EmployerResponse {
	return EmployerResponse{
		ID:          e.ID.String(),
		CompanyName: e.CompanyName,
		Email:       e.Email,
		Phone:       e.Phone,
		Sector:      e.Sector,
		CreatedAt:   e.CreatedAt,
	}
}
