package usecase

import (
	"context"
	"errors"
	"strings"

	"mkononi/internal/domain/employer"
	"mkononi/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
)

type RegisterEmployerInput struct {
	Email       string
	Password    string
	CompanyName string
	Phone       string
	Sector      string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterEmployerInput) (employer.Employer, string, string, error)
	Login(ctx context.Context, in LoginInput) (employer.Employer, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	employers employer.Repository
	jwt       jwt.Service
}

func NewAuthUsecase(employers employer.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{employers: employers, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterEmployerInput) (employer.Employer, string, string, error) {
	email := normalizeEmail(in.Email)
	company := strings.TrimSpace(in.CompanyName)
	if email == "" || company == "" || len(strings.TrimSpace(in.Password)) < 8 {
		return employer.Employer{}, "", "", ErrInvalidInput
	}

	sector := in.Sector
	if sector == "" {
		sector = employer.SectorOther
	}
	if !employer.ValidSector(sector) {
		return employer.Employer{}, "", "", ErrInvalidInput
	}

	exists, err := u.employers.ExistsByEmail(ctx, email)
	if err != nil {
		return employer.Employer{}, "", "", ErrInternal
	}
	if exists {
		return employer.Employer{}, "", "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return employer.Employer{}, "", "", ErrInternal
	}

	e := employer.Employer{
		ID:           uuid.New(),
		CompanyName:  company,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Sector:       sector,
	}

	if err := u.employers.Create(ctx, e); err != nil {
		// A concurrent registration may have won the unique-email race;
		// report that as "already registered", not a server fault.
		exists, exErr := u.employers.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return employer.Employer{}, "", "", ErrEmailAlreadyRegistered
		}
		return employer.Employer{}, "", "", ErrInternal
	}

	return u.issueTokens(e)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (employer.Employer, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return employer.Employer{}, "", "", ErrInvalidCredentials
	}

	e, err := u.employers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employer.ErrNotFound) {
			return employer.Employer{}, "", "", ErrInvalidCredentials
		}
		return employer.Employer{}, "", "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
		return employer.Employer{}, "", "", ErrInvalidCredentials
	}

	return u.issueTokens(e)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	e, err := u.employers.GetByID(ctx, claims.EmployerID)
	if err != nil {
		if errors.Is(err, employer.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	_, access, refresh, err := u.issueTokens(e)
	return access, refresh, err
}

func (u *Auth) issueTokens(e employer.Employer) (employer.Employer, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(e.ID, e.Email)
	if err != nil {
		return employer.Employer{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(e.ID)
	if err != nil {
		return employer.Employer{}, "", "", ErrInternal
	}

	e.PasswordHash = ""
	return e, access, refresh, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
