package employer

import (
	"time"

	"github.com/google/uuid"
)

const (
	SectorConstruction  = "construction"
	SectorHospitality   = "hospitality"
	SectorRetail        = "retail"
	SectorManufacturing = "manufacturing"
	SectorAgriculture   = "agriculture"
	SectorTransport     = "transport"
	SectorOther         = "other"
)

type Employer struct {
	ID           uuid.UUID
	CompanyName  string
	Email        string
	PasswordHash string
	Phone        string
	Sector       string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidSector(s string) bool {
	switch s {
	case SectorConstruction, SectorHospitality, SectorRetail,
		SectorManufacturing, SectorAgriculture, SectorTransport, SectorOther:
		return true
	}
	return false
}
