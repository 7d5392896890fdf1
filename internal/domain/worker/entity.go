package worker

import "time"

const (
	ExperienceEntry        = "entry"
	ExperienceIntermediate = "intermediate"
	ExperienceExperienced  = "experienced"
	ExperienceExpert       = "expert"
)

const (
	LanguageEnglish = "en"
	LanguageSwahili = "sw"
	LanguageFrench  = "fr"
)

// Worker is an informal-sector worker profile. The phone number is the
// stable identity across all channels (API, WhatsApp, USSD).
type Worker struct {
	ID                 int64
	FullName           string
	PhoneNumber        string
	Location           string
	Skills             []string
	ExperienceLevel    string
	LanguagePreference string
	PreferredJobTypes  []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ValidExperienceLevel(level string) bool {
	switch level {
	case ExperienceEntry, ExperienceIntermediate, ExperienceExperienced, ExperienceExpert:
		return true
	}
	return false
}
