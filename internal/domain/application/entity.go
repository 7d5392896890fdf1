package application

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelUSSD     = "ussd"
	ChannelWeb      = "web"
)

// Application links a worker to a job. The (job, worker) pair is unique:
// re-applying through any channel returns the existing row.
type Application struct {
	ID        int64
	JobID     int64
	WorkerID  int64
	Status    string
	Channel   string
	AppliedAt time.Time
	UpdatedAt time.Time
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func ValidChannel(ch string) bool {
	switch ch {
	case ChannelWhatsApp, ChannelUSSD, ChannelWeb:
		return true
	}
	return false
}
