package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type ApplicationCreatedEvent struct {
	Type      string `json:"type"`
	JobID     int64  `json:"job_id"`
	JobTitle  string `json:"job_title"`
	WorkerID  int64  `json:"worker_id"`
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyApplicationCreated pushes a new-application event to the job's
// employer. Safe to call with no hub configured (tests, CLI tools).
func NotifyApplicationCreated(employerID string, jobID int64, jobTitle string, workerID int64, channel string) {
	h := defaultHub.Load()
	if h == nil || employerID == "" {
		return
	}

	evt := ApplicationCreatedEvent{
		Type:      "application_created",
		JobID:     jobID,
		JobTitle:  jobTitle,
		WorkerID:  workerID,
		Channel:   channel,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Send(employerID, b)
}
