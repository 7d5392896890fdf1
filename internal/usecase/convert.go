package usecase

import (
	"strings"

	"mkononi/internal/domain/job"
	"mkononi/internal/domain/matching"
	"mkononi/internal/domain/worker"
)

func engineWorker(w worker.Worker) matching.Worker {
	return matching.Worker{
		Skills:            w.Skills,
		Location:          w.Location,
		ExperienceLevel:   w.ExperienceLevel,
		PreferredJobTypes: w.PreferredJobTypes,
	}
}

func engineJob(j job.Job) matching.Job {
	return matching.Job{
		RequiredSkills: j.RequiredSkills,
		Location:       j.Location,
		JobType:        j.JobType,
	}
}

// splitSkills parses the comma-separated skill list used by the text
// channels ("plumbing,electrical"), trimming whitespace and dropping
// empty entries.
func splitSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
