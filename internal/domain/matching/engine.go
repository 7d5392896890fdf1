package matching

import (
	"math"
	"strings"
)

// Sub-score weights. They sum to 1.0, so the final clamp in Score is a
// safety net rather than a normal-path behavior.
const (
	skillsWeight     = 0.40
	locationWeight   = 0.30
	experienceWeight = 0.20
	jobTypeWeight    = 0.10
)

type Worker struct {
	Skills            []string
	Location          string
	ExperienceLevel   string
	PreferredJobTypes []string
}

type Job struct {
	RequiredSkills []string
	Location       string
	JobType        string
}

// LocationScorer compares two free-text locations and returns a score in
// [0,1]. It is an interface so the crude string comparison can later be
// swapped for a geocoding-backed matcher without touching callers.
type LocationScorer interface {
	Compare(a, b string) float64
}

// SubstringLocationScorer scores case-insensitive exact matches 1.0,
// one-contains-the-other 0.7, anything else 0.3. A missing location on
// either side is neutral 0.5.
type SubstringLocationScorer struct{}

func (SubstringLocationScorer) Compare(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.5
	}
	al := strings.ToLower(a)
	bl := strings.ToLower(b)
	if al == bl {
		return 1.0
	}
	if strings.Contains(al, bl) || strings.Contains(bl, al) {
		return 0.7
	}
	return 0.3
}

type Engine struct {
	locations LocationScorer
}

func NewEngine(locations LocationScorer) *Engine {
	if locations == nil {
		locations = SubstringLocationScorer{}
	}
	return &Engine{locations: locations}
}

// Score computes the worker/job compatibility score in [0.0, 1.0].
// Pure and deterministic: absent or unknown inputs degrade to neutral
// defaults, never to an error.
func (e *Engine) Score(w Worker, j Job) float64 {
	score := skillsScore(w.Skills, j.RequiredSkills) * skillsWeight
	score += e.locations.Compare(w.Location, j.Location) * locationWeight
	score += experienceScore(w.ExperienceLevel, j.JobType) * experienceWeight
	score += jobTypeScore(w.PreferredJobTypes, j.JobType) * jobTypeWeight
	return math.Min(score, 1.0)
}

// skillsScore is the fraction of the job's required skills the worker
// has, compared case-insensitively. Extra worker skills neither help
// nor hurt.
func skillsScore(workerSkills, requiredSkills []string) float64 {
	if len(workerSkills) == 0 || len(requiredSkills) == 0 {
		return 0.0
	}

	have := make(map[string]struct{}, len(workerSkills))
	for _, s := range workerSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matches := 0
	for _, s := range requiredSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(requiredSkills))
}

var experienceRanks = map[string]int{
	"entry":        1,
	"intermediate": 2,
	"experienced":  3,
	"expert":       4,
}

var jobTypeRequiredRanks = map[string]int{
	"temporary": 1,
	"part_time": 2,
	"contract":  3,
	"full_time": 3,
}

// experienceScore maps the worker's level and the job type onto ordinal
// ranks. Equal ranks score 1.0, overqualification takes a flat 0.8, and
// underqualification scales down to a 0.3 floor.
func experienceScore(workerExperience, jobType string) float64 {
	workerRank, ok := experienceRanks[workerExperience]
	if !ok {
		workerRank = 1
	}
	requiredRank, ok := jobTypeRequiredRanks[jobType]
	if !ok {
		requiredRank = 2
	}

	switch {
	case workerRank == requiredRank:
		return 1.0
	case workerRank > requiredRank:
		return 0.8
	default:
		return math.Max(0.3, float64(workerRank)/float64(requiredRank))
	}
}

func jobTypeScore(preferredTypes []string, jobType string) float64 {
	if len(preferredTypes) == 0 {
		return 0.5
	}
	for _, t := range preferredTypes {
		if t == jobType {
			return 1.0
		}
	}
	return 0.3
}
