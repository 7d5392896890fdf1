package matching

import "sort"

const (
	// MinScore is the admission threshold for ranked candidate lists.
	// Candidates must score strictly above it to be listed.
	MinScore = 0.3

	// TopN caps presentation-facing ranked lists.
	TopN = 10
)

type Candidate struct {
	WorkerID int64
	JobID    int64
	Score    float64
}

// Rank drops candidates at or below the admission threshold, sorts the
// rest by score descending, and caps the result at topN. The sort is
// stable: ties keep their input order, so ranking stays deterministic
// no matter how scores were computed.
func Rank(candidates []Candidate, topN int) []Candidate {
	if topN <= 0 {
		topN = TopN
	}

	admitted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > MinScore {
			admitted = append(admitted, c)
		}
	}

	sort.SliceStable(admitted, func(i, j int) bool {
		return admitted[i].Score > admitted[j].Score
	})

	if len(admitted) > topN {
		admitted = admitted[:topN]
	}
	return admitted
}
