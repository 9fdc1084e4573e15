// Package runs flags positional runs in the recent pick window.
package runs

import (
	"fmt"

	"github.com/okian/sherrin/internal/draft/model"
)

// Run detection constants.
const (
	DefaultWindow = 5
	minEvents     = 3
	alertCount    = 3
)

// Alert reports a position dominating the recent pick window.
type Alert struct {
	Position model.Position `json:"position"`
	Count    int            `json:"count"`
	Message  string         `json:"message"`
}

// Detect scans the most recent windowSize events and flags any position
// picked three or more times. Positions tally by the picked candidate's
// primary position (first eligibility entry): the question answered is what
// the market took, not what was optimal. Fewer than three events total is a
// no-op.
func Detect(events []model.DraftEvent, byID map[string]model.Candidate, windowSize int) []Alert {
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}
	if len(events) < minEvents {
		return nil
	}

	start := len(events) - windowSize
	if start < 0 {
		start = 0
	}
	window := events[start:]

	counts := make(map[model.Position]int)
	for _, e := range window {
		c, ok := byID[e.CandidateID]
		if !ok {
			continue
		}
		if p := c.Primary(); p != "" {
			counts[p]++
		}
	}

	var alerts []Alert
	for _, p := range model.Positions() {
		if n := counts[p]; n >= alertCount {
			alerts = append(alerts, Alert{
				Position: p,
				Count:    n,
				Message:  fmt.Sprintf("%s run: %d of the last %d picks", p, n, len(window)),
			})
		}
	}
	return alerts
}
