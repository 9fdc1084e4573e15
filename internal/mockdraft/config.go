// Package mockdraft drives a synthetic snake draft against a running
// server, exercising the candidate upload, pick, event and board endpoints
// the way a live draft night would.
package mockdraft

import (
	"sync/atomic"
	"time"
)

// Config controls a mock draft run.
type Config struct {
	BaseURL    string
	Candidates int
	Teams      int
	MyTeam     int
	Rounds     int
	Timeout    time.Duration
	Seed       int64
	Verbose    bool
}

// Stats accumulates run counters across submissions.
type Stats struct {
	Submitted  int64
	Duplicates int64
	Failed     int64
}

func (s *Stats) recordSubmitted() { atomic.AddInt64(&s.Submitted, 1) }
func (s *Stats) recordDuplicate() { atomic.AddInt64(&s.Duplicates, 1) }
func (s *Stats) recordFailed()    { atomic.AddInt64(&s.Failed, 1) }
