package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/sherrin/internal/mockdraft"
	"github.com/okian/sherrin/pkg/logger"
)

// Default configuration constants.
const (
	defaultCandidates = 300
	defaultTeams      = 6
	defaultMyTeam     = 1
	defaultRounds     = 10
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the draft service")
		candidates = flag.Int("candidates", defaultCandidates, "Size of the synthetic candidate pool")
		teams      = flag.Int("teams", defaultTeams, "Number of teams in the draft")
		myTeam     = flag.Int("my-team", defaultMyTeam, "Draft slot to play as")
		rounds     = flag.Int("rounds", defaultRounds, "Number of draft rounds to simulate")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Pool generation seed (same seed, same draft)")
		verbose    = flag.Bool("verbose", false, "Log every pick")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &mockdraft.Config{
		BaseURL:    *baseURL,
		Candidates: *candidates,
		Teams:      *teams,
		MyTeam:     *myTeam,
		Rounds:     *rounds,
		Timeout:    *timeout,
		Seed:       *seed,
		Verbose:    *verbose,
	}
	if err := mockdraft.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("mock draft failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
