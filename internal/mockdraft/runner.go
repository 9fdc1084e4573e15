package mockdraft

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sherrin/internal/draft/engine"
	"github.com/okian/sherrin/internal/draft/forecast"
	"github.com/okian/sherrin/pkg/logger"
)

// applyGrace is how long the runner waits for asynchronously applied
// external events to land before re-reading the board.
const applyGrace = 50 * time.Millisecond

// rivalPoolDepth is how far down the board rival teams reach: rivals draft
// plausibly, not perfectly.
const rivalPoolDepth = 6

// Run drives a full mock draft against the server at cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Teams < 2 {
		return errors.New("mock draft needs at least two teams")
	}
	totalPicks := cfg.Rounds * cfg.Teams
	if cfg.Candidates < totalPicks {
		return fmt.Errorf("pool of %d cannot cover %d picks", cfg.Candidates, totalPicks)
	}

	log := logger.Get().Named("mockdraft")
	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	c := newClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{}

	log.Info(ctx, "loading synthetic pool",
		logger.Int("candidates", cfg.Candidates),
		logger.Int("teams", cfg.Teams),
		logger.Int("rounds", cfg.Rounds),
	)
	if err := c.loadPool(ctx, generatePool(cfg)); err != nil {
		return fmt.Errorf("loading pool: %w", err)
	}

	for pick := 1; pick <= totalPicks; pick++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		team := forecast.TeamAtPick(pick, cfg.Teams)
		board, err := c.board(ctx, rivalPoolDepth)
		if err != nil {
			return fmt.Errorf("reading board before pick %d: %w", pick, err)
		}
		candidateID := choose(board, team == cfg.MyTeam, rng)
		if candidateID == "" {
			return fmt.Errorf("no available candidate at pick %d", pick)
		}

		if team == cfg.MyTeam {
			// My picks go through the synchronous endpoint, like the UI would.
			status, err := c.postPick(ctx, candidateID, team)
			if err != nil || status != http.StatusCreated {
				stats.recordFailed()
				log.Warn(ctx, "pick submission failed",
					logger.Int("pick", pick), logger.Int("status", status))
				continue
			}
			stats.recordSubmitted()
		} else {
			status, err := submitRivalPick(ctx, c, candidateID, team, pick)
			switch {
			case err != nil || status >= http.StatusBadRequest:
				stats.recordFailed()
				log.Warn(ctx, "event submission failed",
					logger.Int("pick", pick), logger.Int("status", status))
				continue
			case status == http.StatusOK:
				stats.recordDuplicate()
			default:
				stats.recordSubmitted()
			}
			// Events apply asynchronously; give the applier a beat.
			time.Sleep(applyGrace)
		}

		if cfg.Verbose {
			log.Info(ctx, "pick made",
				logger.Int("pick", pick),
				logger.Int("team", team),
				logger.String("candidateID", candidateID),
			)
		}
	}

	return summarize(ctx, c, log, stats)
}

// submitRivalPick posts a rival team's pick as an external feed event,
// re-sending one pick in twenty to exercise the dedupe path.
func submitRivalPick(ctx context.Context, c *client, candidateID string, team, pick int) (int, error) {
	e := eventPayload{
		EventID:     uuid.NewString(),
		CandidateID: candidateID,
		Team:        team,
		OverallPick: pick,
		TS:          time.Now().UTC().Format(time.RFC3339),
	}
	status, err := c.postEvent(ctx, e)
	if err != nil {
		return status, err
	}
	if pick%20 == 0 {
		if dupStatus, dupErr := c.postEvent(ctx, e); dupErr == nil && dupStatus == http.StatusOK {
			return http.StatusOK, nil
		}
	}
	return status, nil
}

// choose picks a candidate off the board: my team takes the top pick-now
// score, rivals sample from the top of the board.
func choose(board engine.Board, mine bool, rng *rand.Rand) string {
	available := make([]engine.CandidateMetrics, 0, len(board.Metrics))
	for _, m := range board.Metrics {
		if !m.Drafted {
			available = append(available, m)
		}
	}
	if len(available) == 0 {
		return ""
	}
	if mine {
		best := available[0]
		for _, m := range available[1:] {
			if m.PickNow > best.PickNow {
				best = m
			}
		}
		return best.CandidateID
	}
	return available[rng.Intn(len(available))].CandidateID
}

func summarize(ctx context.Context, c *client, log logger.Logger, stats *Stats) error {
	f, err := c.forecast(ctx)
	if err != nil {
		return fmt.Errorf("reading forecast: %w", err)
	}
	serverStats, err := c.stats(ctx)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	log.Info(ctx, "mock draft complete",
		logger.Int("submitted", int(stats.Submitted)),
		logger.Int("duplicates", int(stats.Duplicates)),
		logger.Int("failed", int(stats.Failed)),
		logger.Int("picksUntilMyTurn", f.PicksUntilMyTurn),
		logger.Any("serverStats", serverStats),
	)
	if stats.Failed > 0 {
		return fmt.Errorf("%d submissions failed", stats.Failed)
	}
	return nil
}
