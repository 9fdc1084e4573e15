// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MyTeam is the draft slot the service advises for (1..Teams).
	MyTeam int `koanf:"my_team"`

	// League shape.
	Teams       int            `koanf:"teams"`
	Starters    map[string]int `koanf:"starters"`
	Emergencies map[string]int `koanf:"emergencies"`
	Bench       int            `koanf:"bench"`

	// FlexBonus is the flat bonus for multi-position eligibility.
	FlexBonus float64 `koanf:"flex_bonus"`

	// Base composite weights.
	ValueWeight    float64 `koanf:"value_weight"`
	ScarcityWeight float64 `koanf:"scarcity_weight"`
	ByeWeight      float64 `koanf:"bye_weight"`

	// Draft phase boundaries as fractions of the total pick count.
	EarlyEnd  float64 `koanf:"early_end"`
	LateStart float64 `koanf:"late_start"`

	// ByeRounds lists the season's bye rounds.
	ByeRounds []int `koanf:"bye_rounds"`

	// VONAThreshold flags cliff candidates; RunWindow sizes run detection.
	VONAThreshold float64 `koanf:"vona_threshold"`
	RunWindow     int     `koanf:"run_window"`

	// FeedURL enables live feed polling when set.
	FeedURL        string `koanf:"feed_url"`
	FeedIntervalMS int    `koanf:"feed_interval_ms"`

	// QueueSize bounds the external pick queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize sets the size of the feed deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxBoardLimit caps GET /board?limit.
	MaxBoardLimit int `koanf:"max_board_limit"`
}

// New creates a Config using roster defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	def := roster.Default()

	starters := make(map[string]int, len(def.Starters))
	emergencies := make(map[string]int, len(def.Emergencies))
	for _, p := range model.Positions() {
		starters[string(p)] = def.Starters[p]
		emergencies[string(p)] = def.Emergencies[p]
	}

	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		MyTeam:         1,
		Teams:          def.Teams,
		Starters:       starters,
		Emergencies:    emergencies,
		Bench:          def.Bench,
		FlexBonus:      def.FlexBonus,
		ValueWeight:    def.Weights.Value,
		ScarcityWeight: def.Weights.Scarcity,
		ByeWeight:      def.Weights.Bye,
		EarlyEnd:       def.EarlyEnd,
		LateStart:      def.LateStart,
		ByeRounds:      append([]int(nil), def.ByeRounds...),
		VONAThreshold:  def.VONAThreshold,
		RunWindow:      def.RunWindow,
		FeedIntervalMS: 2000,
		QueueSize:      4096,
		DedupeSize:     50_000,
		MaxBoardLimit:  1000,
	}
}

// Roster converts the flat configuration into the engine's roster shape.
// Phase pick-now weights keep their defaults; they are a tuning surface,
// not an ops knob.
func (c *Config) Roster() roster.Config {
	out := roster.Default()
	out.Teams = c.Teams
	out.Bench = c.Bench
	out.FlexBonus = c.FlexBonus
	out.Weights = roster.Weights{
		Value:    c.ValueWeight,
		Scarcity: c.ScarcityWeight,
		Bye:      c.ByeWeight,
	}
	out.EarlyEnd = c.EarlyEnd
	out.LateStart = c.LateStart
	out.ByeRounds = append([]int(nil), c.ByeRounds...)
	out.VONAThreshold = c.VONAThreshold
	out.RunWindow = c.RunWindow

	for _, p := range model.Positions() {
		if n, ok := c.Starters[string(p)]; ok {
			out.Starters[p] = n
		}
		if n, ok := c.Emergencies[string(p)]; ok {
			out.Emergencies[p] = n
		}
	}
	return out
}
