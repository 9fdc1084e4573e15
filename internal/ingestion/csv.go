// Package ingestion loads candidate pools from the app-export CSV format.
//
// The exporters in the wild disagree on header spelling, so column lookup
// is header-driven with aliases rather than positional. Rows that cannot
// become a usable candidate are skipped with a warning instead of failing
// the whole load.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/sherrin/internal/draft/model"
)

// columnAliases maps each candidate field to the header spellings accepted
// for it. Matching is case-insensitive.
var columnAliases = map[string][]string{
	"id":        {"player_id", "id"},
	"name":      {"name", "player", "player_name"},
	"positions": {"pos", "position", "positions"},
	"club":      {"club", "team_name"},
	"projected": {"proj_score", "projected", "projection"},
	"bye":       {"bye", "bye_round"},
	"market":    {"adp", "market_rank", "rank"},
	"avg":       {"avg_2025_blend", "avg", "avg_score"},
	"peak":      {"peak_score", "peak", "max_score"},
	"risk":      {"data_risk", "risk"},
	"category":  {"category", "tier"},
	"notes":     {"notes", "smoky_note", "comment"},
}

// Load parses a candidate pool from r. It returns the parsed candidates and
// a warning per skipped row; the error is reserved for unreadable input or
// a header missing the required columns.
func Load(r io.Reader) ([]model.Candidate, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := resolveColumns(header)
	for _, required := range []string{"id", "name", "positions", "projected"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(columnAliases[required], "/"))
		}
	}

	var (
		candidates []model.Candidate
		warnings   []string
		seen       = make(map[string]bool)
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		c, warn := parseRow(record, cols)
		if warn != "" {
			warnings = append(warnings, fmt.Sprintf("line %d: %s", line, warn))
			continue
		}
		if seen[c.ID] {
			warnings = append(warnings, fmt.Sprintf("line %d: duplicate candidate %s", line, c.ID))
			continue
		}
		seen[c.ID] = true
		candidates = append(candidates, c)
	}
	return candidates, warnings, nil
}

// resolveColumns maps field names to column indices using the alias table.
// The first matching alias wins.
func resolveColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := byName[alias]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

func parseRow(record []string, cols map[string]int) (model.Candidate, string) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	c := model.Candidate{
		ID:       field("id"),
		Name:     field("name"),
		Club:     field("club"),
		Risk:     field("risk"),
		Category: strings.ToLower(field("category")),
		Notes:    field("notes"),
	}
	if c.ID == "" {
		return c, "missing player id"
	}
	if c.Name == "" {
		return c, "missing name"
	}

	c.Positions = model.ParsePositions(field("positions"))
	if len(c.Positions) == 0 {
		return c, fmt.Sprintf("no recognized position in %q", field("positions"))
	}

	var err error
	if c.Projected, err = parseFloat(field("projected")); err != nil {
		return c, fmt.Sprintf("bad projected score %q", field("projected"))
	}
	if c.Projected <= 0 {
		return c, "non-positive projected score"
	}

	// Optional numeric columns degrade to zero rather than dropping the row.
	c.ByeRound, _ = parseInt(field("bye"))
	c.MarketRank, _ = parseInt(field("market"))
	c.AvgScore, _ = parseFloat(field("avg"))
	c.PeakScore, _ = parseFloat(field("peak"))
	return c, ""
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	// Market ranks sometimes export as "12.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	return strconv.Atoi(s)
}
