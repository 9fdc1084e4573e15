package mockdraft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/sherrin/internal/draft/engine"
	"github.com/okian/sherrin/internal/draft/forecast"
	"github.com/okian/sherrin/internal/draft/model"
)

// client wraps http.Client for the draft API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshaling %s body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding %s response: %w", path, err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) loadPool(ctx context.Context, candidates []model.Candidate) error {
	status, err := c.postJSON(ctx, "/candidates", candidates, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("pool load returned status %d", status)
	}
	return nil
}

func (c *client) board(ctx context.Context, limit int) (engine.Board, error) {
	var board engine.Board
	path := "/board"
	if limit > 0 {
		path = fmt.Sprintf("/board?limit=%d", limit)
	}
	err := c.getJSON(ctx, path, &board)
	return board, err
}

func (c *client) forecast(ctx context.Context) (forecast.Forecast, error) {
	var f forecast.Forecast
	err := c.getJSON(ctx, "/forecast", &f)
	return f, err
}

func (c *client) stats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	err := c.getJSON(ctx, "/stats", &stats)
	return stats, err
}

type pickPayload struct {
	CandidateID string `json:"candidate_id"`
	Team        int    `json:"team"`
}

type eventPayload struct {
	EventID     string `json:"event_id"`
	CandidateID string `json:"candidate_id"`
	Team        int    `json:"team"`
	OverallPick int    `json:"overall_pick"`
	TS          string `json:"ts"`
}

func (c *client) postPick(ctx context.Context, candidateID string, team int) (int, error) {
	return c.postJSON(ctx, "/picks", pickPayload{CandidateID: candidateID, Team: team}, nil)
}

func (c *client) postEvent(ctx context.Context, e eventPayload) (int, error) {
	return c.postJSON(ctx, "/events", e, nil)
}
