// Package nyt fetches the daily Strands puzzle solution. The endpoint is
// unreliable and callers treat every failure, including a blank spangram,
// as "try again on the next submission".
package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Solution is the published puzzle metadata for one day.
type Solution struct {
	Spangram   string   `json:"spangram"`
	Clue       string   `json:"clue"`
	ThemeWords []string `json:"themeWords"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://www.nytimes.com/svc/strands/v2",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Solution fetches the solution for the given calendar day. A response
// with a missing or blank spangram counts as a failure.
func (c *Client) Solution(ctx context.Context, day time.Time) (*Solution, error) {
	url := fmt.Sprintf("%s/%s.json", c.BaseURL, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "strands-bot/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var solution Solution
	if err := json.NewDecoder(resp.Body).Decode(&solution); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if strings.TrimSpace(solution.Spangram) == "" {
		return nil, fmt.Errorf("solution for %s is missing a spangram", day.Format("2006-01-02"))
	}

	return &solution, nil
}
