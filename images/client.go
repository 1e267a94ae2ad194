// Package images finds a reaction GIF for the day's spangram. Tenor is
// the primary provider, giphy the fallback; both return only the first
// search result and every failure is non-fatal to the caller.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Searcher returns the URL of the first GIF matching a query.
type Searcher interface {
	FirstGIF(ctx context.Context, query string) (string, error)
}

// Tenor searches the tenor v2 API.
type Tenor struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewTenor(apiKey string) *Tenor {
	return &Tenor{
		APIKey:  apiKey,
		BaseURL: "https://tenor.googleapis.com/v2/search",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tenorResponse struct {
	Results []struct {
		MediaFormats struct {
			GIF struct {
				URL string `json:"url"`
			} `json:"gif"`
		} `json:"media_formats"`
	} `json:"results"`
}

func (t *Tenor) FirstGIF(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("key", t.APIKey)
	params.Set("q", query)
	params.Set("limit", "1")

	var response tenorResponse
	if err := getJSON(ctx, t.HTTPClient, t.BaseURL+"?"+params.Encode(), &response); err != nil {
		return "", err
	}

	if len(response.Results) == 0 || response.Results[0].MediaFormats.GIF.URL == "" {
		return "", fmt.Errorf("tenor returned no gif for %q", query)
	}
	return response.Results[0].MediaFormats.GIF.URL, nil
}

// Giphy searches the giphy v1 API.
type Giphy struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGiphy(apiKey string) *Giphy {
	return &Giphy{
		APIKey:  apiKey,
		BaseURL: "http://api.giphy.com/v1/gifs/search",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type giphyResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (g *Giphy) FirstGIF(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("api_key", g.APIKey)
	params.Set("q", query)
	params.Set("limit", "1")

	var response giphyResponse
	if err := getJSON(ctx, g.HTTPClient, g.BaseURL+"?"+params.Encode(), &response); err != nil {
		return "", err
	}

	if len(response.Data) == 0 || response.Data[0].URL == "" {
		return "", fmt.Errorf("giphy returned no gif for %q", query)
	}
	return response.Data[0].URL, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "strands-bot/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
