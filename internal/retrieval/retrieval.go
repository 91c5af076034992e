// Package retrieval fetches supporting planning-knowledge snippets for a
// query from a semantic search service. Retrieval is strictly
// best-effort: the planner degrades to an empty knowledge context when
// the service is down, misconfigured, or returns nothing.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Retriever returns supporting text snippets for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// Config holds the knowledge-base client settings.
type Config struct {
	Endpoint  string // empty disables retrieval
	TopK      int
	TimeoutMs int
}

// DefaultConfig returns a Config with retrieval disabled.
func DefaultConfig() Config {
	return Config{TopK: 3, TimeoutMs: 10000}
}

// LoadConfig reads knowledge-base settings from MOODFLOW_KB_* environment
// variables.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MOODFLOW_KB_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MOODFLOW_KB_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopK = n
		}
	}
	if v := os.Getenv("MOODFLOW_KB_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	return cfg
}

// httpRetriever queries a knowledge-base service over HTTP.
type httpRetriever struct {
	cfg  Config
	http *http.Client
}

// NewHTTPRetriever creates a Retriever for the configured endpoint.
// With an empty endpoint it returns a no-op Retriever.
func NewHTTPRetriever(cfg Config) Retriever {
	if cfg.Endpoint == "" {
		return Noop{}
	}
	return &httpRetriever{cfg: cfg, http: &http.Client{}}
}

type retrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type retrieveResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

func (r *httpRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	data, err := json.Marshal(retrieveRequest{Query: query, TopK: r.cfg.TopK})
	if err != nil {
		return nil, fmt.Errorf("marshaling retrieval request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint+"/retrieve", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating retrieval request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading retrieval response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge base returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed retrieveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding retrieval response: %w", err)
	}

	snippets := make([]string, 0, len(parsed.Results))
	for _, res := range parsed.Results {
		if res.Text != "" {
			snippets = append(snippets, res.Text)
		}
	}
	return snippets, nil
}

// Noop is a Retriever that always returns nothing.
type Noop struct{}

func (Noop) Retrieve(context.Context, string) ([]string, error) {
	return nil, nil
}
