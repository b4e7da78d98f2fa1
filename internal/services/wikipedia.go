package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// WikipediaService fetches short plain-text topic summaries used to enrich
// generation input. Enrichment is best-effort; callers fall back to the
// original text on any error.
type WikipediaService struct {
	httpClient *http.Client
	apiURL     string
}

func NewWikipediaService() *WikipediaService {
	return &WikipediaService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     "https://en.wikipedia.org/w/api.php",
	}
}

// Summary returns up to sentences sentences of the extract for topic.
func (s *WikipediaService) Summary(ctx context.Context, topic string, sentences int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exsentences", strconv.Itoa(sentences))
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("titles", topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "eduaid-backend/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string          `json:"extract"`
				Missing json.RawMessage `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode wikipedia response: %w", err)
	}

	for _, page := range payload.Query.Pages {
		if len(page.Missing) > 0 {
			continue
		}
		if extract := strings.TrimSpace(page.Extract); extract != "" {
			return extract, nil
		}
	}

	return "", fmt.Errorf("no summary found for topic")
}
