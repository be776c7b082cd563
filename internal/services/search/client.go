// Package search queries the Google Custom Search JSON API.
//
// One GET per query, no paging, no caching and no retries: the provider's
// own quotas apply untouched.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/metrics"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// ErrCredentialsMissing is returned before any I/O when the API key or
// search engine ID is unset.
var ErrCredentialsMissing = errors.New("Google API credentials not configured")

// responseSchema describes the parts of the provider response we read.
// Everything else the provider sends is ignored.
var responseSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title":       {"type": "string"},
          "link":        {"type": "string"},
          "displayLink": {"type": "string"},
          "snippet":     {"type": "string"}
        }
      }
    },
    "searchInformation": {
      "type": "object",
      "properties": {
        "totalResults": {"type": "string"}
      }
    }
  }
}`)

// Config configures the search client.
type Config struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
}

// Client talks to the search provider.
type Client struct {
	config     Config
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a new search client.
func New(config Config, log *zap.Logger) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		log: log.With(zap.String("upstream", metrics.UpstreamGoogleSearch)),
	}
}

type apiResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
		Snippet     string `json:"snippet"`
	} `json:"items"`
	SearchInformation *struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs query against the provider. Results are returned in provider
// order; Items is never nil and TotalResults defaults to "0".
func (c *Client) Search(ctx context.Context, query string) (res *models.SearchResults, err error) {
	if c.config.APIKey == "" || c.config.EngineID == "" {
		return nil, ErrCredentialsMissing
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamGoogleSearch, start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", redactKey(err, c.config.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API returned %d: %s", resp.StatusCode, errorMessage(body))
	}

	result, err := gojsonschema.Validate(responseSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("unexpected search response: %s", strings.Join(errs, "; "))
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	res = &models.SearchResults{
		Items:        make([]models.SearchResultItem, 0, len(parsed.Items)),
		TotalResults: "0",
	}
	for _, item := range parsed.Items {
		res.Items = append(res.Items, models.SearchResultItem{
			Title:       item.Title,
			Link:        item.Link,
			DisplayLink: item.DisplayLink,
			Snippet:     item.Snippet,
		})
	}
	if parsed.SearchInformation != nil && parsed.SearchInformation.TotalResults != "" {
		res.TotalResults = parsed.SearchInformation.TotalResults
	}

	c.log.Info("search completed",
		zap.String("query", query),
		zap.Int("resultCount", len(res.Items)),
		zap.String("totalResults", res.TotalResults))

	return res, nil
}

func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("key", c.config.APIKey)
	params.Set("cx", c.config.EngineID)
	params.Set("q", query)

	base := c.config.BaseURL
	if strings.Contains(base, "?") {
		return base + "&" + params.Encode()
	}
	return base + "?" + params.Encode()
}

// errorMessage pulls the provider's error message out of a failed response,
// falling back to the raw body.
func errorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// redactKey strips the API key from transport errors, which quote the URL.
func redactKey(err error, key string) error {
	msg := err.Error()
	if key == "" {
		return err
	}
	redacted := strings.ReplaceAll(strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED"), key, "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}
