package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"docuscraper/internal/config"
	"docuscraper/internal/domain"
	"docuscraper/internal/monitoring"
)

// Provider issues a query against an external search index and returns
// candidate results. Implementations fail soft: transient trouble surfaces
// as an empty slice plus logs, not as an error the caller must handle.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// FirecrawlClient queries the Firecrawl search API.
type FirecrawlClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	retries    int
	retryDelay time.Duration
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

type firecrawlResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"results"`
}

func NewFirecrawlClient(cfg *config.Config, m *monitoring.Metrics, l *zap.Logger) *FirecrawlClient {
	return &FirecrawlClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Duration(cfg.SearchRateLimitMS)*time.Millisecond), 1),
		apiKey:     cfg.FirecrawlAPIKey,
		baseURL:    cfg.FirecrawlURL,
		retries:    cfg.SearchRetries,
		retryDelay: time.Duration(cfg.SearchRetryDelay) * time.Second,
		metrics:    m,
		logger:     l,
	}
}

// Search runs one query, retrying transient failures a fixed number of
// times with a fixed delay. After exhausting retries it returns an empty
// slice; the failure is observable only through logs and metrics.
func (c *FirecrawlClient) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if c.apiKey == "" {
		c.logger.Error("FIRECRAWL_API_KEY not configured, skipping search", zap.String("query", query))
		c.metrics.IncSearches("failed")
		return nil, nil
	}

	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Warn("search cancelled while rate limited", zap.String("query", query), zap.Error(err))
			c.metrics.IncSearches("failed")
			return nil, nil
		}

		results, err := c.doRequest(ctx, query, limit)
		if err == nil {
			c.logger.Info("search completed",
				zap.String("query", query),
				zap.Int("results_count", len(results)))
			if len(results) == 0 {
				c.metrics.IncSearches("empty")
			} else {
				c.metrics.IncSearches("ok")
			}
			return results, nil
		}

		if attempt < c.retries {
			c.logger.Warn("search request failed, retrying",
				zap.String("query", query),
				zap.Int("attempt", attempt),
				zap.Int("retries", c.retries),
				zap.Error(err))
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				c.metrics.IncSearches("failed")
				return nil, nil
			}
		} else {
			c.logger.Error("search failed after retries",
				zap.String("query", query),
				zap.Int("retries", c.retries),
				zap.Error(err))
		}
	}

	c.metrics.IncSearches("failed")
	return nil, nil
}

func (c *FirecrawlClient) doRequest(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider status: %d", resp.StatusCode)
	}

	var fcResp firecrawlResponse
	if err := json.NewDecoder(resp.Body).Decode(&fcResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(fcResp.Results))
	for _, r := range fcResp.Results {
		results = append(results, domain.SearchResult{URL: r.URL, Title: r.Title})
	}
	return results, nil
}
