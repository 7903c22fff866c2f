package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/tokenkit/internal/env"
	"github.com/yourorg/tokenkit/registry"
	"github.com/yourorg/tokenkit/tokens"
)

// HTTPSource fetches USD prices from a JSON price API. The expected response
// is {"price": <number>} for GET {baseURL}/price?symbol=SYM&chain=ID.
type HTTPSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPSource creates a price source for the given API base URL. An empty
// baseURL falls back to the PRICE_API_URL environment variable.
func NewHTTPSource(baseURL, apiKey string) *HTTPSource {
	if baseURL == "" {
		baseURL = env.GetOrDefault("PRICE_API_URL", "")
	}

	return &HTTPSource{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: newRetryClient(),
	}
}

// newRetryClient creates an HTTP client with retry capabilities
func newRetryClient() *http.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.HTTPClient.Timeout = env.GetAsDuration("PRICE_API_TIMEOUT", 10*time.Second)
	c.Logger = nil
	return c.StandardClient()
}

// PriceFn adapts the source to the engine's fallback signature.
func (s *HTTPSource) PriceFn() tokens.FallbackPriceFn {
	return s.Price
}

// Price fetches the USD price for one token descriptor.
func (s *HTTPSource) Price(ctx context.Context, chainID uint64, token registry.TokenDescriptor) (float64, error) {
	if s.baseURL == "" {
		return 0, fmt.Errorf("pricefeed: no price API URL configured")
	}

	query := url.Values{}
	query.Set("symbol", token.Symbol)
	query.Set("chain", strconv.FormatUint(chainID, 10))

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/price?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("pricefeed: creating request: %w", err)
	}

	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	logrus.Debugf("Fetching price for %s on chain %d from %s", token.Symbol, chainID, s.baseURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pricefeed: fetching price for %s: %w", token.Symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("pricefeed: price API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return 0, fmt.Errorf("pricefeed: decoding response: %w", err)
	}

	return response.Price, nil
}
