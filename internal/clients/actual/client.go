// Package actual provides a client for the Actual Budget HTTP API
package actual

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"ledgerdash/internal/common"
	"ledgerdash/internal/interfaces"
	"ledgerdash/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerClient = (*Client)(nil)

const (
	DefaultBaseURL   = "http://localhost:5007/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the LedgerClient interface against the Actual Budget
// API. All endpoints are scoped to one budget sync id.
type Client struct {
	baseURL    string
	apiKey     string
	budgetID   string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Actual Budget client for one budget.
func NewClient(apiKey, budgetID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		budgetID: budgetID,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("actual API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// envelope is the standard Actual API response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// get performs a rate-limited GET request and decodes the data envelope.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Actual API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("response missing data envelope for %s", path)
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", path, err)
	}
	return nil
}

// GetAccounts retrieves all accounts for the budget.
func (c *Client) GetAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	path := fmt.Sprintf("/budgets/%s/accounts", c.budgetID)
	if err := c.get(ctx, path, nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// GetCategories retrieves all categories for the budget.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	path := fmt.Sprintf("/budgets/%s/categories", c.budgetID)
	if err := c.get(ctx, path, nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetTransactions retrieves the full transaction history for the budget.
// Amounts come back in integer minor units; dates stay raw strings and
// are normalized later by the aggregator.
func (c *Client) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	path := fmt.Sprintf("/budgets/%s/transactions", c.budgetID)
	if err := c.get(ctx, path, nil, &txs); err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}
