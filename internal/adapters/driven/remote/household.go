package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.HouseholdService = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// The field network has both patchy links and shared upstream
	// bandwidth, so outgoing requests are throttled.
	defaultRatePerSecond = 2
	defaultRateBurst     = 4
)

// Config holds configuration for the household API client.
type Config struct {
	// BaseURL is the API base URL (required), e.g. https://survey.example.org.
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the household survey API.
type Client struct {
	client   *http.Client
	baseURL  string
	limiter  *rate.Limiter
	sessions driven.SessionStore
}

// loginRequest is the login endpoint request format.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the login endpoint response format.
type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// createResponse is the household creation response format.
type createResponse struct {
	HouseholdID string `json:"householdId"`
}

// errorResponse is the API's error body format.
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a household API client. sessions supplies the bearer
// token for authenticated calls.
func NewClient(cfg Config, sessions driven.SessionStore) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		limiter:  rate.NewLimiter(rate.Limit(defaultRatePerSecond), defaultRateBurst),
		sessions: sessions,
	}, nil
}

// Create submits a transformed record. The idempotency key lets the server
// drop a retransmission of a record it already accepted.
func (c *Client) Create(ctx context.Context, record domain.Record, idempotencyKey string) (*driven.CreateResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	jsonBody, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/households",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &driven.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil || created.HouseholdID == "" {
		return nil, fmt.Errorf("%w: household create body", domain.ErrMalformedResponse)
	}

	logger.Debug("household created: %s", created.HouseholdID)
	return &driven.CreateResult{HouseholdID: created.HouseholdID}, nil
}

// Login exchanges credentials for a bearer session.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	jsonBody, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/auth/login",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrAuthInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &driven.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	var login loginResponse
	if err := json.Unmarshal(body, &login); err != nil || login.Token == "" {
		return nil, fmt.Errorf("%w: login body", domain.ErrMalformedResponse)
	}

	tokenType := login.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &domain.Session{
		Username: username,
		Token: oauth2.Token{
			AccessToken: login.Token,
			TokenType:   tokenType,
			Expiry:      login.ExpiresAt,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Health probes the API's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", domain.ErrUnreachable, resp.StatusCode)
	}
	return nil
}

// authorize attaches the stored bearer token to a request.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	session, err := c.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAuthRequired
		}
		return fmt.Errorf("read session: %w", err)
	}
	if !session.Valid() {
		return domain.ErrAuthRequired
	}
	req.Header.Set("Authorization", "Bearer "+session.Token.AccessToken)
	return nil
}

// errorMessage extracts the server's error text from a response body.
// A body that is not the documented error shape yields an empty message.
func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error
}
