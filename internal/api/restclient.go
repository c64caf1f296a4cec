package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/models"
)

const (
	apiPrefix = "/api/v1"

	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// RESTClient implements Client over the backend's JSON REST API.
type RESTClient struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger
}

// Option configures the client.
type Option func(*RESTClient)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *RESTClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) {
		c.httpClient = hc
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *RESTClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *RESTClient) {
		c.logger = logger
	}
}

// NewRESTClient creates a gateway rooted at baseURL (scheme://host[:port],
// without the API prefix). The token source may return "" while logged out.
func NewRESTClient(baseURL string, tokens TokenSource, opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/") + apiPrefix,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one rate-limited request and decodes a 2xx body into result
// (when result is non-nil). Non-2xx responses are classified per the Client
// error contract.
func (c *RESTClient) do(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.logger.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readDetail(resp)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readDetail extracts the server's error detail. The backend reports errors
// as {"detail": "..."} where detail may also be a list of validation items
// carrying a "msg" field each.
func readDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Detail == nil {
		return http.StatusText(resp.StatusCode)
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}

	return http.StatusText(resp.StatusCode)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SubmitLogin posts form-encoded credentials and returns the bearer token.
func (c *RESTClient) SubmitLogin(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/token", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// SubmitRegistration creates a new account. The created user payload is
// discarded; registration does not log the user in.
func (c *RESTClient) SubmitRegistration(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/auth/register", "application/json", bytes.NewReader(payload), nil)
}

func (c *RESTClient) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/users/me", "", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadCSV submits the statement as multipart form data under the "file"
// field and returns the server's confirmation message.
func (c *RESTClient) UploadCSV(ctx context.Context, filename string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions/upload-csv/", w.FormDataContentType(), &buf, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *RESTClient) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))

	var transactions []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/?"+params.Encode(), "", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *RESTClient) SetCategory(ctx context.Context, transactionID int64, category models.Category) (*models.Transaction, error) {
	payload, err := json.Marshal(map[string]models.Category{"category": category})
	if err != nil {
		return nil, fmt.Errorf("failed to encode category update: %w", err)
	}

	path := fmt.Sprintf("/transactions/%d/category", transactionID)
	var transaction models.Transaction
	if err := c.do(ctx, http.MethodPatch, path, "application/json", bytes.NewReader(payload), &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (c *RESTClient) FetchMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	path := fmt.Sprintf("/transactions/summary/monthly/%d/%d", year, month)
	var summary models.MonthlySummary
	if err := c.do(ctx, http.MethodGet, path, "", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
