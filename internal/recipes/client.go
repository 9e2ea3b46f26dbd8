package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// Catalog defines the read side of the recipe API. It is implemented by
// *Client and can be replaced in tests.
type Catalog interface {
	FetchRecipes(ctx context.Context, categoryID int64) ([]Recipe, error)
	FetchRecipe(ctx context.Context, id int64) (Recipe, error)
	FetchCategories(ctx context.Context) ([]Category, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the recipe HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultAPIURL     = "http://127.0.0.1:5555"
	defaultUserAgent  = "cookbook/0.1"
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 64 * 1024
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger routes request diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL. A bare host:port
// is accepted and assumed to be plain http.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint resolves path against the API root and returns an absolute URL.
func (c *Client) Endpoint(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

// FetchRecipes lists recipes. A positive categoryID scopes the list to that
// category; zero lists every recipe.
func (c *Client) FetchRecipes(ctx context.Context, categoryID int64) ([]Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if categoryID > 0 {
		values.Set("category_id", strconv.FormatInt(categoryID, 10))
	}
	rel := &url.URL{Path: "/recipes", RawQuery: values.Encode()}
	var payload []Recipe
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchRecipe retrieves the full detail of one recipe.
func (c *Client) FetchRecipe(ctx context.Context, id int64) (Recipe, error) {
	if c == nil {
		return Recipe{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Recipe{}, fmt.Errorf("recipe id required")
	}
	var payload Recipe
	if err := c.doJSON(ctx, http.MethodGet, recipePath(id), nil, &payload); err != nil {
		return Recipe{}, err
	}
	return payload, nil
}

// FetchCategories lists categories with their nested recipes.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Category
	if err := c.doJSON(ctx, http.MethodGet, &url.URL{Path: "/categories"}, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateRecipe posts a recipe as multipart form data.
func (c *Client) CreateRecipe(ctx context.Context, draft Draft) (Recipe, error) {
	if c == nil {
		return Recipe{}, fmt.Errorf("client is nil")
	}
	var payload Recipe
	if err := c.doMultipart(ctx, http.MethodPost, &url.URL{Path: "/recipes"}, draft, &payload); err != nil {
		return Recipe{}, err
	}
	return payload, nil
}

// UpdateRecipe replaces a recipe's fields with draft.
func (c *Client) UpdateRecipe(ctx context.Context, id int64, draft Draft) (Recipe, error) {
	if c == nil {
		return Recipe{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Recipe{}, fmt.Errorf("recipe id required")
	}
	var payload Recipe
	if err := c.doMultipart(ctx, http.MethodPut, recipePath(id), draft, &payload); err != nil {
		return Recipe{}, err
	}
	return payload, nil
}

// ParseRecipe asks the API to extract a recipe from the page at pageURL.
func (c *Client) ParseRecipe(ctx context.Context, pageURL string) (ParsedRecipe, error) {
	if c == nil {
		return ParsedRecipe{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(pageURL) == "" {
		return ParsedRecipe{}, fmt.Errorf("recipe url required")
	}
	var payload ParsedRecipe
	body := map[string]string{"url": strings.TrimSpace(pageURL)}
	if err := c.doJSON(ctx, http.MethodPost, &url.URL{Path: "/parse-recipe"}, body, &payload); err != nil {
		return ParsedRecipe{}, err
	}
	return payload, nil
}

// Login starts a session. The session cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.doJSON(ctx, http.MethodPost, &url.URL{Path: "/login"}, creds, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// Send performs a JSON mutation against an absolute URL produced by an
// endpoint builder. A nil payload sends no body.
func (c *Client) Send(ctx context.Context, method, rawURL string, payload any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	target, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", rawURL, err)
	}
	return c.doJSON(ctx, method, target, payload, nil)
}

func recipePath(id int64) *url.URL {
	return &url.URL{Path: "/recipes/" + strconv.FormatInt(id, 10)}
}

func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, rel, body, contentType, dest)
}

func (c *Client) doMultipart(ctx context.Context, method string, rel *url.URL, draft Draft, dest any) error {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	return c.do(ctx, method, rel, body, contentType, dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log := c.logger.With("method", method, "path", reqURL.Path, "request_id", requestID)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	log = log.With("status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Method: method, Path: reqURL.Path}
		var envelope errorEnvelope
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = strings.TrimSpace(envelope.Error)
		}
		log.Info("request rejected", "error", apiErr.Message)
		return apiErr
	}
	log.Debug("request complete")

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		log.Warn("decode failed", "error", err)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func encodeDraft(draft Draft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"title", draft.Title},
		{"description", draft.Description},
		{"instructions", strings.Join(draft.Instructions, "\n")},
		{"categories", strings.Join(draft.Categories, ", ")},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("write %s field: %w", f.key, err)
		}
	}
	for i, ing := range draft.Ingredients {
		if err := w.WriteField(fmt.Sprintf("ingredients[%d][name]", i), ing.Name); err != nil {
			return nil, "", fmt.Errorf("write ingredient %d: %w", i, err)
		}
		if err := w.WriteField(fmt.Sprintf("ingredients[%d][quantity]", i), ing.Quantity); err != nil {
			return nil, "", fmt.Errorf("write ingredient %d: %w", i, err)
		}
	}
	if path := strings.TrimSpace(draft.ImagePath); path != "" {
		if err := attachImage(w, path); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachImage(w *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	part, err := w.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
