package opentdb

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

const DefaultBaseURL = "https://opentdb.com"

const defaultTimeout = 10 * time.Second

// Params narrows which questions the API returns. Zero values mean "any".
type Params struct {
	Amount     int
	Category   int
	Difficulty string
	Type       string
	Token      string
}

// Result is one question exactly as the API returns it (HTML-encoded).
type Result struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsResponse struct {
	ResponseCode int      `json:"response_code"`
	Results      []Result `json:"results"`
}

type tokenResponse struct {
	ResponseCode    int    `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	Token           string `json:"token"`
}

// Category is a question category offered by the API.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type categoriesResponse struct {
	Categories []Category `json:"trivia_categories"`
}

// Client talks to the Open Trivia DB HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client. The client is used
// as given; WithTimeout does not apply to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a Client with a 10s timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Questions fetches questions. A non-zero response code is returned as
// *APIError alongside no results.
func (c *Client) Questions(ctx context.Context, p Params) ([]Result, error) {
	q := url.Values{}
	amount := p.Amount
	if amount <= 0 {
		amount = 1
	}
	q.Set("amount", strconv.Itoa(amount))
	if p.Category > 0 {
		q.Set("category", strconv.Itoa(p.Category))
	}
	if p.Difficulty != "" {
		q.Set("difficulty", p.Difficulty)
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Token != "" {
		q.Set("token", p.Token)
	}

	var resp questionsResponse
	if err := c.getJSON(ctx, "/api.php", q, &resp); err != nil {
		return nil, err
	}
	if resp.ResponseCode != CodeSuccess {
		return nil, &APIError{Code: resp.ResponseCode}
	}
	if len(resp.Results) == 0 {
		return nil, &APIError{Code: CodeNoResults}
	}
	return resp.Results, nil
}

// RequestToken asks for a new session token. Questions fetched with a
// token are not repeated until the token is reset.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	q := url.Values{"command": {"request"}}
	var resp tokenResponse
	if err := c.getJSON(ctx, "/api_token.php", q, &resp); err != nil {
		return "", err
	}
	if resp.ResponseCode != CodeSuccess {
		return "", &APIError{Code: resp.ResponseCode}
	}
	if resp.Token == "" {
		return "", fmt.Errorf("token response without token: %s", resp.ResponseMessage)
	}
	return resp.Token, nil
}

// ResetToken empties the seen-question list of an existing token.
func (c *Client) ResetToken(ctx context.Context, token string) (string, error) {
	q := url.Values{"command": {"reset"}, "token": {token}}
	var resp tokenResponse
	if err := c.getJSON(ctx, "/api_token.php", q, &resp); err != nil {
		return "", err
	}
	if resp.ResponseCode != CodeSuccess {
		return "", &APIError{Code: resp.ResponseCode}
	}
	if resp.Token == "" {
		return token, nil
	}
	return resp.Token, nil
}

// Categories lists the available question categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, "/api_category.php", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, URL: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
