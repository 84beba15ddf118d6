package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/rentacar-dev/rentacar/internal/cli/credentials"
)

// DefaultErrorMessage is used when a failed response carries no error text
const DefaultErrorMessage = "Request failed"

// Credentials mirrors the fetch credentials modes
type Credentials string

const (
	CredentialsInclude    Credentials = "include"
	CredentialsSameOrigin Credentials = "same-origin"
	CredentialsOmit       Credentials = "omit"
)

// RequestOptions configures a single API request
type RequestOptions struct {
	Method string
	// Body is sent verbatim when it is a []byte, string or io.Reader,
	// otherwise it is JSON encoded.
	Body        any
	Headers     map[string]string
	Credentials Credentials
}

// RequestError is a request the backend answered with a non-2xx status.
// Its message is the backend's error text or DefaultErrorMessage.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// AsRequestError unwraps err into a *RequestError when it is one
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// MergeOptions overlays caller options on the defaults. Headers merge key by
// key with the caller winning; session cookies are always included.
func MergeOptions(opts RequestOptions) RequestOptions {
	merged := RequestOptions{
		Method:  http.MethodGet,
		Body:    opts.Body,
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	if opts.Method != "" {
		merged.Method = strings.ToUpper(opts.Method)
	}
	for k, v := range opts.Headers {
		merged.Headers[http.CanonicalHeaderKey(k)] = v
	}
	merged.Credentials = CredentialsInclude
	return merged
}

// Client represents an HTTP client for the car rental API
type Client struct {
	baseURL    string
	base       *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	cookies    credentials.CookieStore
	log        zerolog.Logger
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client; the session cookie jar is attached to a copy of it
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		hc := *httpClient
		c.httpClient = &hc
	}
}

// WithCookieStore sets where session cookies are persisted
func WithCookieStore(store credentials.CookieStore) Option {
	return func(c *Client) {
		c.cookies = store
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new API client for baseURL, e.g. "http://localhost:5000/api"
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		base:       base,
		httpClient: &http.Client{},
		cookies:    credentials.Default,
		log:        zerolog.Nop(),
		userAgent:  "rentacar-cli",
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.resetJar(); err != nil {
		return nil, err
	}

	saved, err := c.cookies.LoadCookies(c.baseURL)
	if err != nil {
		// a missing keychain only costs the saved session
		c.log.Warn().Err(err).Msg("Failed to load saved session cookies")
	} else if len(saved) > 0 {
		c.jar.SetCookies(c.base, saved)
	}

	return c, nil
}

// BaseURL returns the API base URL requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) resetJar() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c.jar = jar
	c.httpClient.Jar = jar
	return nil
}

// ClearSession drops the session cookies both in memory and in the cookie store
func (c *Client) ClearSession() error {
	if err := c.resetJar(); err != nil {
		return err
	}
	return c.cookies.DeleteCookies(c.baseURL)
}

// Do issues a request to <baseURL><endpoint> and returns the parsed JSON body.
// The body is parsed before the status is inspected because the backend
// answers errors with JSON too.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	merged := MergeOptions(opts)

	body, err := encodeBody(merged.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, merged.Method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range merged.Headers {
		req.Header.Set(k, v)
	}
	requestID := ulid.Make().String()
	req.Header.Set("X-Request-ID", requestID)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", merged.Method).Str("endpoint", endpoint).Str("request_id", requestID).Msg("API request failed")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.persistCookies()

	c.log.Debug().
		Str("method", merged.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("API request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	return data, nil
}

// Request is Do followed by decoding the body into out (when out is non-nil)
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	data, err := c.Do(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) persistCookies() {
	if err := c.cookies.SaveCookies(c.baseURL, c.jar.Cookies(c.base)); err != nil {
		c.log.Warn().Err(err).Msg("Failed to save session cookies")
	}
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

func errorMessage(data json.RawMessage) string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return DefaultErrorMessage
	}
	switch msg := body.Error.(type) {
	case string:
		if msg != "" {
			return msg
		}
	case nil, bool:
	default:
		return fmt.Sprint(msg)
	}
	return DefaultErrorMessage
}
