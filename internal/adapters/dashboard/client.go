// Package dashboard is an HTTP client for the spacebio API
// it implements filterstate.Resolver so the controller can run against a live server
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spacebio/internal/core/filterstate"
	perr "spacebio/internal/platform/errors"
	"spacebio/internal/platform/logger"
	authdomain "spacebio/internal/services/api/auth/domain"
	catdomain "spacebio/internal/services/api/catalog/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "spacebio-browse"
	apiPrefix      = "/api/v1"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// HTTPClient overrides the transport; its Jar is replaced when nil
	HTTPClient *http.Client
}

// Client talks to the API with a cookie jar holding the session
// requests are never retried; a failure is reported and the caller decides
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	if hc.Jar == nil {
		jar, _ := cookiejar.New(nil)
		hc.Jar = jar
	}
	return &Client{http: hc, opts: o, log: *logger.Named("dashboard")}
}

// envelope mirrors the API response body
type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

// do sends one request and decodes the envelope data into out when out is non nil
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.opts.BaseURL + apiPrefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s body", path)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "new request %s", path)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Networkf(err, "%s %s failed", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api response")

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return perr.Networkf(err, "read %s response", path)
	}
	var env envelope
	if jerr := json.Unmarshal(raw, &env); jerr != nil {
		if resp.StatusCode >= 400 {
			return statusError(resp.StatusCode, envelope{Error: http.StatusText(resp.StatusCode)})
		}
		return perr.Wrapf(jerr, perr.ErrorCodeJSON, "decode %s response", path)
	}
	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s data", path)
	}
	return nil
}

// statusError rebuilds a project error from an error envelope
// the server's code wins; the status is the fallback
func statusError(status int, env envelope) error {
	code := env.Code
	if code == perr.ErrorCodeUnknown {
		code = perr.CodeFromHTTPStatus(status)
	}
	msg := env.Error
	if msg == "" {
		msg = http.StatusText(status)
	}
	err := perr.New(code, msg)
	if env.Field != "" {
		err = perr.WithField(err, env.Field)
	}
	return err
}

// searchParams encodes a controller query; "all" and empty filters are omitted
func searchParams(q filterstate.Query) url.Values {
	v := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = filterstate.PageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(size))
	if c := q.Category; c != "" && c != "all" {
		v.Set("category", c)
	}
	if o := q.Organism; o != "" && o != "all" {
		v.Set("organism", o)
	}
	if q.YearFrom != nil {
		v.Set("yearFrom", strconv.Itoa(*q.YearFrom))
	}
	if q.YearTo != nil {
		v.Set("yearTo", strconv.Itoa(*q.YearTo))
	}
	if k := strings.TrimSpace(q.Keyword); k != "" {
		v.Set("keyword", k)
	}
	return v
}

// Search implements filterstate.Resolver
func (c *Client) Search(ctx context.Context, q filterstate.Query) (filterstate.Result, error) {
	var out filterstate.Result
	if err := c.do(ctx, http.MethodGet, "/experiments", searchParams(q), nil, &out); err != nil {
		return filterstate.Result{}, err
	}
	if out.Experiments == nil {
		out.Experiments = []filterstate.Experiment{}
	}
	return out, nil
}

// Stats fetches the catalog breakdown
func (c *Client) Stats(ctx context.Context) (catdomain.Stats, error) {
	var out catdomain.Stats
	err := c.do(ctx, http.MethodGet, "/experiments/stats", nil, nil, &out)
	return out, err
}

// Login starts a session; the cookie stays in the client's jar
func (c *Client) Login(ctx context.Context, email, password string) (authdomain.User, error) {
	var out authdomain.User
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, authdomain.LoginInput{Email: email, Password: password}, &out)
	return out, err
}

// Check reports the session state
func (c *Client) Check(ctx context.Context) (authdomain.CheckResult, error) {
	var out authdomain.CheckResult
	err := c.do(ctx, http.MethodGet, "/auth/check", nil, nil, &out)
	return out, err
}

// Logout ends the session
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

var _ filterstate.Resolver = (*Client)(nil)
