package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/logging"
)

// Client is the set of backend operations the CLI uses.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) error

	ListReports(ctx context.Context, q models.ReportQuery) ([]models.Report, error)
	GetReport(ctx context.Context, id int) (*models.Report, error)
	CreateReport(ctx context.Context, d models.ReportDraft) (*models.Report, error)
	Upvote(ctx context.Context, id int) (*models.VoteResult, error)
	Downvote(ctx context.Context, id int) (*models.VoteResult, error)
	Verify(ctx context.Context, id int, feedback string) (*models.Report, error)
	Reopen(ctx context.Context, id int, feedback string) (*models.Report, error)

	Hotspots(ctx context.Context) ([]models.Hotspot, error)
}

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// New builds a client for the server at baseURL. tokens may be nil for an
// anonymous client; log may be nil.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:   http.DefaultTransport,
				tokens: tokens,
				log:    log.With("component", "api"),
			},
		},
	}, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and decodes a 2xx JSON body into out (when out is
// not nil). Non-2xx statuses become errors via mapStatus.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return mapStatus(resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, query, "", nil, out)
	}
	buf, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, path, query, "application/json", bytes.NewReader(buf), out)
}

// Ping checks that the server answers on its root path.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, "", nil, nil)
}
