package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/cityreport/internal/buildinfo"
	"github.com/dmitrijs2005/cityreport/internal/common"
	"github.com/dmitrijs2005/cityreport/internal/logging"
	"github.com/google/uuid"
)

// TokenSource supplies the bearer token of the current session. An empty
// string means anonymous.
type TokenSource interface {
	Token() string
}

// authTransport decorates every request with the session token and a
// request id, and logs the exchange.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	requestID := r.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(common.RequestIDHeaderName, requestID)
	}
	r.Header.Set("User-Agent", common.AppName+"/"+buildinfo.Version)

	r.Header.Del(common.AuthorizationHeaderName)
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(r)
	elapsed := time.Since(start)

	if err != nil {
		t.log.Debug(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestID,
			"duration", elapsed, "error", err)
		return nil, err
	}

	t.log.Debug(r.Context(), "request done",
		"method", r.Method, "path", r.URL.Path, "request_id", requestID,
		"status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
