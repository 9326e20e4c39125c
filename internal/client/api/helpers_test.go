package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// newTestClient starts a gin-routed fake backend and returns a client for it.
func newTestClient(t *testing.T, tokens TokenSource, routes func(r *gin.Engine)) *HTTPClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 5*time.Second, tokens, nil)
	require.NoError(t, err)
	return c
}
