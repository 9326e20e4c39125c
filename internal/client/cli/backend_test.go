package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cityreport/internal/client/config"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/logging"
)

// fakeBackend imitates the CityReport API closely enough for the commands.
type fakeBackend struct {
	mu sync.Mutex

	users   map[string]models.Role
	reports []models.Report
	drafts  []models.ReportDraft

	listCalls    int
	auth         []string
	rejectCreate bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[string]models.Role{
			"a@b.com":       models.RoleCitizen,
			"cop@city.gov":  models.RoleOfficer,
			"boss@city.gov": models.RoleAdmin,
		},
		reports: []models.Report{
			{ID: 1, Title: "Broken lamp", Description: "dark", Category: "street_light", Status: models.StatusPending, Severity: models.SeverityLow, Upvotes: 1, CreatedAt: "2024-05-01T10:00:00"},
			{ID: 2, Title: "Huge pothole", Description: "car damaged", Category: "pothole", Status: models.StatusResolved, Severity: models.SeverityCritical, Upvotes: 5, CreatedAt: "2024-05-02T10:00:00"},
		},
	}
}

func (b *fakeBackend) token(email string) string {
	role := b.users[email]
	if role == models.RoleCitizen {
		return "opaque-" + email
	}
	s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": email, "role": string(role)}).
		SignedString([]byte("k"))
	return s
}

func (b *fakeBackend) find(id string) (int, bool) {
	n, _ := strconv.Atoi(id)
	for i, r := range b.reports {
		if r.ID == n {
			return i, true
		}
	}
	return 0, false
}

func (b *fakeBackend) routes() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		b.mu.Lock()
		b.auth = append(b.auth, c.GetHeader("Authorization"))
		b.mu.Unlock()
		c.Next()
	})

	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) })

	r.POST("/auth/login", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		email := c.PostForm("username")
		if _, ok := b.users[email]; !ok || c.PostForm("password") != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": b.token(email), "token_type": "bearer"})
	})
	r.POST("/auth/register", func(c *gin.Context) {
		var body struct{ Email, Password string }
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.users[body.Email]; ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		b.users[body.Email] = models.RoleCitizen
		c.JSON(http.StatusOK, gin.H{"id": len(b.users), "email": body.Email})
	})

	r.GET("/reports/", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.listCalls++
		out := make([]models.Report, 0, len(b.reports))
		for _, rep := range b.reports {
			if cat := c.Query("category"); cat != "" && rep.Category != cat {
				continue
			}
			out = append(out, rep)
		}
		c.JSON(http.StatusOK, out)
	})
	r.POST("/reports/", func(c *gin.Context) {
		var d models.ReportDraft
		if err := c.ShouldBindJSON(&d); err != nil {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreate {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid category"})
			return
		}
		b.drafts = append(b.drafts, d)
		rep := models.Report{
			ID: 100 + len(b.drafts), Title: d.Title, Description: d.Description, Category: d.Category,
			Latitude: d.Latitude, Longitude: d.Longitude, ImageURL: d.ImageURL,
			Status: models.StatusPending, Severity: models.SeverityMedium,
		}
		b.reports = append(b.reports, rep)
		c.JSON(http.StatusOK, rep)
	})
	r.GET("/reports/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		i, ok := b.find(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
			return
		}
		c.JSON(http.StatusOK, b.reports[i])
	})
	vote := func(delta int, msg string) gin.HandlerFunc {
		return func(c *gin.Context) {
			b.mu.Lock()
			defer b.mu.Unlock()
			i, ok := b.find(c.Param("id"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
				return
			}
			b.reports[i].Upvotes += delta
			c.JSON(http.StatusOK, gin.H{"message": msg, "upvotes": b.reports[i].Upvotes})
		}
	}
	r.POST("/reports/:id/upvote", vote(1, "Upvoted"))
	r.POST("/reports/:id/downvote", vote(-1, "Downvoted"))
	resolve := func(status models.Status) gin.HandlerFunc {
		return func(c *gin.Context) {
			b.mu.Lock()
			defer b.mu.Unlock()
			i, ok := b.find(c.Param("id"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
				return
			}
			if status == models.StatusClosed && b.reports[i].Status != models.StatusResolved {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Report is not in resolved state"})
				return
			}
			fb := c.Query("feedback")
			b.reports[i].Status = status
			b.reports[i].CitizenFeedback = &fb
			c.JSON(http.StatusOK, b.reports[i])
		}
	}
	r.POST("/reports/:id/verify", resolve(models.StatusClosed))
	r.POST("/reports/:id/reopen", resolve(models.StatusReopened))

	r.GET("/analytics/predictive-maintenance", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"hotspots": []gin.H{{
			"category": "pothole", "report_count": 3,
			"location":       gin.H{"lat": 56.95, "lon": 24.1},
			"recommendation": "Schedule maintenance for pothole in this area.",
		}}})
	})
	return r
}

type testEnv struct {
	backend *fakeBackend
	cfg     *config.Config
	out     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	b := newFakeBackend()
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = srv.URL
	cfg.RequestTimeout = 5 * time.Second
	cfg.StorePath = filepath.Join(t.TempDir(), "session.db")

	env := &testEnv{backend: b, cfg: cfg, out: &bytes.Buffer{}}
	stubPrintln(t, env.out)
	return env
}

// app builds a fresh App reading the given input lines.
func (e *testEnv) app(t *testing.T, lines ...string) *App {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	a, err := NewApp(context.Background(), e.cfg, logging.Discard(), in, e.out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	a.Restore(context.Background())
	return a
}

// loggedIn returns an App with a session for email.
func (e *testEnv) loggedIn(t *testing.T, email string, lines ...string) *App {
	t.Helper()
	a := e.app(t, lines...)
	require.NoError(t, a.LoginWith(context.Background(), email, "secret"))
	e.out.Reset()
	return a
}

func stubPrintln(t *testing.T, w io.Writer) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(w, a...) }
	t.Cleanup(func() { printlnFn = orig })
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
