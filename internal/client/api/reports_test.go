package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pothole = models.Report{
	ID: 7, Title: "Pothole", Description: "Deep", Category: "pothole",
	Status: models.StatusPending, Severity: models.SeverityHigh, Upvotes: 2,
	Latitude: 56.95, Longitude: 24.1, CreatedAt: "2024-05-01T10:00:00",
}

func TestListReports_PassesQuery(t *testing.T) {
	var query map[string]string
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.GET("/reports/", func(ctx *gin.Context) {
			query = map[string]string{
				"category": ctx.Query("category"),
				"lat":      ctx.Query("lat"),
				"lon":      ctx.Query("lon"),
				"radius":   ctx.Query("radius"),
			}
			ctx.JSON(http.StatusOK, []models.Report{pothole})
		})
	})

	got, err := c.ListReports(context.Background(), models.ReportQuery{
		Category: "pothole",
		Near:     &models.GeoPoint{Lat: 1.5, Lon: 2.5},
		RadiusM:  300,
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]models.Report{pothole}, got); diff != "" {
		t.Errorf("ListReports mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]string{"category": "pothole", "lat": "1.5", "lon": "2.5", "radius": "300"}, query)
}

func TestGetReport(t *testing.T) {
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.GET("/reports/:id", func(ctx *gin.Context) {
			if ctx.Param("id") != "7" {
				ctx.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
				return
			}
			ctx.JSON(http.StatusOK, pothole)
		})
	})

	got, err := c.GetReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, pothole, *got)

	_, err = c.GetReport(context.Background(), 8)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Report not found")
}

func TestCreateReport(t *testing.T) {
	var body models.ReportDraft
	var auth string
	c := newTestClient(t, staticToken("tok1"), func(r *gin.Engine) {
		r.POST("/reports/", func(ctx *gin.Context) {
			auth = ctx.GetHeader("Authorization")
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.Status(http.StatusUnprocessableEntity)
				return
			}
			created := pothole
			created.Title = body.Title
			created.ImageURL = body.ImageURL
			ctx.JSON(http.StatusOK, created)
		})
	})

	img := "https://cdn.example.com/reports/a.jpg"
	draft := models.ReportDraft{Title: "Hole", Description: "Big", Category: "pothole", Latitude: 1, Longitude: 2, ImageURL: &img}
	got, err := c.CreateReport(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Hole", got.Title)
	assert.Equal(t, draft, body)
	assert.Equal(t, "Bearer tok1", auth)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, img, *got.ImageURL)
}

func TestCreateReport_InvalidDraftNeverSent(t *testing.T) {
	calls := 0
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.POST("/reports/", func(ctx *gin.Context) {
			calls++
			ctx.Status(http.StatusOK)
		})
	})

	_, err := c.CreateReport(context.Background(), models.ReportDraft{Description: "d", Category: "pothole"})
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, calls)
}

func TestVotes(t *testing.T) {
	votes := 5
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.POST("/reports/:id/upvote", func(ctx *gin.Context) {
			votes++
			ctx.JSON(http.StatusOK, gin.H{"message": "Upvoted", "upvotes": votes})
		})
		r.POST("/reports/:id/downvote", func(ctx *gin.Context) {
			votes--
			ctx.JSON(http.StatusOK, gin.H{"message": "Downvoted", "upvotes": votes})
		})
	})

	ctx := context.Background()
	res, err := c.Upvote(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.VoteResult{Message: "Upvoted", Upvotes: 6}, *res)

	res, err = c.Downvote(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Upvotes)
}

func TestVerifyAndReopen(t *testing.T) {
	var lastFeedback string
	handler := func(status models.Status) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			id, _ := strconv.Atoi(ctx.Param("id"))
			lastFeedback = ctx.Query("feedback")
			out := pothole
			out.ID = id
			out.Status = status
			fb := lastFeedback
			out.CitizenFeedback = &fb
			ctx.JSON(http.StatusOK, out)
		}
	}
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.POST("/reports/:id/verify", handler(models.StatusClosed))
		r.POST("/reports/:id/reopen", handler(models.StatusReopened))
	})
	ctx := context.Background()

	got, err := c.Verify(ctx, 3, "thanks")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, got.Status)
	assert.Equal(t, "thanks", lastFeedback)

	got, err = c.Reopen(ctx, 3, "still broken")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReopened, got.Status)
	assert.Equal(t, 3, got.ID)
	assert.Equal(t, "still broken", lastFeedback)
}

func TestReopen_RequiresFeedback(t *testing.T) {
	c, err := New("http://127.0.0.1:1", 0, nil, nil)
	require.NoError(t, err)

	_, err = c.Reopen(context.Background(), 3, "  ")
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestHotspots(t *testing.T) {
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.GET("/analytics/predictive-maintenance", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"hotspots": []gin.H{{
				"category":       "pothole",
				"report_count":   4,
				"location":       gin.H{"lat": 56.9, "lon": 24.1},
				"recommendation": "Schedule road maintenance",
			}}})
		})
	})

	got, err := c.Hotspots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Hotspot{{
		Category: "pothole", ReportCount: 4,
		Location:       models.GeoPoint{Lat: 56.9, Lon: 24.1},
		Recommendation: "Schedule road maintenance",
	}}, got)
}

func TestHotspots_Forbidden(t *testing.T) {
	c := newTestClient(t, nil, func(r *gin.Engine) {
		r.GET("/analytics/predictive-maintenance", func(ctx *gin.Context) {
			ctx.JSON(http.StatusForbidden, gin.H{"detail": "Not authorized"})
		})
	})

	_, err := c.Hotspots(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}
