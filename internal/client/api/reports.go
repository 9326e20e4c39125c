package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

func reportPath(id int, action string) string {
	p := "/reports/" + strconv.Itoa(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *HTTPClient) ListReports(ctx context.Context, q models.ReportQuery) ([]models.Report, error) {
	var out []models.Report
	if err := c.doJSON(ctx, http.MethodGet, "/reports/", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetReport(ctx context.Context, id int) (*models.Report, error) {
	var out models.Report
	if err := c.doJSON(ctx, http.MethodGet, reportPath(id, ""), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReport validates d locally and submits it. A draft that fails
// validation never reaches the network.
func (c *HTTPClient) CreateReport(ctx context.Context, d models.ReportDraft) (*models.Report, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	var out models.Report
	if err := c.doJSON(ctx, http.MethodPost, "/reports/", nil, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Upvote(ctx context.Context, id int) (*models.VoteResult, error) {
	return c.vote(ctx, id, "upvote")
}

func (c *HTTPClient) Downvote(ctx context.Context, id int) (*models.VoteResult, error) {
	return c.vote(ctx, id, "downvote")
}

func (c *HTTPClient) vote(ctx context.Context, id int, action string) (*models.VoteResult, error) {
	var out models.VoteResult
	if err := c.doJSON(ctx, http.MethodPost, reportPath(id, action), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify confirms a resolved report on behalf of the citizen who filed it.
func (c *HTTPClient) Verify(ctx context.Context, id int, feedback string) (*models.Report, error) {
	return c.resolution(ctx, id, "verify", feedback)
}

// Reopen rejects a resolution and sends the report back to the queue. The
// server requires feedback explaining why.
func (c *HTTPClient) Reopen(ctx context.Context, id int, feedback string) (*models.Report, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, &models.ValidationError{Field: "feedback", Message: "is required"}
	}
	return c.resolution(ctx, id, "reopen", feedback)
}

func (c *HTTPClient) resolution(ctx context.Context, id int, action, feedback string) (*models.Report, error) {
	var q url.Values
	if feedback != "" {
		q = url.Values{"feedback": {feedback}}
	}

	var out models.Report
	if err := c.doJSON(ctx, http.MethodPost, reportPath(id, action), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
