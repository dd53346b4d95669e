// Package ga4 talks to the GA4 HTTP bridge that fronts the Google
// Analytics Data API for this deployment.
package ga4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/report"
)

// reportRequest is the bridge's run_report payload.
type reportRequest struct {
	PropertyID string   `json:"property_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
}

// ReportResponse is the bridge's run_report result: named headers plus
// rows of parallel dimension/metric value lists, all strings.
type ReportResponse struct {
	DimensionHeaders []string    `json:"dimension_headers"`
	MetricHeaders    []string    `json:"metric_headers"`
	Rows             []ReportRow `json:"rows"`
}

// ReportRow is one result bucket.
type ReportRow struct {
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
}

// Normalize converts the wire response into the aggregation pipeline's
// positional table shape. A nil receiver or a response without rows
// yields an empty table, never an error. Row order is preserved.
func (r *ReportResponse) Normalize() report.Table {
	if r == nil {
		return report.Table{}
	}
	t := report.Table{
		DimensionHeaders: r.DimensionHeaders,
		MetricHeaders:    r.MetricHeaders,
	}
	if len(r.Rows) == 0 {
		return t
	}
	t.Rows = make([]report.Row, len(r.Rows))
	for i, row := range r.Rows {
		t.Rows[i] = report.Row{Dimensions: row.Dimensions, Metrics: row.Metrics}
	}
	return t
}

// Client is an HTTP client for the GA4 bridge, bound to one property.
type Client struct {
	baseURL    string
	propertyID string
	httpClient *http.Client
}

// NewClient creates a GA4 bridge client for the configured property.
func NewClient(cfg config.GA4Config) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		propertyID: cfg.PropertyID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RunReport executes one dimension/metric query against the bridge for
// the inclusive [startDate, endDate] range and returns the normalized
// row table.
func (c *Client) RunReport(ctx context.Context, startDate, endDate string, dimensions, metrics []string) (report.Table, error) {
	payload := reportRequest{
		PropertyID: c.propertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		Dimensions: dimensions,
		Metrics:    metrics,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return report.Table{}, fmt.Errorf("marshaling report request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/run_report", bytes.NewReader(body))
	if err != nil {
		return report.Table{}, fmt.Errorf("building report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return report.Table{}, fmt.Errorf("fetching GA4 report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return report.Table{}, fmt.Errorf("GA4 bridge returned status %d: %s", resp.StatusCode, snippet)
	}

	var result ReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return report.Table{}, fmt.Errorf("decoding GA4 report: %w", err)
	}

	return result.Normalize(), nil
}
