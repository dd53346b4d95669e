// Package report implements the channel/campaign aggregation and
// evolution-rate pipeline: it turns normalized GA4 rows into channel
// snapshots, time series, ranked campaign lists and period-over-period
// deltas suitable for both the rendered email and the stored snapshot.
package report

import "strconv"

// Row is one normalized result row: positional dimension values
// followed by positional metric values, all as strings (GA4 returns
// every value as a string, numeric coercion happens at aggregation).
type Row struct {
	Dimensions []string
	Metrics    []string
}

// Table is a normalized tabular query result.
type Table struct {
	DimensionHeaders []string
	MetricHeaders    []string
	Rows             []Row
}

// ChannelMetric holds one channel's acquisition metrics for a period.
type ChannelMetric struct {
	Channel            string  `json:"channel"`
	Sessions           int     `json:"sessions"`
	Conversions        int     `json:"conversions"`
	Revenue            float64 `json:"revenue"`
	EngagementRate     float64 `json:"engagement_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
}

// Snapshot is the aggregated channel view of one reporting period:
// all channels sorted descending by sessions, running totals, and the
// two spotlight channels surfaced distinctly in the report.
type Snapshot struct {
	Channels         []ChannelMetric `json:"channels"`
	TotalSessions    int             `json:"total_sessions"`
	TotalConversions int             `json:"total_conversions"`
	TotalRevenue     float64         `json:"total_revenue"`
	EmailFocus       *ChannelMetric  `json:"email_focus,omitempty"`
	SocialFocus      *ChannelMetric  `json:"social_focus,omitempty"`
}

// IsEmpty reports whether the snapshot carries no channel data.
func (s Snapshot) IsEmpty() bool {
	return len(s.Channels) == 0
}

// TopChannel returns the highest-traffic channel, or nil for an empty
// snapshot.
func (s Snapshot) TopChannel() *ChannelMetric {
	if len(s.Channels) == 0 {
		return nil
	}
	return &s.Channels[0]
}

// TimeSeries is a dense date × channel sessions table: one ascending
// date axis and, per channel, a series of equal length zero-filled
// where the source had no row for that (date, channel) pair.
type TimeSeries struct {
	Dates     []string         `json:"dates"`
	ByChannel map[string][]int `json:"by_channel"`
}

// Campaign is one ranked campaign entry.
type Campaign struct {
	Campaign string `json:"campaign"`
	Sessions int    `json:"sessions"`
}

// dimAt returns the dimension value at index i, or def when the row is
// too short.
func (r Row) dimAt(i int, def string) string {
	if i >= len(r.Dimensions) || r.Dimensions[i] == "" {
		return def
	}
	return r.Dimensions[i]
}

// metricInt coerces the metric value at index i to an int, defaulting
// to 0 for short rows or non-numeric values.
func (r Row) metricInt(i int) int {
	if i >= len(r.Metrics) {
		return 0
	}
	// GA4 occasionally returns integer metrics as "12.0"
	if n, err := strconv.Atoi(r.Metrics[i]); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(r.Metrics[i], 64); err == nil {
		return int(f)
	}
	return 0
}

// metricFloat coerces the metric value at index i to a float64,
// defaulting to 0.0 for short rows or non-numeric values.
func (r Row) metricFloat(i int) float64 {
	if i >= len(r.Metrics) {
		return 0
	}
	f, err := strconv.ParseFloat(r.Metrics[i], 64)
	if err != nil {
		return 0
	}
	return f
}
