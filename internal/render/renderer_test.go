package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(config.ReportConfig{
		RecipientNames:  map[string]string{"mjacobson": "Marion", "btran": "Bao"},
		SiteName:        "Avisia.fr",
		ConversionEvent: "contact-request-form",
	}, "Claude 3 Sonnet")
	require.NoError(t, err)
	return r
}

func testData() ReportData {
	email := report.ChannelMetric{Channel: "Email", Sessions: 300, Conversions: 12, EngagementRate: 0.61}
	social := report.ChannelMetric{Channel: "Organic Social", Sessions: 80, Conversions: 1, EngagementRate: 0.40}
	return ReportData{
		Current: report.Snapshot{
			Channels:         []report.ChannelMetric{email, {Channel: "Organic Search", Sessions: 120, Conversions: 4, EngagementRate: 0.55}, social},
			TotalSessions:    500,
			TotalConversions: 17,
			EmailFocus:       &email,
			SocialFocus:      &social,
		},
		Previous: report.Snapshot{
			Channels: []report.ChannelMetric{
				{Channel: "Email", Sessions: 200, Conversions: 12, EngagementRate: 0.50},
				{Channel: "Organic Search", Sessions: 150, Conversions: 2, EngagementRate: 0.55},
			},
			TotalSessions:    350,
			TotalConversions: 14,
		},
		Campaigns:      []report.Campaign{{Campaign: "Spring Sale", Sessions: 42}, {Campaign: "Webinar Q1", Sessions: 18}},
		Period:         report.Period{Start: "2025-02-01", End: "2025-02-28"},
		PreviousPeriod: report.Period{Start: "2025-01-01", End: "2025-01-31"},
		Recipient:      "mjacobson@avisia.fr",
		NarrativeHTML:  `<h4 style="color: #2ea3f2;">Points forts</h4>`,
		GeneratedAt:    time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestEvolutionBadge(t *testing.T) {
	up := EvolutionBadge(12.4)
	assert.Contains(t, up, "↗")
	assert.Contains(t, up, "#00d4aa")
	assert.Contains(t, up, "+12%")

	down := EvolutionBadge(-33.6)
	assert.Contains(t, down, "↘")
	assert.Contains(t, down, "#ff6b9d")
	assert.Contains(t, down, "-34%")

	flat := EvolutionBadge(0)
	assert.Contains(t, flat, "→")
	assert.Contains(t, flat, "#999")
	assert.Contains(t, flat, "0%")

	// Sub-half-percent movements keep their direction; only the
	// displayed number rounds
	small := EvolutionBadge(0.3)
	assert.Contains(t, small, "↗")
	assert.Contains(t, small, "#00d4aa")
	assert.Contains(t, small, "+0%")

	smallDown := EvolutionBadge(-0.3)
	assert.Contains(t, smallDown, "↘")
	assert.Contains(t, smallDown, "#ff6b9d")
}

func TestFormatComma(t *testing.T) {
	assert.Equal(t, "0", FormatComma(0))
	assert.Equal(t, "999", FormatComma(999))
	assert.Equal(t, "1,000", FormatComma(1000))
	assert.Equal(t, "1,234,567", FormatComma(1234567))
	assert.Equal(t, "-12,345", FormatComma(-12345))
}

func TestGreeting(t *testing.T) {
	r := testRenderer(t)

	assert.Equal(t, "Bonjour Marion", r.Greeting("mjacobson@avisia.fr"))
	assert.Equal(t, "Bonjour Bao", r.Greeting("btran@avisia.fr"))
	// Unknown addresses fall back to the capitalized local part
	assert.Equal(t, "Bonjour Dupont", r.Greeting("dupont@avisia.fr"))
	assert.Equal(t, "Bonjour", r.Greeting(""))
}

func TestRenderFullReport(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Render(testData())
	require.NoError(t, err)

	assert.Contains(t, html, "Bonjour Marion")
	assert.Contains(t, html, "Période : 2025-02-01 au 2025-02-28")
	assert.Contains(t, html, "Avisia.fr")

	// Totals with thousands separators and evolution badges
	assert.Contains(t, html, "500")
	// 350 → 500 sessions is +43%
	assert.Contains(t, html, "+43%")

	// Top channel callout
	assert.Contains(t, html, "Email")
	assert.Contains(t, html, "300")

	// Spotlight cards
	assert.Contains(t, html, "Focus Canal Email")
	assert.Contains(t, html, "Focus Réseaux Sociaux")

	// Campaign ranking
	assert.Contains(t, html, "Spring Sale")
	assert.Contains(t, html, "Webinar Q1")

	// Narrative block and model credit
	assert.Contains(t, html, "Points forts")
	assert.Contains(t, html, "Claude 3 Sonnet")

	// Conversion footnote names the tracked event
	assert.Contains(t, html, "contact-request-form")

	// Engagement rendered as a percentage
	assert.Contains(t, html, "61.00%")
}

func TestRenderNoData(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Render(ReportData{Period: report.Period{Start: "2025-02-01", End: "2025-02-28"}})
	require.NoError(t, err)

	assert.Contains(t, html, "Aucune donnée disponible")
	assert.Contains(t, html, "2025-02-01")
	assert.NotContains(t, html, "Résumé Exécutif")
}

func TestRenderEmptyCampaignsFallback(t *testing.T) {
	r := testRenderer(t)
	data := testData()
	data.Campaigns = nil

	html, err := r.Render(data)
	require.NoError(t, err)
	assert.Contains(t, html, "Aucune donnée de campagne disponible")
}

func TestRenderCampaignsCappedAtTen(t *testing.T) {
	r := testRenderer(t)
	data := testData()
	data.Campaigns = nil
	for i := 0; i < 15; i++ {
		data.Campaigns = append(data.Campaigns, report.Campaign{
			Campaign: fmt.Sprintf("Campaign %02d", i),
			Sessions: 100 - i,
		})
	}

	html, err := r.Render(data)
	require.NoError(t, err)
	assert.Contains(t, html, "Campaign 09")
	assert.NotContains(t, html, "Campaign 10")
	assert.Equal(t, 10, strings.Count(html, "Campaign "))
}

func TestRenderNoSpotlights(t *testing.T) {
	r := testRenderer(t)
	data := testData()
	data.Current.EmailFocus = nil
	data.Current.SocialFocus = nil

	html, err := r.Render(data)
	require.NoError(t, err)
	assert.NotContains(t, html, "Focus Canal Email")
	assert.NotContains(t, html, "Focus Réseaux Sociaux")
}

func TestRenderPerRowEvolutionComputedInline(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Render(testData())
	require.NoError(t, err)

	// Email sessions went 200 → 300: +50%
	assert.Contains(t, html, "+50%")
	// Organic Search sessions went 150 → 120: -20%
	assert.Contains(t, html, "-20%")
	// Organic Social is new this period: exactly +100%
	assert.Contains(t, html, "+100%")
}
