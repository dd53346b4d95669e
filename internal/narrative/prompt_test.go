package narrative

import (
	"testing"

	"github.com/avisia/analytics-agent/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	snap := report.Snapshot{
		Channels:      []report.ChannelMetric{{Channel: "Email", Sessions: 300, Conversions: 12}},
		TotalSessions: 300,
	}
	evolution := map[string]float64{"Email": 50.0}
	period := report.Period{Start: "2025-02-01", End: "2025-02-28"}

	prompt := BuildPrompt(snap, evolution, period)

	assert.Contains(t, prompt, "du 2025-02-01 au 2025-02-28")
	// Snapshot embedded as JSON
	assert.Contains(t, prompt, `"channel": "Email"`)
	assert.Contains(t, prompt, `"total_sessions": 300`)
	assert.Contains(t, prompt, `"Email": 50`)
	// Fixed instructions
	assert.Contains(t, prompt, "Ne mentionnez jamais le revenu")
	assert.Contains(t, prompt, "3 recommandations actionnables")
	assert.Contains(t, prompt, "Répondez uniquement en français")
	assert.Contains(t, prompt, "###")
}

func TestBuildPromptEmptySnapshot(t *testing.T) {
	prompt := BuildPrompt(report.Snapshot{}, nil, report.Period{Start: "2025-02-01", End: "2025-02-28"})
	assert.Contains(t, prompt, "Analysez ces données GA4")
	assert.NotEmpty(t, prompt)
}
