package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/render"
	"github.com/avisia/analytics-agent/internal/report"
	"github.com/avisia/analytics-agent/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	start, end string
	dimensions []string
}

type fakeSource struct {
	current   report.Table
	previous  report.Table
	campaigns report.Table
	err       error
	calls     []query
}

func (f *fakeSource) RunReport(_ context.Context, start, end string, dims, metrics []string) (report.Table, error) {
	f.calls = append(f.calls, query{start: start, end: end, dimensions: dims})
	if f.err != nil {
		return report.Table{}, f.err
	}
	if len(dims) > 0 && dims[0] == "sessionCampaignName" {
		return f.campaigns, nil
	}
	if start == "2025-02-01" {
		return f.current, nil
	}
	return f.previous, nil
}

type fakeNarrator struct {
	response string
	prompts  []string
}

func (f *fakeNarrator) Generate(_ context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	if f.response == "" {
		return "### Points forts\n* Bonne progression"
	}
	return f.response
}

func (f *fakeNarrator) ModelID() string { return "test-model" }

type fakeStore struct {
	saved []storage.StoredReport
	err   error
}

func (f *fakeStore) Save(_ context.Context, rep storage.StoredReport) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rep)
	return "analytics_reports/report_" + rep.PeriodStart + "_to_" + rep.PeriodEnd + ".json", nil
}

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent    []sentMail
	failFor map[string]error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) (string, error) {
	if err, ok := f.failFor[to]; ok {
		return "", err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return "msg-" + to, nil
}

func testConfig() config.Config {
	return config.Config{
		GA4: config.GA4Config{PropertyID: "255756835"},
		Report: config.ReportConfig{
			Recipients:      []string{"mjacobson@avisia.fr", "btran@avisia.fr"},
			RecipientNames:  map[string]string{"mjacobson": "Marion", "btran": "Bao"},
			SubjectPrefix:   "Monthly Analytics Report",
			ConversionEvent: "contact-request-form",
			SiteName:        "Avisia.fr",
		},
	}
}

func channelRow(channel string, sessions string) report.Row {
	return report.Row{Dimensions: []string{channel}, Metrics: []string{sessions, "2", "0", "0.5", "60"}}
}

func testRunner(t *testing.T, source *fakeSource, narrator *fakeNarrator, store *fakeStore, sender *fakeSender) *Runner {
	t.Helper()
	cfg := testConfig()
	renderer, err := render.NewRenderer(cfg.Report, narrator.ModelID())
	require.NoError(t, err)

	r := NewRunner(cfg, source, narrator, store, sender, renderer)
	r.now = func() time.Time { return time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC) }
	return r
}

func TestRunFullJob(t *testing.T) {
	source := &fakeSource{
		current: report.Table{Rows: []report.Row{
			channelRow("Email", "300"),
			channelRow("Organic Search", "120"),
		}},
		previous: report.Table{Rows: []report.Row{
			channelRow("Email", "200"),
		}},
		campaigns: report.Table{Rows: []report.Row{
			{Dimensions: []string{"Spring Sale"}, Metrics: []string{"42"}},
			{Dimensions: []string{"(not set)"}, Metrics: []string{"99"}},
		}},
	}
	narrator := &fakeNarrator{}
	store := &fakeStore{}
	sender := &fakeSender{}

	result, err := testRunner(t, source, narrator, store, sender).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "2025-02-01 to 2025-02-28", result.Period)
	assert.Equal(t, 420, result.TotalSessions)
	assert.Equal(t, 2, result.Delivered)
	assert.NotEmpty(t, result.RunID)

	// Three analytics round-trips: channels, campaigns, previous month
	require.Len(t, source.calls, 3)
	assert.Equal(t, "2025-02-01", source.calls[0].start)
	assert.Equal(t, []string{"sessionCampaignName"}, source.calls[1].dimensions)
	assert.Equal(t, "2025-01-01", source.calls[2].start)
	assert.Equal(t, "2025-01-31", source.calls[2].end)

	// Prompt embeds the data and the fixed instructions
	require.Len(t, narrator.prompts, 1)
	assert.Contains(t, narrator.prompts[0], `"channel": "Email"`)
	assert.Contains(t, narrator.prompts[0], "Ne mentionnez jamais le revenu")

	// Snapshot persisted with narrative attached
	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, "255756835", saved.PropertyID)
	assert.Equal(t, "2025-02-01", saved.PeriodStart)
	assert.Equal(t, 420, saved.TotalSessions)
	assert.Contains(t, saved.AIInsights, "Points forts")
	require.NotNil(t, saved.EmailFocus)

	// One personalized email per recipient
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Monthly Analytics Report - 2025-02-01 au 2025-02-28", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "Bonjour Marion")
	assert.Contains(t, sender.sent[1].body, "Bonjour Bao")
	// Narrative block and campaign ranking spliced into the document
	assert.Contains(t, sender.sent[0].body, "Points forts")
	assert.Contains(t, sender.sent[0].body, "Spring Sale")
	assert.NotContains(t, sender.sent[0].body, "(not set)")
}

func TestRunEmptyPeriodShortCircuits(t *testing.T) {
	source := &fakeSource{current: report.Table{}}
	store := &fakeStore{}
	sender := &fakeSender{}

	result, err := testRunner(t, source, &fakeNarrator{}, store, sender).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 0, result.TotalSessions)
	// Only the first analytics call happened, and no side effects at all
	assert.Len(t, source.calls, 1)
	assert.Empty(t, store.saved)
	assert.Empty(t, sender.sent)
}

func TestRunAnalyticsFailureIsFatal(t *testing.T) {
	source := &fakeSource{err: errors.New("bridge unreachable")}
	store := &fakeStore{}
	sender := &fakeSender{}

	result, err := testRunner(t, source, &fakeNarrator{}, store, sender).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "bridge unreachable")
	assert.Empty(t, store.saved)
	assert.Empty(t, sender.sent)
}

func TestRunDeliveryFailureIsIsolated(t *testing.T) {
	source := &fakeSource{
		current:  report.Table{Rows: []report.Row{channelRow("Email", "300")}},
		previous: report.Table{},
	}
	sender := &fakeSender{failFor: map[string]error{
		"mjacobson@avisia.fr": errors.New("mailbox full"),
	}}

	result, err := testRunner(t, source, &fakeNarrator{}, &fakeStore{}, sender).Run(context.Background())
	require.NoError(t, err)

	// The second recipient was still attempted and delivered
	assert.Equal(t, 1, result.Delivered)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "btran@avisia.fr", sender.sent[0].to)
}

func TestRunStorageFailureIsNonFatal(t *testing.T) {
	source := &fakeSource{
		current:  report.Table{Rows: []report.Row{channelRow("Email", "300")}},
		previous: report.Table{},
	}
	store := &fakeStore{err: errors.New("access denied")}
	sender := &fakeSender{}

	result, err := testRunner(t, source, &fakeNarrator{}, store, sender).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	// Delivery still happened for everyone
	assert.Equal(t, 2, result.Delivered)
}

func TestRunNarrativeFallbackStillDelivers(t *testing.T) {
	source := &fakeSource{
		current:  report.Table{Rows: []report.Row{channelRow("Email", "300")}},
		previous: report.Table{},
	}
	narrator := &fakeNarrator{response: "AI insights generation unavailable. Please review the data manually."}
	store := &fakeStore{}
	sender := &fakeSender{}

	result, err := testRunner(t, source, narrator, store, sender).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Delivered)
	require.Len(t, store.saved, 1)
	assert.Contains(t, store.saved[0].AIInsights, "unavailable")
	assert.Contains(t, sender.sent[0].body, "unavailable")
}
