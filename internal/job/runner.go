// Package job sequences one monthly reporting run: fetch, aggregate,
// narrate, persist, deliver. Everything is synchronous and
// single-threaded; one invocation is independent of the next.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/narrative"
	"github.com/avisia/analytics-agent/internal/pkg/logger"
	"github.com/avisia/analytics-agent/internal/render"
	"github.com/avisia/analytics-agent/internal/report"
	"github.com/avisia/analytics-agent/internal/storage"
)

// GA4 query shapes for the monthly report.
var (
	channelDimensions  = []string{"sessionDefaultChannelGroup"}
	channelMetrics     = []string{"sessions", "conversions", "totalRevenue", "engagementRate", "averageSessionDuration"}
	campaignDimensions = []string{"sessionCampaignName"}
	campaignMetrics    = []string{"sessions"}
)

// AnalyticsSource runs one dimension/metric query for an inclusive
// date range.
type AnalyticsSource interface {
	RunReport(ctx context.Context, startDate, endDate string, dimensions, metrics []string) (report.Table, error)
}

// Narrator produces analysis prose for a prompt. Implementations
// absorb their own failures and return a fallback string.
type Narrator interface {
	Generate(ctx context.Context, prompt string) string
	ModelID() string
}

// SnapshotStore persists one report snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, rep storage.StoredReport) (string, error)
}

// MailSender delivers one rendered report.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// Result summarizes one completed run.
type Result struct {
	Status        string   `json:"status"`
	RunID         string   `json:"run_id"`
	Period        string   `json:"period"`
	TotalSessions int      `json:"total_sessions"`
	Recipients    []string `json:"recipients,omitempty"`
	Delivered     int      `json:"delivered"`
}

// Runner owns the collaborators of the monthly job.
type Runner struct {
	cfg      config.Config
	source   AnalyticsSource
	narrator Narrator
	store    SnapshotStore
	sender   MailSender
	renderer *render.Renderer

	// now is swappable for tests.
	now func() time.Time
}

// NewRunner wires a job runner from its collaborators.
func NewRunner(cfg config.Config, source AnalyticsSource, narrator Narrator, store SnapshotStore, sender MailSender, renderer *render.Renderer) *Runner {
	return &Runner{
		cfg:      cfg,
		source:   source,
		narrator: narrator,
		store:    store,
		sender:   sender,
		renderer: renderer,
		now:      time.Now,
	}
}

// Run executes one monthly reporting job. Analytics failures abort the
// run; an empty period short-circuits successfully with no side
// effects; narrative, storage and individual delivery failures are
// absorbed as the error taxonomy dictates.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	period := report.PreviousMonth(r.now())
	logger.Info("monthly analysis started", "run_id", runID, "period", period.String())

	channelTable, err := r.source.RunReport(ctx, period.Start, period.End, channelDimensions, channelMetrics)
	if err != nil {
		return nil, fmt.Errorf("fetching channel report: %w", err)
	}

	current := report.BuildChannelSnapshot(channelTable)
	if current.IsEmpty() {
		logger.Warn("no data for period, skipping report", "run_id", runID, "period", period.String())
		return &Result{Status: "success", RunID: runID, Period: period.String()}, nil
	}

	campaignTable, err := r.source.RunReport(ctx, period.Start, period.End, campaignDimensions, campaignMetrics)
	if err != nil {
		return nil, fmt.Errorf("fetching campaign report: %w", err)
	}
	campaigns := report.RankCampaigns(campaignTable)

	previousPeriod := period.Previous()
	previousTable, err := r.source.RunReport(ctx, previousPeriod.Start, previousPeriod.End, channelDimensions, channelMetrics)
	if err != nil {
		return nil, fmt.Errorf("fetching previous period report: %w", err)
	}
	previous := report.BuildChannelSnapshot(previousTable)

	evolution := report.EvolutionRates(current, previous)

	prompt := narrative.BuildPrompt(current, evolution, period)
	insights := r.narrator.Generate(ctx, prompt)

	if _, err := r.store.Save(ctx, storage.StoredReport{
		PropertyID:       r.cfg.GA4.PropertyID,
		PeriodStart:      period.Start,
		PeriodEnd:        period.End,
		GeneratedAt:      r.now(),
		RunID:            runID,
		TotalSessions:    current.TotalSessions,
		TotalConversions: current.TotalConversions,
		TotalRevenue:     current.TotalRevenue,
		Channels:         current.Channels,
		EmailFocus:       current.EmailFocus,
		SocialFocus:      current.SocialFocus,
		AIInsights:       insights,
	}); err != nil {
		// Non-fatal: the dashboard misses one month, the email still goes out.
		logger.Error("snapshot save failed", "run_id", runID, "error", err)
	}

	narrativeHTML := report.FormatNarrative(insights)
	subject := fmt.Sprintf("%s - %s au %s", r.cfg.Report.SubjectPrefix, period.Start, period.End)

	delivered := 0
	for _, recipient := range r.cfg.Report.Recipients {
		html, err := r.renderer.Render(render.ReportData{
			Current:        current,
			Previous:       previous,
			Campaigns:      campaigns,
			Period:         period,
			PreviousPeriod: previousPeriod,
			Recipient:      recipient,
			NarrativeHTML:  narrativeHTML,
			GeneratedAt:    r.now(),
		})
		if err != nil {
			logger.Error("report render failed", "run_id", runID, "recipient", recipient, "error", err)
			continue
		}

		if _, err := r.sender.Send(ctx, recipient, subject, html); err != nil {
			logger.Error("report delivery failed", "run_id", runID, "recipient", recipient, "error", err)
			continue
		}
		delivered++
	}

	logger.Info("monthly analysis completed",
		"run_id", runID,
		"period", period.String(),
		"total_sessions", current.TotalSessions,
		"delivered", delivered,
		"recipient_count", len(r.cfg.Report.Recipients))

	return &Result{
		Status:        "success",
		RunID:         runID,
		Period:        period.String(),
		TotalSessions: current.TotalSessions,
		Recipients:    r.cfg.Report.Recipients,
		Delivered:     delivered,
	}, nil
}
