// Package render produces the HTML report email from an aggregated
// snapshot, using Liquid templates so the visual contracts (evolution
// indicators, number formatting) stay unit-testable filters instead of
// string splices.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/report"
	"github.com/osteele/liquid"
)

// ReportData is everything one personalized report needs. Rendering is
// pure with respect to it.
type ReportData struct {
	Current        report.Snapshot
	Previous       report.Snapshot
	Campaigns      []report.Campaign
	Period         report.Period
	PreviousPeriod report.Period
	Recipient      string
	NarrativeHTML  string
	GeneratedAt    time.Time
}

// maxCampaignRows caps the rendered campaign ranking.
const maxCampaignRows = 10

// Renderer renders personalized HTML reports. Templates are parsed
// once at construction.
type Renderer struct {
	tpl       *liquid.Template
	emptyTpl  *liquid.Template
	names     map[string]string
	siteName  string
	eventName string
	modelName string
	logo      string
}

// NewRenderer builds a renderer from the report configuration.
func NewRenderer(cfg config.ReportConfig, modelName string) (*Renderer, error) {
	engine := liquid.NewEngine()

	engine.RegisterFilter("evolution", EvolutionBadge)
	engine.RegisterFilter("comma", func(v interface{}) string {
		switch n := v.(type) {
		case int:
			return FormatComma(n)
		case float64:
			return FormatComma(int(n))
		default:
			return fmt.Sprintf("%v", v)
		}
	})
	engine.RegisterFilter("rate", func(f float64) string {
		return fmt.Sprintf("%.2f%%", f*100)
	})

	tpl, err := engine.ParseString(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	emptyTpl, err := engine.ParseString(noDataTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing no-data template: %w", err)
	}

	logo := cfg.LogoBase64
	if logo == "" {
		logo = defaultLogoBase64
	}

	return &Renderer{
		tpl:       tpl,
		emptyTpl:  emptyTpl,
		names:     cfg.RecipientNames,
		siteName:  cfg.SiteName,
		eventName: cfg.ConversionEvent,
		modelName: modelName,
		logo:      logo,
	}, nil
}

// EvolutionBadge renders the period-over-period indicator for a signed
// percentage: up arrow and green above zero, down arrow and pink below
// zero, neutral arrow and gray at exactly zero. The sign is taken from
// the raw value; rounding applies only to the displayed percentage, so
// a +0.3% evolution still shows the up arrow (as "+0%").
func EvolutionBadge(evo float64) string {
	rounded := math.Round(evo)
	switch {
	case evo > 0:
		return fmt.Sprintf(`<span style="color: #00d4aa; font-size: 11px; margin-left: 5px;">↗ +%.0f%%</span>`, rounded)
	case evo < 0:
		return fmt.Sprintf(`<span style="color: #ff6b9d; font-size: 11px; margin-left: 5px;">↘ %.0f%%</span>`, rounded)
	default:
		return `<span style="color: #999; font-size: 11px; margin-left: 5px;">→ 0%</span>`
	}
}

// FormatComma renders an integer with thousands separators.
func FormatComma(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Greeting maps a recipient address to a personalized salutation.
// Known addresses use the configured display name; anyone else gets
// the capitalized local part of their address.
func (r *Renderer) Greeting(recipient string) string {
	if recipient == "" {
		return "Bonjour"
	}
	local := strings.Split(recipient, "@")[0]
	name, ok := r.names[local]
	if !ok {
		name = capitalize(local)
	}
	return "Bonjour " + name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Render produces one personalized HTML document. A snapshot with no
// channels degrades to a minimal "no data" page.
func (r *Renderer) Render(data ReportData) (string, error) {
	if data.Current.IsEmpty() {
		out, err := r.emptyTpl.RenderString(liquid.Bindings{
			"period_start": data.Period.Start,
			"period_end":   data.Period.End,
		})
		if err != nil {
			return "", fmt.Errorf("rendering no-data report: %w", err)
		}
		return out, nil
	}

	bindings := liquid.Bindings{
		"logo_base64":       r.logo,
		"site_name":         r.siteName,
		"greeting":          r.Greeting(data.Recipient),
		"period_start":      data.Period.Start,
		"period_end":        data.Period.End,
		"total_sessions":    data.Current.TotalSessions,
		"total_conversions": data.Current.TotalConversions,
		"sessions_evo":      report.Delta(float64(data.Current.TotalSessions), float64(data.Previous.TotalSessions)),
		"conversions_evo":   report.Delta(float64(data.Current.TotalConversions), float64(data.Previous.TotalConversions)),
		"channels":          r.channelRows(data),
		"campaigns":         campaignRows(data.Campaigns),
		"email_focus":       spotlightCard(data.Current.EmailFocus, data),
		"social_focus":      spotlightCard(data.Current.SocialFocus, data),
		"narrative_html":    data.NarrativeHTML,
		"model_name":        r.modelName,
		"conversion_event":  r.eventName,
		"generated_at":      data.GeneratedAt.Format("02/01/2006 à 15:04:05"),
	}

	if top := data.Current.TopChannel(); top != nil {
		bindings["top_channel"] = top.Channel
		bindings["top_channel_sessions"] = top.Sessions
	}

	out, err := r.tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// channelRows decorates every channel with per-metric evolution,
// computed inline against the previous snapshot rather than trusting a
// pre-supplied evolution map.
func (r *Renderer) channelRows(data ReportData) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(data.Current.Channels))
	for _, ch := range data.Current.Channels {
		rows = append(rows, map[string]interface{}{
			"channel":         ch.Channel,
			"sessions":        ch.Sessions,
			"conversions":     ch.Conversions,
			"engagement_rate": ch.EngagementRate,
			"sessions_evo":    report.MetricEvolution(ch.Channel, report.MetricSessions, data.Current.Channels, data.Previous.Channels),
			"conversions_evo": report.MetricEvolution(ch.Channel, report.MetricConversions, data.Current.Channels, data.Previous.Channels),
			"engagement_evo":  report.MetricEvolution(ch.Channel, report.MetricEngagementRate, data.Current.Channels, data.Previous.Channels),
		})
	}
	return rows
}

func campaignRows(campaigns []report.Campaign) []map[string]interface{} {
	if len(campaigns) > maxCampaignRows {
		campaigns = campaigns[:maxCampaignRows]
	}
	rows := make([]map[string]interface{}, 0, len(campaigns))
	for i, c := range campaigns {
		rows = append(rows, map[string]interface{}{
			"rank":     i + 1,
			"campaign": c.Campaign,
			"sessions": c.Sessions,
		})
	}
	return rows
}

// spotlightCard returns untyped nil for an absent spotlight so the
// template's truthiness check sees nil, not an empty map.
func spotlightCard(focus *report.ChannelMetric, data ReportData) interface{} {
	if focus == nil {
		return nil
	}
	return map[string]interface{}{
		"channel":         focus.Channel,
		"sessions":        focus.Sessions,
		"conversions":     focus.Conversions,
		"engagement_rate": focus.EngagementRate,
		"sessions_evo":    report.MetricEvolution(focus.Channel, report.MetricSessions, data.Current.Channels, data.Previous.Channels),
		"conversions_evo": report.MetricEvolution(focus.Channel, report.MetricConversions, data.Current.Channels, data.Previous.Channels),
		"engagement_evo":  report.MetricEvolution(focus.Channel, report.MetricEngagementRate, data.Current.Channels, data.Previous.Channels),
	}
}
