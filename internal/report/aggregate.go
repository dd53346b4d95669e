package report

import (
	"sort"
	"strings"
)

// Metric column order of the acquisition query. Rows shorter than this
// are zero-filled, never rejected.
const (
	idxSessions = iota
	idxConversions
	idxRevenue
	idxEngagementRate
	idxAvgSessionDuration
)

var socialKeywords = []string{"social", "facebook", "instagram"}

// campaign labels GA4 emits for untagged traffic; excluded from the
// ranking
var campaignSentinels = map[string]struct{}{
	"(not set)": {},
	"(none)":    {},
	"unknown":   {},
	"":          {},
}

// BuildChannelSnapshot aggregates acquisition rows keyed by channel
// into a Snapshot. The channel label is dimension 0 ("Unknown" when
// absent); metrics 0-4 map to sessions, conversions, revenue,
// engagement rate and average session duration.
//
// Rows sharing a channel label are NOT merged: each contributes its
// own entry and its own share of the totals. GA4 is expected to return
// one row per distinct channel, so this only matters for malformed
// responses.
func BuildChannelSnapshot(t Table) Snapshot {
	var snap Snapshot
	var emailFocus, socialFocus *ChannelMetric

	for _, row := range t.Rows {
		cm := ChannelMetric{
			Channel:            row.dimAt(0, "Unknown"),
			Sessions:           row.metricInt(idxSessions),
			Conversions:        row.metricInt(idxConversions),
			Revenue:            row.metricFloat(idxRevenue),
			EngagementRate:     row.metricFloat(idxEngagementRate),
			AvgSessionDuration: row.metricFloat(idxAvgSessionDuration),
		}

		snap.Channels = append(snap.Channels, cm)
		snap.TotalSessions += cm.Sessions
		snap.TotalConversions += cm.Conversions
		snap.TotalRevenue += cm.Revenue

		// Spotlight assignment: email wins over social when a label
		// matches both; last matching row keeps the slot.
		lower := strings.ToLower(cm.Channel)
		if strings.Contains(lower, "email") {
			c := cm
			emailFocus = &c
		} else if containsAny(lower, socialKeywords) {
			c := cm
			socialFocus = &c
		}
	}

	// Descending by sessions, stable so equal-traffic channels keep
	// their source order.
	sort.SliceStable(snap.Channels, func(i, j int) bool {
		return snap.Channels[i].Sessions > snap.Channels[j].Sessions
	})

	snap.EmailFocus = emailFocus
	snap.SocialFocus = socialFocus
	return snap
}

// BuildTimeSeries aggregates rows keyed by (date, channel) into a
// dense rectangular table: every configured channel gets a series
// aligned to the full ascending date axis, zero-filled where the
// source had no row for that pair. Rows with fewer than two dimension
// values are skipped.
func BuildTimeSeries(t Table) TimeSeries {
	byDateChannel := make(map[string]map[string]int)
	channels := make(map[string]struct{})

	for _, row := range t.Rows {
		if len(row.Dimensions) < 2 {
			continue
		}
		date := row.Dimensions[0]
		channel := row.dimAt(1, "Unknown")
		sessions := row.metricInt(0)

		if byDateChannel[date] == nil {
			byDateChannel[date] = make(map[string]int)
		}
		byDateChannel[date][channel] = sessions
		channels[channel] = struct{}{}
	}

	dates := make([]string, 0, len(byDateChannel))
	for date := range byDateChannel {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make(map[string][]int, len(channels))
	for channel := range channels {
		s := make([]int, len(dates))
		for i, date := range dates {
			s[i] = byDateChannel[date][channel]
		}
		series[channel] = s
	}

	return TimeSeries{Dates: dates, ByChannel: series}
}

// RankCampaigns filters and ranks campaign rows: campaign name is
// dimension 0, sessions is metric 0. Placeholder names ("(not set)",
// "(none)", "unknown", empty) are excluded case-insensitively after
// trimming. Duplicate campaign names are preserved as separate
// entries. The result is sorted descending by sessions, stable on
// ties.
func RankCampaigns(t Table) []Campaign {
	campaigns := make([]Campaign, 0, len(t.Rows))

	for _, row := range t.Rows {
		name := row.dimAt(0, "Unknown")
		if _, skip := campaignSentinels[strings.ToLower(strings.TrimSpace(name))]; skip {
			continue
		}
		campaigns = append(campaigns, Campaign{
			Campaign: name,
			Sessions: row.metricInt(0),
		})
	}

	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].Sessions > campaigns[j].Sessions
	})

	return campaigns
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
