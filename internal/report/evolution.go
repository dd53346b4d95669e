package report

// Metric names accepted by MetricEvolution.
const (
	MetricSessions       = "sessions"
	MetricConversions    = "conversions"
	MetricEngagementRate = "engagement_rate"
)

// Delta computes the signed percentage change from previous to
// current. A zero previous value with a positive current value is
// reported as exactly +100% (a "new" metric), never an unbounded
// ratio; zero to zero is 0.
func Delta(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100.0
	}
	return 0.0
}

// EvolutionRates computes the month-over-month session evolution per
// channel. Only channels present in the current snapshot appear in the
// result; channels that existed only in the previous period are
// omitted, not reported as zero.
func EvolutionRates(current, previous Snapshot) map[string]float64 {
	previousSessions := make(map[string]int, len(previous.Channels))
	for _, ch := range previous.Channels {
		previousSessions[ch.Channel] = ch.Sessions
	}

	rates := make(map[string]float64, len(current.Channels))
	for _, ch := range current.Channels {
		rates[ch.Channel] = Delta(float64(ch.Sessions), float64(previousSessions[ch.Channel]))
	}
	return rates
}

// MetricEvolution computes the percentage change of one named metric
// for one channel between two channel lists, matching by channel
// label. It returns 0 when the previous list is empty or either
// counterpart is missing, and follows the Delta zero rules otherwise.
// Used by the renderer to decorate each table cell.
func MetricEvolution(channel, metric string, current, previous []ChannelMetric) float64 {
	if len(previous) == 0 {
		return 0.0
	}

	cur := findChannel(current, channel)
	prev := findChannel(previous, channel)
	if cur == nil || prev == nil {
		return 0.0
	}

	return Delta(metricValue(*cur, metric), metricValue(*prev, metric))
}

func findChannel(channels []ChannelMetric, label string) *ChannelMetric {
	for i := range channels {
		if channels[i].Channel == label {
			return &channels[i]
		}
	}
	return nil
}

func metricValue(cm ChannelMetric, metric string) float64 {
	switch metric {
	case MetricSessions:
		return float64(cm.Sessions)
	case MetricConversions:
		return float64(cm.Conversions)
	case MetricEngagementRate:
		return cm.EngagementRate
	default:
		return 0.0
	}
}
