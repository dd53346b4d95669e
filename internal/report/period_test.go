package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"mid month", time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), "2025-02-01", "2025-02-28"},
		{"first of month", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "2025-02-01", "2025-02-28"},
		{"january wraps year", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{"leap february", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"31-day month", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), "2025-07-01", "2025-07-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PreviousMonth(tt.now)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
		})
	}
}

func TestPeriodPrevious(t *testing.T) {
	p := Period{Start: "2025-03-01", End: "2025-03-31"}
	prev := p.Previous()
	assert.Equal(t, "2025-02-01", prev.Start)
	assert.Equal(t, "2025-02-28", prev.End)

	// Malformed start yields a zero period rather than panicking
	assert.Equal(t, Period{}, Period{Start: "bogus"}.Previous())
}

func TestPeriodString(t *testing.T) {
	p := Period{Start: "2025-02-01", End: "2025-02-28"}
	assert.Equal(t, "2025-02-01 to 2025-02-28", p.String())
}
