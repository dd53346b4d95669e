package report

import "time"

const dateLayout = "2006-01-02"

// Period is an inclusive [Start, End] date range. The monthly job
// always uses calendar-month-aligned bounds, but nothing below depends
// on that.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PreviousMonth returns the full calendar month before the one
// containing now: first day through last day, inclusive.
func PreviousMonth(now time.Time) Period {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, now.Location())

	return Period{
		Start: firstOfPrevious.Format(dateLayout),
		End:   lastOfPrevious.Format(dateLayout),
	}
}

// Previous returns the full calendar month before this period's start.
func (p Period) Previous() Period {
	start, err := time.Parse(dateLayout, p.Start)
	if err != nil {
		return Period{}
	}
	return PreviousMonth(start)
}

// String renders the period as "start to end".
func (p Period) String() string {
	return p.Start + " to " + p.End
}
