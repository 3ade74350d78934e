package query

import (
	"time"

	"github.com/bkemper/tally/internal/store"
)

// DailyTotal is the aggregate for one calendar day, for the reports
// view.
type DailyTotal struct {
	Date    store.Date
	Total   *time.Duration
	Running bool
}

// DailyTotals re-reads the data file and returns the totals for the
// last days calendar days ending today, oldest first. Days without
// entries carry an absent total.
func (s *Service) DailyTotals(days int, now time.Time) ([]DailyTotal, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	totals := make([]DailyTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := store.DateOf(now.AddDate(0, 0, -i))
		totals = append(totals, DailyTotal{
			Date:    date,
			Total:   data.TotalDurationForDate(date, s.cfg.ShowRunningDurations, now),
			Running: data.IsTaskRunningForDate(date),
		})
	}
	return totals, nil
}
