package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/bkemper/tally/internal/store"
	"github.com/bkemper/tally/internal/summary"
)

func writeCSV(w io.Writer, data *store.Data, opts Options, now time.Time) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Name", "Start", "End", "Duration"}); err != nil {
		return err
	}

	rows := summary.Summarize(data, opts.ShowRunning, now)
	for _, date := range data.SortedDates() {
		for _, row := range rows[date] {
			record := []string{
				date.Time().Format(csvDateLayout),
				row.Name,
				clock(row.Start),
				clock(row.End),
				approx(row.Running, opts.ShowRunning) + FormatDuration(row.Duration),
			}
			if err := cw.Write(record); err != nil {
				return err
			}

			// Child rows leave date and name blank.
			for _, child := range row.Children {
				record := []string{
					"",
					"",
					clock(child.Start),
					clock(child.End),
					approx(child.Running, opts.ShowRunning) + FormatDuration(child.Duration),
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
