package export

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/bkemper/tally/internal/store"
	"github.com/bkemper/tally/internal/summary"
)

func writeMarkdown(w io.Writer, data *store.Data, opts Options, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Time Tracker Summary")
	fmt.Fprintln(bw)

	rows := summary.Summarize(data, opts.ShowRunning, now)
	for _, date := range data.SortedDates() {
		fmt.Fprintln(bw, markdownHeading(data, date, opts, now))
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "|Name|Start|End|Duration|")
		fmt.Fprintln(bw, "|-----|-----|-----|-----|")

		for _, row := range rows[date] {
			name := row.Name
			if link, ok := ResolveLink(opts.LinkRules, row.Name); ok {
				name = "[" + row.Name + "](" + link + ")"
			}
			writeMarkdownRow(bw, name, row, opts)
			for _, child := range row.Children {
				writeMarkdownRow(bw, "", child, opts)
			}
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func markdownHeading(data *store.Data, date store.Date, opts Options, now time.Time) string {
	heading := "## " + date.Time().Format(headingLayout)

	total := data.TotalDurationForDate(date, opts.ShowRunning, now)
	if total == nil {
		return heading
	}
	marker := approx(data.IsTaskRunningForDate(date), opts.ShowRunning)
	return heading + " (Total: " + marker + FormatDuration(total) + ")"
}

func writeMarkdownRow(w io.Writer, name string, row *summary.Entry, opts Options) {
	fmt.Fprintf(w, "|%s|%s|%s|%s|\n",
		name,
		clock(row.Start),
		clock(row.End),
		approx(row.Running, opts.ShowRunning)+FormatDuration(row.Duration),
	)
}
