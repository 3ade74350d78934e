package export

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/bkemper/tally/internal/store"
	"github.com/bkemper/tally/internal/summary"
)

// Placeholder tokens shared with the external template assets.
const (
	phTheme        = "%%THEME%%"
	phHeaderStyle  = "%%CUSTOM-HEADER-STYLE%%"
	phCustomHeader = "%%CUSTOM-HEADER%%"
	phFooterStyle  = "%%CUSTOM-FOOTER-STYLE%%"
	phCustomFooter = "%%CUSTOM-FOOTER%%"
	phYearButtons  = "%%YEAR-BUTTON-TEMPLATE%%"
	phYears        = "%%YEAR-TEMPLATE%%"
	phYearID       = "%%YEAR-ID%%"
	phYearName     = "%%YEAR-NAME%%"
	phActive       = "%%ACTIVE%%"
	phShowActive   = "%%SHOW-ACTIVE%%"
	phMonthButtons = "%%MONTH-BUTTON-TEMPLATE%%"
	phMonths       = "%%MONTH-TEMPLATE%%"
	phYearMonthID  = "%%YEAR-MONTH-ID%%"
	phMonthName    = "%%MONTH-NAME%%"
	phDates        = "%%DATE-TEMPLATE%%"
	phDateID       = "%%DATE-ID%%"
	phDateName     = "%%DATE-NAME%%"
	phShow         = "%%SHOW%%"
	phCollapsed    = "%%COLLAPSED%%"
	phTableEntries = "%%TABLE-ENTRIES%%"
)

const runningMarkerSpan = `<span class="material-symbols-outlined ms-2">acute</span>`

// htmlExport carries per-export state through the recursive template
// rendering of the year → month → date hierarchy.
type htmlExport struct {
	data      *store.Data
	rows      map[store.Date][]*summary.Entry
	dates     []store.Date
	opts      Options
	now       time.Time
	templates templateSet
}

func writeHTML(w io.Writer, data *store.Data, opts Options, now time.Time) error {
	bw := bufio.NewWriter(w)
	x := htmlExport{
		data:      data,
		rows:      summary.Summarize(data, opts.ShowRunning, now),
		dates:     data.SortedDates(),
		opts:      opts,
		now:       now,
		templates: templateSet{dir: opts.TemplateDir},
	}
	if err := x.renderSummary(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// snippetStyle hides a custom header or footer container when the
// configured snippet is empty.
func snippetStyle(snippet string) string {
	if snippet == "" {
		return "display: none;"
	}
	return ""
}

func (x htmlExport) renderSummary(w io.Writer) error {
	years := summary.Years(x.dates)

	fields := map[string]string{
		phTheme:       x.opts.Theme,
		phHeaderStyle: snippetStyle(x.opts.CustomHeader),
		phFooterStyle: snippetStyle(x.opts.CustomFooter),
	}
	blocks := map[string]block{
		phCustomHeader: func(w io.Writer) error {
			_, err := fmt.Fprintln(w, x.opts.CustomHeader)
			return err
		},
		phCustomFooter: func(w io.Writer) error {
			_, err := fmt.Fprintln(w, x.opts.CustomFooter)
			return err
		},
		phYearButtons: func(w io.Writer) error {
			for i, year := range years {
				if err := x.renderYearButton(w, year, i == len(years)-1); err != nil {
					return err
				}
			}
			return nil
		},
		phYears: func(w io.Writer) error {
			for i, year := range years {
				if err := x.renderYear(w, year, i == len(years)-1); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return x.templates.render(w, "summary_template.html", fields, blocks)
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}

func showActiveClass(active bool) string {
	if active {
		return "show active"
	}
	return ""
}

func (x htmlExport) renderYearButton(w io.Writer, year string, active bool) error {
	fields := map[string]string{
		phYearID:   year,
		phYearName: year,
		phActive:   activeClass(active),
	}
	return x.templates.render(w, "year_button_template.html", fields, nil)
}

func (x htmlExport) renderYear(w io.Writer, year string, active bool) error {
	months := summary.MonthsOfYear(x.dates, year)

	fields := map[string]string{
		phYearID:     year,
		phShowActive: showActiveClass(active),
	}
	blocks := map[string]block{
		phMonthButtons: func(w io.Writer) error {
			for i, month := range months {
				if err := x.renderMonthButton(w, year, month, i == len(months)-1); err != nil {
					return err
				}
			}
			return nil
		},
		phMonths: func(w io.Writer) error {
			for i, month := range months {
				if err := x.renderMonth(w, year, month, i == len(months)-1); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return x.templates.render(w, "year_template.html", fields, blocks)
}

func (x htmlExport) renderMonthButton(w io.Writer, year, month string, active bool) error {
	fields := map[string]string{
		phYearMonthID: year + "-" + month,
		phMonthName:   month,
		phActive:      activeClass(active),
	}
	return x.templates.render(w, "month_button_template.html", fields, nil)
}

func (x htmlExport) renderMonth(w io.Writer, year, month string, active bool) error {
	dates := summary.DatesOfMonth(x.dates, year, month)

	fields := map[string]string{
		phYearMonthID: year + "-" + month,
		phShowActive:  showActiveClass(active),
	}
	blocks := map[string]block{
		phDates: func(w io.Writer) error {
			for i, date := range dates {
				if err := x.renderDate(w, date, i == len(dates)-1); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return x.templates.render(w, "month_template.html", fields, blocks)
}

func (x htmlExport) renderDate(w io.Writer, date store.Date, active bool) error {
	show, collapsed := "", "collapsed"
	if active {
		show, collapsed = "show", ""
	}
	fields := map[string]string{
		phDateID:    string(date),
		phShow:      show,
		phCollapsed: collapsed,
	}
	blocks := map[string]block{
		phDateName: func(w io.Writer) error {
			_, err := fmt.Fprintln(w, x.dateHeading(date))
			return err
		},
		phTableEntries: func(w io.Writer) error {
			for _, row := range x.rows[date] {
				if err := x.renderTableRow(w, row, true); err != nil {
					return err
				}
				for _, child := range row.Children {
					if err := x.renderTableRow(w, child, false); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	return x.templates.render(w, "date_template.html", fields, blocks)
}

func (x htmlExport) dateHeading(date store.Date) string {
	heading := date.Time().Format(headingLayout)

	total := x.data.TotalDurationForDate(date, x.opts.ShowRunning, x.now)
	if total == nil {
		return heading
	}
	marker := ""
	if x.data.IsTaskRunningForDate(date) && x.opts.ShowRunning {
		marker = runningMarkerSpan
	}
	return heading + " (Total: " + FormatDuration(total) + marker + ")"
}

func (x htmlExport) renderTableRow(w io.Writer, row *summary.Entry, named bool) error {
	name := ""
	if named {
		name = html.EscapeString(row.Name)
		if link, ok := ResolveLink(x.opts.LinkRules, row.Name); ok {
			// The substituted task name reaches the href too, so the
			// attribute needs escaping as much as the text node does.
			name = `<a class="link-offset-2 link-underline link-underline-opacity-0" href="` +
				html.EscapeString(link) + `" target="_blank">` + html.EscapeString(row.Name) + `</a>`
		}
	}

	marker := ""
	if row.Running && x.opts.ShowRunning {
		marker = runningMarkerSpan
	}

	_, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s%s</td></tr>\n",
		name,
		clock(row.Start),
		clock(row.End),
		FormatDuration(row.Duration),
		marker,
	)
	return err
}
