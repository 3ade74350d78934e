package summary

import "github.com/bkemper/tally/internal/store"

// Grouping helpers for the HTML renderer's year → month → date
// hierarchy. All three preserve ascending calendar order, so the last
// element of each level is the most recent one.

// Years returns the distinct years of dates, ascending.
func Years(dates []store.Date) []string {
	var years []string
	seen := map[string]bool{}
	for _, date := range dates {
		year := date.Year()
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	return years
}

// MonthsOfYear returns the distinct month names of dates within year,
// in calendar order.
func MonthsOfYear(dates []store.Date, year string) []string {
	var months []string
	seen := map[string]bool{}
	for _, date := range dates {
		if date.Year() != year {
			continue
		}
		month := date.MonthName()
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	return months
}

// DatesOfMonth returns the dates within year and month, ascending.
func DatesOfMonth(dates []store.Date, year, month string) []store.Date {
	var out []store.Date
	for _, date := range dates {
		if date.Year() == year && date.MonthName() == month {
			out = append(out, date)
		}
	}
	return out
}
