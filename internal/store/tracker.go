package store

import (
	"sort"
	"strings"
	"time"
)

// Data is the whole persisted document: every tracked entry grouped
// by calendar day, plus the schema version tag.
type Data struct {
	Version Version           `json:"version"`
	Days    map[Date][]*Entry `json:"entriesByDate"`
}

// NewData returns an empty document at the current schema version.
func NewData() *Data {
	return &Data{Version: CurrentVersion, Days: map[Date][]*Entry{}}
}

// SortedDates returns every recorded day in ascending calendar order.
// All iteration over the document goes through this to keep output
// deterministic.
func (d *Data) SortedDates() []Date {
	dates := make([]Date, 0, len(d.Days))
	for date := range d.Days {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// AddEntry records that a task named name started at now. If the day
// already holds an entry with that name a new sub-entry is appended,
// modelling a resumed task; otherwise a fresh entry is added.
func (d *Data) AddEntry(name string, now time.Time) {
	key := DateOf(now)

	entries, ok := d.Days[key]
	if !ok {
		d.Days[key] = []*Entry{newEntry(name, now)}
		return
	}

	for _, entry := range entries {
		if entry.Name == name {
			entry.SubEntries = append(entry.SubEntries, newSubEntry(now))
			return
		}
	}
	d.Days[key] = append(entries, newEntry(name, now))
}

// StoppedTask reports one sub-entry closed by StopAllRunning.
type StoppedTask struct {
	Name     string
	Duration *time.Duration
}

// StopAllRunning sets end = now on every running sub-entry across all
// days, returning the stopped tasks in date, entry, sub-entry order.
// An empty result means nothing was running and the document is
// unchanged.
func (d *Data) StopAllRunning(now time.Time) []StoppedTask {
	var stopped []StoppedTask
	for _, date := range d.SortedDates() {
		for _, entry := range d.Days[date] {
			for _, sub := range entry.SubEntries {
				if !sub.Running() {
					continue
				}
				end := Timestamp(now)
				sub.End = &end
				stopped = append(stopped, StoppedTask{
					Name:     entry.Name,
					Duration: sub.Duration(false, now),
				})
			}
		}
	}
	return stopped
}

// IsTaskRunning reports whether any sub-entry on any day is open.
func (d *Data) IsTaskRunning() bool {
	for _, entries := range d.Days {
		for _, entry := range entries {
			if entry.Running() {
				return true
			}
		}
	}
	return false
}

// RunningTaskNames lists the names of entries with an open sub-entry,
// in date then entry order. The same name may appear once per day it
// was left running on.
func (d *Data) RunningTaskNames() []string {
	var names []string
	for _, date := range d.SortedDates() {
		for _, entry := range d.Days[date] {
			if entry.Running() {
				names = append(names, entry.Name)
			}
		}
	}
	return names
}

// QuotedRunningTaskNames renders the running task names as
// "'a', 'b'" for notification and description text.
func (d *Data) QuotedRunningTaskNames() string {
	names := d.RunningTaskNames()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}

// IsTaskRunningForDate reports whether the given day has an open
// sub-entry. A day with no entries reports false.
func (d *Data) IsTaskRunningForDate(date Date) bool {
	for _, entry := range d.Days[date] {
		if entry.Running() {
			return true
		}
	}
	return false
}

// TotalDurationForDate sums entry durations for one day under the
// skip-absent rule: absent entry durations are skipped, and the total
// is nil only when every duration is absent. A day with no entries
// yields nil.
func (d *Data) TotalDurationForDate(date Date, includeRunning bool, now time.Time) *time.Duration {
	var total *time.Duration
	for _, entry := range d.Days[date] {
		total = addDuration(total, entry.Duration(includeRunning, now))
	}
	return total
}
