// Package summary is the read-only aggregation step between the
// tracker document and the report renderers. It merges repeated task
// names within a day into one parent row with child rows per
// interval, and recomputes aggregate durations. Its output is rebuilt
// on every export and never written back.
package summary

import (
	"time"

	"github.com/bkemper/tally/internal/store"
)

// Entry is one summary row. Start and End are populated only when the
// row stands for exactly one underlying interval and has no children.
type Entry struct {
	Name     string
	Start    *store.Timestamp
	End      *store.Timestamp
	Duration *time.Duration
	Running  bool
	Children []*Entry
}

// Summarize builds the per-day summary rows from the raw document.
// now anchors running-interval durations so one export renders a
// consistent snapshot; includeRunning mirrors the document rule of
// treating open intervals as absent when unset.
func Summarize(data *store.Data, includeRunning bool, now time.Time) map[store.Date][]*Entry {
	out := make(map[store.Date][]*Entry, len(data.Days))
	for _, date := range data.SortedDates() {
		var rows []*Entry
		for _, raw := range data.Days[date] {
			if existing := findByName(rows, raw.Name); existing != nil {
				// Duplicate names within a day violate the document
				// invariant but can appear after manual edits; merge
				// them instead of rendering duplicate rows.
				merge(existing, raw, includeRunning, now)
				continue
			}
			rows = append(rows, fromEntry(raw, includeRunning, now))
		}
		out[date] = rows
	}
	return out
}

func findByName(rows []*Entry, name string) *Entry {
	for _, row := range rows {
		if row.Name == name {
			return row
		}
	}
	return nil
}

// fromEntry builds a summary row for a raw entry: a plain row for a
// single interval, or a parent with one child per interval otherwise.
func fromEntry(raw *store.Entry, includeRunning bool, now time.Time) *Entry {
	if !raw.HasSubEntries() {
		return &Entry{
			Name:     raw.Name,
			Start:    raw.Start(),
			End:      raw.End(),
			Duration: raw.Duration(includeRunning, now),
			Running:  raw.Running(),
		}
	}

	parent := &Entry{
		Name:     raw.Name,
		Duration: raw.Duration(includeRunning, now),
		Running:  raw.Running(),
	}
	for _, sub := range raw.SubEntries {
		parent.Children = append(parent.Children, fromSubEntry(sub, includeRunning, now))
	}
	return parent
}

func fromSubEntry(sub *store.SubEntry, includeRunning bool, now time.Time) *Entry {
	start := sub.Start
	return &Entry{
		Start:    &start,
		End:      sub.End,
		Duration: sub.Duration(includeRunning, now),
		Running:  sub.Running(),
	}
}

// merge demotes an existing row into a child (clearing its own
// start/end) and appends the duplicate occurrence's intervals as
// further children, then recomputes the parent duration as the sum of
// the children's.
func merge(parent *Entry, raw *store.Entry, includeRunning bool, now time.Time) {
	if len(parent.Children) == 0 {
		parent.Children = []*Entry{{
			Start:    parent.Start,
			End:      parent.End,
			Duration: parent.Duration,
			Running:  parent.Running,
		}}
	}
	parent.Start = nil
	parent.End = nil

	for _, sub := range raw.SubEntries {
		parent.Children = append(parent.Children, fromSubEntry(sub, includeRunning, now))
	}

	parent.Duration = nil
	parent.Running = false
	for _, child := range parent.Children {
		if child.Duration != nil {
			if parent.Duration == nil {
				d := *child.Duration
				parent.Duration = &d
			} else {
				*parent.Duration += *child.Duration
			}
		}
		if child.Running {
			parent.Running = true
		}
	}
}
