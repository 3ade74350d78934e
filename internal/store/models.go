package store

import (
	"fmt"
	"time"
)

// Version tags the on-disk schema. Readers must tolerate unknown or
// missing tags and treat them as the oldest supported schema.
type Version string

const (
	VersionV1 Version = "v1"
	VersionV2 Version = "v2"

	CurrentVersion = VersionV2
)

// Date is a calendar day without a time component, in ISO form
// "YYYY-MM-DD". It is used directly as the JSON object key for a
// day's entries, so its representation stays a plain string.
type Date string

const dateLayout = "2006-01-02"

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate validates an ISO date string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the day at midnight local time. Malformed dates
// (possible after manual edits of the data file) yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.ParseInLocation(dateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) Year() string      { return d.Time().Format("2006") }
func (d Date) MonthName() string { return d.Time().Format("January") }

// Timestamp is a wall-clock time serialized in a sortable local-time
// format without a zone offset, matching the data file contract.
type Timestamp time.Time

const timestampLayout = "2006-01-02T15:04:05"

// timestampLayouts lists accepted input formats. Files edited by hand
// or written by other tools may carry fractional seconds or a zone
// offset.
var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
}

func (ts Timestamp) Time() time.Time { return time.Time(ts) }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(ts).Format(timestampLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp %s is not a JSON string", s)
	}
	s = s[1 : len(s)-1]
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			*ts = Timestamp(t)
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("parse timestamp %q: %w", s, lastErr)
}

// SubEntry is one continuous span of activity under an entry. A nil
// End means the span is still running.
type SubEntry struct {
	Start Timestamp  `json:"start"`
	End   *Timestamp `json:"end,omitempty"`
}

func newSubEntry(now time.Time) *SubEntry {
	return &SubEntry{Start: Timestamp(now)}
}

func (s *SubEntry) Running() bool { return s.End == nil }

// Duration returns end−start, or now−start for a running span when
// includeRunning is set, or nil for a running span otherwise.
func (s *SubEntry) Duration(includeRunning bool, now time.Time) *time.Duration {
	if s.End != nil {
		d := s.End.Time().Sub(s.Start.Time())
		return &d
	}
	if includeRunning {
		d := now.Sub(s.Start.Time())
		return &d
	}
	return nil
}

// Entry is a task's full record for one calendar day. SubEntries is
// never empty: an entry is created with exactly one span, and
// restarting the same name later the same day appends further spans
// instead of creating a second entry.
type Entry struct {
	Name       string      `json:"name"`
	SubEntries []*SubEntry `json:"subEntries"`
}

func newEntry(name string, now time.Time) *Entry {
	return &Entry{Name: name, SubEntries: []*SubEntry{newSubEntry(now)}}
}

func (e *Entry) Running() bool {
	for _, sub := range e.SubEntries {
		if sub.Running() {
			return true
		}
	}
	return false
}

func (e *Entry) HasSubEntries() bool { return len(e.SubEntries) > 1 }

// Start returns the entry's effective single start, or nil when the
// entry holds more than one span.
func (e *Entry) Start() *Timestamp {
	if e.HasSubEntries() || len(e.SubEntries) == 0 {
		return nil
	}
	return &e.SubEntries[0].Start
}

// End returns the entry's effective single end, or nil when the entry
// holds more than one span or is still running.
func (e *Entry) End() *Timestamp {
	if e.HasSubEntries() || len(e.SubEntries) == 0 {
		return nil
	}
	return e.SubEntries[0].End
}

// Duration sums the span durations. Absent span durations are
// skipped; the result is nil only when every span's duration is
// absent.
func (e *Entry) Duration(includeRunning bool, now time.Time) *time.Duration {
	var total *time.Duration
	for _, sub := range e.SubEntries {
		total = addDuration(total, sub.Duration(includeRunning, now))
	}
	return total
}

func addDuration(a, b *time.Duration) *time.Duration {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	sum := *a + *b
	return &sum
}
