package store

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 15, hour, min, 0, 0, time.Local)
}

// ============================================================
// AddEntry
// ============================================================

func TestAddEntryCreatesEntry(t *testing.T) {
	data := NewData()
	data.AddEntry("Writing", at(8, 0))

	date := DateOf(at(8, 0))
	entries := data.Days[date]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Name != "Writing" {
		t.Fatalf("name = %q", e.Name)
	}
	if len(e.SubEntries) != 1 {
		t.Fatalf("expected 1 sub-entry, got %d", len(e.SubEntries))
	}
	if !e.Running() {
		t.Fatal("new entry should be running")
	}
}

func TestAddEntrySameNameAppendsSubEntry(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))
	data.AddEntry("X", at(9, 0))

	entries := data.Days[DateOf(at(8, 0))]
	if len(entries) != 1 {
		t.Fatalf("duplicate name must not create a second entry, got %d", len(entries))
	}
	e := entries[0]
	if len(e.SubEntries) != 2 {
		t.Fatalf("expected 2 sub-entries, got %d", len(e.SubEntries))
	}
	// Both spans stay open until stopped.
	if !e.SubEntries[0].Running() || !e.SubEntries[1].Running() {
		t.Fatal("both sub-entries should be running")
	}
	if !data.IsTaskRunning() {
		t.Fatal("IsTaskRunning should be true")
	}
}

func TestAddEntryDifferentNamesSameDay(t *testing.T) {
	data := NewData()
	data.AddEntry("A", at(8, 0))
	data.AddEntry("B", at(9, 0))

	entries := data.Days[DateOf(at(8, 0))]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "A" || entries[1].Name != "B" {
		t.Fatalf("order not preserved: %q, %q", entries[0].Name, entries[1].Name)
	}
}

func TestAddEntryReopensStoppedEntry(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))
	data.StopAllRunning(at(9, 0))
	data.AddEntry("X", at(10, 0))

	e := data.Days[DateOf(at(8, 0))][0]
	if len(e.SubEntries) != 2 {
		t.Fatalf("expected 2 sub-entries after reopen, got %d", len(e.SubEntries))
	}
	if e.SubEntries[0].Running() {
		t.Fatal("first sub-entry should stay stopped")
	}
	if !e.SubEntries[1].Running() {
		t.Fatal("reopened sub-entry should be running")
	}
}

// ============================================================
// StopAllRunning
// ============================================================

func TestStopAllRunning(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))

	stopped := data.StopAllRunning(at(9, 30))
	if len(stopped) != 1 {
		t.Fatalf("expected 1 stopped task, got %d", len(stopped))
	}
	if stopped[0].Name != "X" {
		t.Fatalf("stopped name = %q", stopped[0].Name)
	}
	if stopped[0].Duration == nil || *stopped[0].Duration != 90*time.Minute {
		t.Fatalf("stopped duration = %v", stopped[0].Duration)
	}

	sub := data.Days[DateOf(at(8, 0))][0].SubEntries[0]
	if sub.End == nil {
		t.Fatal("end should be set")
	}
	if sub.End.Time().Before(sub.Start.Time()) {
		t.Fatal("end should not precede start")
	}
	if data.IsTaskRunning() {
		t.Fatal("nothing should be running")
	}
}

func TestStopAllRunningNothingRunning(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))
	data.StopAllRunning(at(9, 0))

	stopped := data.StopAllRunning(at(10, 0))
	if len(stopped) != 0 {
		t.Fatalf("expected no-op, got %d stopped tasks", len(stopped))
	}
}

func TestStopAllRunningOrder(t *testing.T) {
	data := NewData()
	// Two days left running, later day added first.
	data.AddEntry("Later", time.Date(2024, 3, 16, 8, 0, 0, 0, time.Local))
	data.AddEntry("Earlier", time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local))

	stopped := data.StopAllRunning(time.Date(2024, 3, 16, 9, 0, 0, 0, time.Local))
	if len(stopped) != 2 {
		t.Fatalf("expected 2 stopped tasks, got %d", len(stopped))
	}
	if stopped[0].Name != "Earlier" || stopped[1].Name != "Later" {
		t.Fatalf("iteration order not by date: %q, %q", stopped[0].Name, stopped[1].Name)
	}
}

// ============================================================
// Queries
// ============================================================

func TestRunningTaskNamesAcrossDates(t *testing.T) {
	data := NewData()
	data.AddEntry("Old", time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local))
	data.AddEntry("New", time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local))

	names := data.RunningTaskNames()
	if len(names) != 2 || names[0] != "Old" || names[1] != "New" {
		t.Fatalf("names = %v", names)
	}
	if got := data.QuotedRunningTaskNames(); got != "'Old', 'New'" {
		t.Fatalf("quoted = %q", got)
	}
}

func TestIsTaskRunningForDateMissingDate(t *testing.T) {
	data := NewData()
	if data.IsTaskRunningForDate(Date("2024-01-01")) {
		t.Fatal("missing date should report not running")
	}
}

func TestTotalDurationForDate(t *testing.T) {
	data := NewData()
	data.AddEntry("A", at(8, 0))
	data.StopAllRunning(at(9, 0))
	data.AddEntry("B", at(9, 0))
	data.StopAllRunning(at(9, 30))

	total := data.TotalDurationForDate(DateOf(at(8, 0)), false, at(10, 0))
	if total == nil || *total != 90*time.Minute {
		t.Fatalf("total = %v", total)
	}
}

func TestTotalDurationForDateSkipsRunningWhenExcluded(t *testing.T) {
	data := NewData()
	data.AddEntry("A", at(8, 0))
	data.StopAllRunning(at(9, 0))
	data.AddEntry("B", at(9, 0)) // left running

	date := DateOf(at(8, 0))

	// Running entry's absent duration is skipped, not zeroed.
	total := data.TotalDurationForDate(date, false, at(10, 0))
	if total == nil || *total != time.Hour {
		t.Fatalf("total without running = %v", total)
	}

	// Including running counts now − start.
	total = data.TotalDurationForDate(date, true, at(10, 0))
	if total == nil || *total != 2*time.Hour {
		t.Fatalf("total with running = %v", total)
	}
}

func TestTotalDurationForDateAllRunning(t *testing.T) {
	data := NewData()
	data.AddEntry("A", at(8, 0))

	total := data.TotalDurationForDate(DateOf(at(8, 0)), false, at(10, 0))
	if total != nil {
		t.Fatalf("all-absent total should be nil, got %v", total)
	}
}

func TestTotalDurationForDateMissingDate(t *testing.T) {
	data := NewData()
	if total := data.TotalDurationForDate(Date("2024-01-01"), true, at(10, 0)); total != nil {
		t.Fatalf("missing date total should be nil, got %v", total)
	}
}

func TestSortedDates(t *testing.T) {
	data := NewData()
	data.AddEntry("C", time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local))
	data.AddEntry("A", time.Date(2023, 12, 31, 8, 0, 0, 0, time.Local))
	data.AddEntry("B", time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))

	dates := data.SortedDates()
	want := []Date{"2023-12-31", "2024-01-01", "2024-05-01"}
	if len(dates) != len(want) {
		t.Fatalf("len = %d", len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}
