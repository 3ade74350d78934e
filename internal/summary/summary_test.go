package summary

import (
	"testing"
	"time"

	"github.com/bkemper/tally/internal/store"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 15, hour, min, 0, 0, time.Local)
}

func ts(hour, min int) store.Timestamp {
	return store.Timestamp(at(hour, min))
}

func closedEntry(name string, startH, startM, endH, endM int) *store.Entry {
	end := ts(endH, endM)
	return &store.Entry{
		Name:       name,
		SubEntries: []*store.SubEntry{{Start: ts(startH, startM), End: &end}},
	}
}

// ============================================================
// Single entries
// ============================================================

func TestSummarizeSingleInterval(t *testing.T) {
	data := store.NewData()
	data.Days["2024-03-15"] = []*store.Entry{closedEntry("Writing", 8, 0, 9, 15)}

	rows := Summarize(data, false, at(12, 0))["2024-03-15"]
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Name != "Writing" {
		t.Fatalf("name = %q", row.Name)
	}
	if row.Start == nil || row.End == nil {
		t.Fatal("single-interval row should carry start and end")
	}
	if len(row.Children) != 0 {
		t.Fatalf("unexpected children: %d", len(row.Children))
	}
	if row.Duration == nil || *row.Duration != 75*time.Minute {
		t.Fatalf("duration = %v", row.Duration)
	}
}

func TestSummarizeMultiIntervalEntry(t *testing.T) {
	data := store.NewData()
	data.AddEntry("X", at(8, 0))
	data.StopAllRunning(at(9, 0))
	data.AddEntry("X", at(10, 0))
	data.StopAllRunning(at(10, 30))

	rows := Summarize(data, false, at(12, 0))[store.DateOf(at(8, 0))]
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Start != nil || row.End != nil {
		t.Fatal("multi-interval parent must not carry start/end")
	}
	if len(row.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(row.Children))
	}
	if row.Duration == nil || *row.Duration != 90*time.Minute {
		t.Fatalf("parent duration = %v", row.Duration)
	}
	// Children map one-to-one onto the sub-intervals.
	if row.Children[0].Start == nil || !row.Children[0].Start.Time().Equal(at(8, 0)) {
		t.Fatalf("first child start = %v", row.Children[0].Start)
	}
	if row.Children[1].Duration == nil || *row.Children[1].Duration != 30*time.Minute {
		t.Fatalf("second child duration = %v", row.Children[1].Duration)
	}
}

// ============================================================
// Defensive duplicate-name merge
// ============================================================

func TestSummarizeMergesDuplicateNames(t *testing.T) {
	// Two raw rows sharing a name in one day's list: possible after
	// manual edits, merged instead of rendered twice.
	data := store.NewData()
	data.Days["2024-03-15"] = []*store.Entry{
		closedEntry("X", 8, 0, 9, 0),
		closedEntry("Other", 9, 0, 9, 30),
		closedEntry("X", 10, 0, 10, 30),
	}

	rows := Summarize(data, false, at(12, 0))["2024-03-15"]
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	x := rows[0]
	if x.Name != "X" {
		t.Fatalf("first row = %q", x.Name)
	}
	if x.Start != nil || x.End != nil {
		t.Fatal("merged parent must not carry top-level start/end")
	}
	if len(x.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(x.Children))
	}
	if x.Duration == nil || *x.Duration != 90*time.Minute {
		t.Fatalf("merged duration = %v", x.Duration)
	}

	if rows[1].Name != "Other" || len(rows[1].Children) != 0 {
		t.Fatalf("unrelated row disturbed: %+v", rows[1])
	}
}

func TestSummarizeMergeRunningChild(t *testing.T) {
	data := store.NewData()
	open := &store.Entry{
		Name:       "X",
		SubEntries: []*store.SubEntry{{Start: ts(10, 0)}},
	}
	data.Days["2024-03-15"] = []*store.Entry{closedEntry("X", 8, 0, 9, 0), open}

	// Excluding running durations: the open child contributes
	// nothing, the parent keeps the closed child's hour.
	rows := Summarize(data, false, at(11, 0))["2024-03-15"]
	row := rows[0]
	if !row.Running {
		t.Fatal("parent should report running")
	}
	if row.Duration == nil || *row.Duration != time.Hour {
		t.Fatalf("duration = %v", row.Duration)
	}

	// Including running durations adds now − start.
	rows = Summarize(data, true, at(11, 0))["2024-03-15"]
	if d := rows[0].Duration; d == nil || *d != 2*time.Hour {
		t.Fatalf("duration with running = %v", d)
	}
}

// ============================================================
// Grouping helpers
// ============================================================

func TestGroupingHelpers(t *testing.T) {
	dates := []store.Date{
		"2023-11-30", "2023-12-01", "2024-01-15", "2024-01-20", "2024-03-02",
	}

	years := Years(dates)
	if len(years) != 2 || years[0] != "2023" || years[1] != "2024" {
		t.Fatalf("years = %v", years)
	}

	months := MonthsOfYear(dates, "2024")
	if len(months) != 2 || months[0] != "January" || months[1] != "March" {
		t.Fatalf("months = %v", months)
	}

	jan := DatesOfMonth(dates, "2024", "January")
	if len(jan) != 2 || jan[0] != "2024-01-15" || jan[1] != "2024-01-20" {
		t.Fatalf("january dates = %v", jan)
	}

	if got := DatesOfMonth(dates, "2022", "June"); len(got) != 0 {
		t.Fatalf("expected no dates, got %v", got)
	}
}
