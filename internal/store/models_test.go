package store

import (
	"encoding/json"
	"testing"
	"time"
)

// ============================================================
// SubEntry / Entry durations
// ============================================================

func TestSubEntryDuration(t *testing.T) {
	start := Timestamp(at(8, 0))
	end := Timestamp(at(9, 15))

	closed := &SubEntry{Start: start, End: &end}
	if d := closed.Duration(false, at(12, 0)); d == nil || *d != 75*time.Minute {
		t.Fatalf("closed duration = %v", d)
	}

	open := &SubEntry{Start: start}
	if d := open.Duration(false, at(12, 0)); d != nil {
		t.Fatalf("open duration without includeRunning = %v", d)
	}
	if d := open.Duration(true, at(10, 0)); d == nil || *d != 2*time.Hour {
		t.Fatalf("open duration with includeRunning = %v", d)
	}
}

func TestEntryEffectiveStartEnd(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))
	e := data.Days[DateOf(at(8, 0))][0]

	if e.Start() == nil || !e.Start().Time().Equal(at(8, 0)) {
		t.Fatalf("single-span start = %v", e.Start())
	}
	if e.End() != nil {
		t.Fatal("running span has no end")
	}

	// A second span removes the effective single interval.
	data.AddEntry("X", at(9, 0))
	if e.Start() != nil || e.End() != nil {
		t.Fatal("multi-span entry must not expose start/end")
	}
	if !e.HasSubEntries() {
		t.Fatal("HasSubEntries should be true with two spans")
	}
}

func TestEntryDurationSkipsAbsent(t *testing.T) {
	data := NewData()
	data.AddEntry("X", at(8, 0))
	data.StopAllRunning(at(9, 0))
	data.AddEntry("X", at(9, 30)) // second span left running

	e := data.Days[DateOf(at(8, 0))][0]
	if d := e.Duration(false, at(10, 0)); d == nil || *d != time.Hour {
		t.Fatalf("duration excluding running = %v", d)
	}
	if d := e.Duration(true, at(10, 0)); d == nil || *d != 90*time.Minute {
		t.Fatalf("duration including running = %v", d)
	}
}

// ============================================================
// Timestamps and dates
// ============================================================

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp(time.Date(2024, 3, 15, 8, 5, 9, 0, time.Local))

	raw, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2024-03-15T08:05:09"` {
		t.Fatalf("marshal = %s", raw)
	}

	var back Timestamp
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Fatalf("round trip: %v != %v", back.Time(), ts.Time())
	}
}

func TestTimestampAcceptsFractionalSeconds(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-15T08:05:09.1234567"`), &ts); err != nil {
		t.Fatal(err)
	}
	if ts.Time().Hour() != 8 || ts.Time().Minute() != 5 {
		t.Fatalf("parsed = %v", ts.Time())
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDateHelpers(t *testing.T) {
	d := DateOf(time.Date(2024, 3, 15, 23, 59, 0, 0, time.Local))
	if d != "2024-03-15" {
		t.Fatalf("DateOf = %s", d)
	}
	if d.Year() != "2024" {
		t.Fatalf("Year = %s", d.Year())
	}
	if d.MonthName() != "March" {
		t.Fatalf("MonthName = %s", d.MonthName())
	}

	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatal("expected invalid month to fail")
	}
	if _, err := ParseDate("2024-03-15"); err != nil {
		t.Fatal(err)
	}
}
