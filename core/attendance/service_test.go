package attendance

import (
	"reflect"
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
)

type fakeRepo struct {
	roster  []RosterEntry
	day     []DayRecord
	records []Record
	saved   []Record
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) QueryRoster(class, section string) ([]RosterEntry, error) { return r.roster, nil }
func (r *fakeRepo) QueryDay(date time.Time, class, section string) ([]DayRecord, error) {
	return r.day, nil
}
func (r *fakeRepo) QueryRange(rg DateRange, class, section string) ([]Record, error) {
	return r.records, nil
}
func (r *fakeRepo) UpsertBatch(records []Record) error {
	r.saved = append(r.saved, records...)
	return nil
}

func entry(id int, name string) RosterEntry {
	return RosterEntry{StudentID: id, Name: name, Class: "10", Section: "A"}
}

func records(id int, from time.Time, statuses ...Status) []Record {
	recs := make([]Record, 0, len(statuses))
	for i, s := range statuses {
		recs = append(recs, Record{StudentID: id, Date: from.AddDate(0, 0, i), Status: s})
	}
	return recs
}

func repeat(s Status, n int) []Status {
	out := make([]Status, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestService_SaveBatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if _, err := svc.SaveBatch(nil); err == nil {
		t.Errorf("SaveBatch(nil) expected error, got nil")
	} else if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("SaveBatch(nil) error = %T, want *core.ValidationError", err)
	}

	results, err := svc.SaveBatch([]SaveRecord{
		{StudentID: 1, Date: "2025-01-15", Status: "present"},
		{StudentID: 2, Date: "2025-01-15", Status: "On Leave"},
		{StudentID: 0, Date: "2025-01-15", Status: "present"},
		{StudentID: 3, Date: "", Status: "present"},
		{StudentID: 4, Date: "15/01/2025", Status: "present"},
		{StudentID: 5, Date: "2025-01-15", Status: "vacation"},
	})
	if err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	want := []SaveResult{
		{Index: 0, StudentID: 1, Saved: true},
		{Index: 1, StudentID: 2, Saved: true},
		{Index: 2, StudentID: 0, Reason: "missing student_id"},
		{Index: 3, StudentID: 3, Reason: "missing date"},
		{Index: 4, StudentID: 4, Reason: "invalid date"},
		{Index: 5, StudentID: 5, Reason: "invalid status"},
	}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("SaveBatch() results = %+v, want %+v", results, want)
	}

	wantSaved := []Record{
		{StudentID: 1, Date: date(2025, 1, 15), Status: StatusPresent},
		{StudentID: 2, Date: date(2025, 1, 15), Status: StatusOnLeave},
	}
	if !reflect.DeepEqual(repo.saved, wantSaved) {
		t.Errorf("saved records = %+v, want %+v", repo.saved, wantSaved)
	}
}

func TestService_Daily(t *testing.T) {
	repo := &fakeRepo{
		roster: []RosterEntry{entry(1, "Aarav"), entry(2, "Diya"), entry(3, "Ishaan"), entry(4, "Meera")},
		day: []DayRecord{
			{RosterEntry: entry(1, "Aarav"), Status: StatusPresent},
			{RosterEntry: entry(2, "Diya"), Status: StatusAbsent},
			{RosterEntry: entry(3, "Ishaan"), Status: StatusLate},
		},
	}
	svc := NewService(repo)

	report, err := svc.Daily(date(2025, 1, 15), "", "")
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	wantStats := DailyStats{Total: 3, Present: 1, Absent: 1, Late: 1, Unmarked: 1}
	if report.Stats != wantStats {
		t.Errorf("Daily() stats = %+v, want %+v", report.Stats, wantStats)
	}
	if len(report.Details) != 3 {
		t.Fatalf("Daily() details = %d rows, want 3", len(report.Details))
	}
	if report.Details[2].Status != "Late" {
		t.Errorf("Daily() details[2].Status = %q, want %q", report.Details[2].Status, "Late")
	}
}

func TestService_Monthly(t *testing.T) {
	start := date(2025, 1, 1)
	repo := &fakeRepo{
		roster: []RosterEntry{entry(1, "Aarav"), entry(2, "Diya")},
		records: append(
			// 18 present of 20 marked
			append(records(1, start, repeat(StatusPresent, 18)...), records(1, start.AddDate(0, 0, 18), StatusAbsent, StatusAbsent)...),
			// 15 present of 20 marked
			append(records(2, start, repeat(StatusPresent, 15)...), records(2, start.AddDate(0, 0, 15), repeat(StatusAbsent, 5)...)...)...,
		),
	}
	svc := NewService(repo)

	report, err := svc.Monthly(date(2025, 1, 1), "", "")
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}

	if len(report.Students) != 2 {
		t.Fatalf("Monthly() students = %d, want 2", len(report.Students))
	}
	s1, s2 := report.Students[0], report.Students[1]
	if s1.Present != 18 || s1.Absent != 2 || s1.Percentage != 90.0 || s1.TotalDays != 31 {
		t.Errorf("student 1 = %+v, want present=18 absent=2 pct=90 total_days=31", s1)
	}
	if s2.Present != 15 || s2.Absent != 5 || s2.Percentage != 75.0 {
		t.Errorf("student 2 = %+v, want present=15 absent=5 pct=75", s2)
	}
	// pooled: 33/40, not the mean of 90 and 75
	if report.OverallPercentage != 82.5 {
		t.Errorf("Monthly() overall = %v, want 82.5", report.OverallPercentage)
	}
}

func TestService_Monthly_noRecords(t *testing.T) {
	repo := &fakeRepo{roster: []RosterEntry{entry(1, "Aarav")}}
	svc := NewService(repo)

	report, err := svc.Monthly(date(2025, 1, 1), "", "")
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if report.OverallPercentage != 0 {
		t.Errorf("Monthly() overall = %v, want 0", report.OverallPercentage)
	}
	if s := report.Students[0]; s.Percentage != 0 || s.Present != 0 {
		t.Errorf("unmarked student = %+v, want pct=0 present=0", s)
	}
}

func TestService_Low(t *testing.T) {
	start := date(2025, 1, 1)
	repo := &fakeRepo{
		roster: []RosterEntry{entry(1, "Aarav"), entry(2, "Diya"), entry(3, "Ishaan"), entry(4, "Meera")},
		records: append(append(
			// 7 of 10 marked: 70%, flagged
			append(records(1, start, repeat(StatusPresent, 7)...), records(1, start.AddDate(0, 0, 7), StatusAbsent, StatusLate, StatusOnLeave)...),
			// 3 of 4 marked: 75%, exactly at threshold, not flagged
			append(records(2, start, repeat(StatusPresent, 3)...), records(2, start.AddDate(0, 0, 3), StatusAbsent)...)...),
			// 4 of 4 marked: 100%, not flagged
			records(3, start, repeat(StatusPresent, 4)...)...,
		// student 4 has no marked days and is never flagged
		),
	}
	svc := NewService(repo)

	low, err := svc.Low(date(2025, 1, 1), 75, "", "")
	if err != nil {
		t.Fatalf("Low() error = %v", err)
	}
	if len(low) != 1 {
		t.Fatalf("Low() = %d students, want 1", len(low))
	}
	got := low[0]
	if got.StudentID != 1 || got.Percentage != 70.0 {
		t.Errorf("Low() student = %+v, want id=1 pct=70", got)
	}
	// absent here means "marked but not present", late and leave days included
	if got.Present != 7 || got.Absent != 3 {
		t.Errorf("Low() counts = present=%d absent=%d, want 7/3", got.Present, got.Absent)
	}
}
