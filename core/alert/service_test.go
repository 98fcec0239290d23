package alert

import (
	"testing"
	"time"
)

type fakeRepo struct {
	present, marked int
	unpaid          int
	exams           []ExamDue
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) TodayAttendance(date time.Time) (int, int, error) {
	return r.present, r.marked, nil
}
func (r *fakeRepo) CountUnpaidFees() (int, error) { return r.unpaid, nil }
func (r *fakeRepo) QueryExamsDue(today time.Time, days, limit int) ([]ExamDue, error) {
	return r.exams, nil
}

func TestService_Alerts(t *testing.T) {
	today := date(2025, 1, 15)
	tests := []struct {
		name      string
		repo      *fakeRepo
		wantTypes []string
	}{
		{
			name: "rules fire in fixed order",
			repo: &fakeRepo{
				present: 7, marked: 10, // 70%
				unpaid: 2,
				exams:  []ExamDue{{Name: "Unit Test 1", Class: "10", Subject: "Maths", Date: today.AddDate(0, 0, 1), DaysLeft: 1}},
			},
			wantTypes: []string{TypeDanger, TypeWarning, TypeInfo},
		},
		{
			name:      "no marked attendance skips both attendance rules",
			repo:      &fakeRepo{present: 0, marked: 0, unpaid: 1},
			wantTypes: []string{TypeWarning},
		},
		{
			name:      "excellent day",
			repo:      &fakeRepo{present: 19, marked: 20},
			wantTypes: []string{TypeSuccess},
		},
		{
			name:      "quiet day",
			repo:      &fakeRepo{present: 8, marked: 10},
			wantTypes: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, 3)
			alerts, err := svc.Alerts(today)
			if err != nil {
				t.Fatalf("Alerts() error = %v", err)
			}
			if len(alerts) != len(tt.wantTypes) {
				t.Fatalf("Alerts() = %d alerts, want %d: %+v", len(alerts), len(tt.wantTypes), alerts)
			}
			for i, a := range alerts {
				if a.Type != tt.wantTypes[i] {
					t.Errorf("Alerts()[%d].Type = %q, want %q", i, a.Type, tt.wantTypes[i])
				}
			}
		})
	}
}
