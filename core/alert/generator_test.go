package alert

import (
	"testing"
	"time"
)

func fPtr(v float64) *float64 { return &v }
func iPtr(v int) *int         { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	today := date(2025, 1, 15)
	tests := []struct {
		name string
		in   Input
		want []Alert
	}{
		{name: "no data, no alerts", in: Input{}, want: []Alert{}},
		{
			name: "low attendance, fees and an exam tomorrow",
			in: Input{
				TodayPercentage: fPtr(70),
				UnpaidFees:      iPtr(2),
				UpcomingExams: []ExamDue{
					{Name: "Unit Test 1", Class: "10", Subject: "Mathematics", Date: today.AddDate(0, 0, 1), DaysLeft: 1},
				},
			},
			want: []Alert{
				{ID: 1, Type: TypeDanger, Icon: "🔴", Title: "Low Attendance Alert", Message: "Today's attendance is only 70%. Immediate action required!", Time: "Just now"},
				{ID: 2, Type: TypeWarning, Icon: "🟠", Title: "Pending Fees Alert", Message: "2 students have pending or overdue fee payments. Send reminders.", Time: "10 mins ago"},
				{ID: 3, Type: TypeInfo, Icon: "🔵", Title: "Upcoming Exam: Unit Test 1", Message: "10 - Mathematics exam on Jan 16, 2025", Time: "Tomorrow"},
			},
		},
		{
			name: "excellent attendance",
			in:   Input{TodayPercentage: fPtr(95.5), UnpaidFees: iPtr(0)},
			want: []Alert{
				{ID: 4, Type: TypeSuccess, Icon: "🟢", Title: "Excellent Attendance!", Message: "Great job! Today's attendance is 95.5%", Time: "1 hour ago"},
			},
		},
		{name: "90 is excellent", in: Input{TodayPercentage: fPtr(90)}, want: []Alert{
			{ID: 4, Type: TypeSuccess, Icon: "🟢", Title: "Excellent Attendance!", Message: "Great job! Today's attendance is 90%", Time: "1 hour ago"},
		}},
		{name: "middling attendance, no alert", in: Input{TodayPercentage: fPtr(80)}, want: []Alert{}},
		{name: "75 is not low", in: Input{TodayPercentage: fPtr(75)}, want: []Alert{}},
		{
			name: "74.9 is low",
			in:   Input{TodayPercentage: fPtr(74.9)},
			want: []Alert{
				{ID: 1, Type: TypeDanger, Icon: "🔴", Title: "Low Attendance Alert", Message: "Today's attendance is only 74.9%. Immediate action required!", Time: "Just now"},
			},
		},
		{
			name: "exam alerts capped at three",
			in: Input{
				UpcomingExams: []ExamDue{
					{Name: "E1", Class: "10", Subject: "Maths", Date: today, DaysLeft: 0},
					{Name: "E2", Class: "10", Subject: "Science", Date: today.AddDate(0, 0, 1), DaysLeft: 1},
					{Name: "E3", Class: "9", Subject: "English", Date: today.AddDate(0, 0, 2), DaysLeft: 2},
					{Name: "E4", Class: "9", Subject: "History", Date: today.AddDate(0, 0, 3), DaysLeft: 3},
				},
			},
			want: []Alert{
				{ID: 3, Type: TypeInfo, Icon: "🔵", Title: "Upcoming Exam: E1", Message: "10 - Maths exam on Jan 15, 2025", Time: "Today"},
				{ID: 3, Type: TypeInfo, Icon: "🔵", Title: "Upcoming Exam: E2", Message: "10 - Science exam on Jan 16, 2025", Time: "Tomorrow"},
				{ID: 3, Type: TypeInfo, Icon: "🔵", Title: "Upcoming Exam: E3", Message: "9 - English exam on Jan 17, 2025", Time: "In 2 days"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Evaluate() = %d alerts, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Evaluate()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDaysLeft(t *testing.T) {
	today := date(2025, 1, 15)
	tests := []struct {
		name string
		exam time.Time
		want int
	}{
		{name: "today", exam: date(2025, 1, 15), want: 0},
		{name: "tomorrow", exam: date(2025, 1, 16), want: 1},
		{name: "next week", exam: date(2025, 1, 22), want: 7},
		{name: "yesterday", exam: date(2025, 1, 14), want: -1},
		{name: "time of day ignored", exam: time.Date(2025, 1, 16, 23, 30, 0, 0, time.UTC), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLeft(tt.exam, today); got != tt.want {
				t.Errorf("DaysLeft() = %v, want %v", got, tt.want)
			}
		})
	}
}
