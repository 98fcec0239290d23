package alert

import (
	"fmt"
	"strconv"
	"time"
)

// Alert types, in decreasing severity.
const (
	TypeDanger  = "danger"
	TypeWarning = "warning"
	TypeInfo    = "info"
	TypeSuccess = "success"
)

const (
	dangerThreshold  = 75.0
	successThreshold = 90.0
	maxExamAlerts    = 3
)

type (
	Alert struct {
		ID      int    `json:"id"`
		Type    string `json:"type"`
		Icon    string `json:"icon"`
		Title   string `json:"title"`
		Message string `json:"message"`
		Time    string `json:"time"`
	}

	// ExamDue is an upcoming exam within the alert window.
	ExamDue struct {
		Name     string
		Class    string
		Subject  string
		Date     time.Time
		DaysLeft int
	}

	// Input carries the aggregates the rules are evaluated against.
	// A nil field means the data was unavailable; its rules are skipped.
	Input struct {
		TodayPercentage *float64
		UnpaidFees      *int
		UpcomingExams   []ExamDue
	}
)

// Evaluate applies the alert rules in fixed order: low attendance,
// pending fees, upcoming exams (ascending date, capped at 3), then
// excellent attendance.
func Evaluate(in Input) []Alert {
	alerts := make([]Alert, 0, 4)

	if in.TodayPercentage != nil && *in.TodayPercentage < dangerThreshold {
		alerts = append(alerts, Alert{
			ID:      1,
			Type:    TypeDanger,
			Icon:    "🔴",
			Title:   "Low Attendance Alert",
			Message: fmt.Sprintf("Today's attendance is only %s%%. Immediate action required!", fmtPct(*in.TodayPercentage)),
			Time:    "Just now",
		})
	}

	if in.UnpaidFees != nil && *in.UnpaidFees > 0 {
		alerts = append(alerts, Alert{
			ID:      2,
			Type:    TypeWarning,
			Icon:    "🟠",
			Title:   "Pending Fees Alert",
			Message: fmt.Sprintf("%d students have pending or overdue fee payments. Send reminders.", *in.UnpaidFees),
			Time:    "10 mins ago",
		})
	}

	for i, exam := range in.UpcomingExams {
		if i == maxExamAlerts {
			break
		}
		alerts = append(alerts, Alert{
			ID:      3,
			Type:    TypeInfo,
			Icon:    "🔵",
			Title:   "Upcoming Exam: " + exam.Name,
			Message: fmt.Sprintf("%s - %s exam on %s", exam.Class, exam.Subject, exam.Date.Format("Jan 02, 2006")),
			Time:    relativeDays(exam.DaysLeft),
		})
	}

	if in.TodayPercentage != nil && *in.TodayPercentage >= successThreshold {
		alerts = append(alerts, Alert{
			ID:      4,
			Type:    TypeSuccess,
			Icon:    "🟢",
			Title:   "Excellent Attendance!",
			Message: fmt.Sprintf("Great job! Today's attendance is %s%%", fmtPct(*in.TodayPercentage)),
			Time:    "1 hour ago",
		})
	}

	return alerts
}

// DaysLeft is the whole-day difference between two dates, ignoring the
// time of day.
func DaysLeft(examDate, today time.Time) int {
	d := time.Date(examDate.Year(), examDate.Month(), examDate.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24)
}

func relativeDays(days int) string {
	switch {
	case days == 1:
		return "Tomorrow"
	case days > 1:
		return fmt.Sprintf("In %d days", days)
	default:
		return "Today"
	}
}

func fmtPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
