package alert

import "time"

// Alert log types and outcomes.
const (
	LogTypeAbsence       = "absence"
	LogTypeLowAttendance = "low_attendance"

	LogStatusSent   = "sent"
	LogStatusFailed = "failed"
)

type (
	// LogEntry is one append-only audit row of a parent notification
	// attempt. It is written for every attempt, including failed ones.
	LogEntry struct {
		ID          int       `db:"log_id"`
		StudentID   int       `db:"student_id"`
		Type        string    `db:"alert_type"`
		Date        time.Time `db:"date"`
		ParentEmail string    `db:"parent_email"`
		Message     string    `db:"message"`
		Status      string    `db:"status"`
		Reference   string    `db:"reference"` // per-attempt uuid
		SentAt      time.Time `db:"sent_at"`
	}

	// LogDetail is a log row joined with the student's identity, as
	// served to the alert-log listing.
	LogDetail struct {
		Date        string `db:"date" json:"date"`
		StudentName string `db:"name" json:"student_name"`
		RollNo      string `db:"roll_no" json:"roll_no"`
		Class       string `db:"class" json:"class"`
		Section     string `db:"section" json:"section"`
		ParentEmail string `db:"parent_email" json:"parent_email"`
		Message     string `db:"message" json:"message"`
		Status      string `db:"status" json:"status"`
	}

	// DispatchSummary reports how a batch of notifications fared.
	DispatchSummary struct {
		Sent    int `json:"sent"`
		Failed  int `json:"failed"`
		Skipped int `json:"skipped"` // no parent email on file
	}
)
