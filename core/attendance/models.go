package attendance

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// Status is the canonical stored attendance status of a student for one day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusOnLeave Status = "on_leave"
)

// ParseStatus maps a stored or display status label to its canonical
// value. "On Leave" is kept as a distinct status instead of being
// collapsed into absent so that no information is lost at write time.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, true
	case "absent":
		return StatusAbsent, true
	case "late":
		return StatusLate, true
	case "on leave", "on_leave", "leave":
		return StatusOnLeave, true
	}
	return "", false
}

// Display returns the title-cased label used by display layers.
func (s Status) Display() string {
	if s == StatusOnLeave {
		return "On Leave"
	}
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type (
	// Record is one stored (student, date, status) attendance row.
	Record struct {
		ID        int       `db:"id"`
		StudentID int       `db:"student_id"`
		Date      time.Time `db:"date"`
		Status    Status    `db:"status"`
	}

	// RosterEntry identifies a student under consideration for a report.
	RosterEntry struct {
		StudentID   int         `db:"student_id" json:"student_id"`
		Name        string      `db:"name" json:"name"`
		Class       string      `db:"class" json:"class"`
		Section     string      `db:"section" json:"section"`
		ParentEmail null.String `db:"parent_email" json:"-"`
	}

	// DayRecord is an attendance row joined with the student's identity.
	DayRecord struct {
		RosterEntry
		Status Status `db:"status"`
	}

	DailyStats struct {
		Total    int `json:"total"`
		Present  int `json:"present"`
		Absent   int `json:"absent"`
		Late     int `json:"late"`
		OnLeave  int `json:"on_leave"`
		Unmarked int `json:"unmarked"`
	}

	DailyDetail struct {
		StudentID int    `json:"student_id"`
		Name      string `json:"name"`
		Class     string `json:"class"`
		Section   string `json:"section"`
		Status    string `json:"status"` // display-cased
		Remarks   string `json:"remarks"`
	}

	DailyReport struct {
		Stats   DailyStats    `json:"stats"`
		Details []DailyDetail `json:"details"`
	}

	// StudentMonthly is one student's aggregate over a month.
	StudentMonthly struct {
		StudentID   int         `json:"student_id"`
		Name        string      `json:"name"`
		Class       string      `json:"class"`
		Section     string      `json:"section"`
		TotalDays   int         `json:"total_days"`
		Present     int         `json:"present"`
		Absent      int         `json:"absent"`
		Percentage  float64     `json:"percentage"`
		ParentEmail null.String `json:"-"`
	}

	MonthlyReport struct {
		OverallPercentage float64          `json:"overall_percentage"`
		Students          []StudentMonthly `json:"students"`
	}

	// SaveRecord is one record in a batch attendance save request.
	SaveRecord struct {
		StudentID int    `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}

	// SaveResult reports the outcome of one record in a batch save.
	// Invalid records are skipped and reported instead of aborting the
	// batch or disappearing silently.
	SaveResult struct {
		Index     int    `json:"index"`
		StudentID int    `json:"student_id"`
		Saved     bool   `json:"saved"`
		Reason    string `json:"reason,omitempty"`
	}
)
