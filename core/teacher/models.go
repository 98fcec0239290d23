package teacher

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// AttendanceStatus is the canonical stored daily status of a teacher.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLeave   AttendanceStatus = "leave"
)

func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, true
	case "absent":
		return StatusAbsent, true
	case "leave", "on leave", "on_leave":
		return StatusLeave, true
	}
	return "", false
}

type (
	Teacher struct {
		ID          int       `db:"teacher_id" json:"id"`
		Name        string    `db:"name" json:"name"`
		Subject     string    `db:"subject" json:"subject"`
		Department  string    `db:"department" json:"department"`
		JoiningDate time.Time `db:"joining_date" json:"joining_date"`
		Status      string    `db:"status" json:"status"`
	}

	NewTeacher struct {
		Name        string `json:"name" validate:"required"`
		Subject     string `json:"subject" validate:"required"`
		Department  string `json:"department" validate:"required"`
		JoiningDate string `json:"joining_date" validate:"required,dateonly"`
	}

	// AttendanceRecord is one stored (teacher, date, status) row.
	AttendanceRecord struct {
		TeacherID int              `db:"teacher_id"`
		Date      time.Time        `db:"date"`
		Status    AttendanceStatus `db:"status"`
		Remarks   null.String      `db:"remarks"`
		MarkedAt  null.Time        `db:"marked_at"`
	}

	// SaveRecord is one record in a batch teacher-attendance save.
	SaveRecord struct {
		TeacherID int    `json:"teacher_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
		Remarks   string `json:"remarks"`
	}

	SaveResult struct {
		Index     int    `json:"index"`
		TeacherID int    `json:"teacher_id"`
		Saved     bool   `json:"saved"`
		Reason    string `json:"reason,omitempty"`
	}

	// DayStatus is the marked status of one teacher on one date.
	DayStatus struct {
		Status   AttendanceStatus `json:"status"`
		Remarks  string           `json:"remarks"`
		MarkedAt null.Time        `json:"marked_at"`
	}

	DailyRecord struct {
		Date    string `json:"date"`
		Status  string `json:"status"`
		Remarks string `json:"remarks"`
	}

	// ReportRow is one teacher's aggregate over a report range.
	ReportRow struct {
		TeacherID            int           `json:"teacher_id"`
		Name                 string        `json:"name"`
		Subject              string        `json:"subject"`
		Department           string        `json:"department"`
		Present              int           `json:"present"`
		Absent               int           `json:"absent"`
		Leave                int           `json:"leave"`
		NotMarked            int           `json:"not_marked"`
		TotalDays            int           `json:"total_days"`
		AttendancePercentage float64       `json:"attendance_percentage"`
		DailyRecords         []DailyRecord `json:"daily_records"`
	}

	OverallStats struct {
		TotalTeachers        int     `json:"total_teachers"`
		TotalPresent         int     `json:"total_present"`
		TotalAbsent          int     `json:"total_absent"`
		TotalLeave           int     `json:"total_leave"`
		TotalNotMarked       int     `json:"total_not_marked"`
		AttendancePercentage float64 `json:"attendance_percentage"`
	}

	Report struct {
		StartDate    string       `json:"start_date"`
		EndDate      string       `json:"end_date"`
		TotalDays    int          `json:"total_days"`
		OverallStats OverallStats `json:"overall_stats"`
		Teachers     []ReportRow  `json:"teachers"`
	}
)

// YearsExperience is the teacher's whole years since joining.
func (t Teacher) YearsExperience(now time.Time) int {
	return int(now.Sub(t.JoiningDate).Hours() / 24 / 365)
}
