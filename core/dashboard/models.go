package dashboard

import "time"

type (
	// Stats are the admin dashboard headline metrics. Status fields are
	// display color hints derived from thresholds.
	Stats struct {
		TotalStudents        int     `json:"total_students"`
		TotalTeachers        int     `json:"total_teachers"`
		AttendancePercentage float64 `json:"attendance_percentage"`
		AttendanceStatus     string  `json:"attendance_status"`
		PendingFeesCount     int     `json:"pending_fees_count"`
		FeesStatus           string  `json:"fees_status"`
		UpcomingExams        int     `json:"upcoming_exams"`
	}

	// SeriesPoint is one day's pooled attendance percentage.
	SeriesPoint struct {
		Date       time.Time
		Percentage float64
	}

	// TeacherStats are the teacher dashboard metrics. Nil counters mean
	// the data source does not exist yet; they are never fabricated.
	TeacherStats struct {
		TotalClasses         int     `json:"total_classes"`
		TotalStudents        int     `json:"total_students"`
		AttendancePercentage float64 `json:"attendance_percentage"`
		PendingAssignments   *int    `json:"pending_assignments"`
		NewMessages          *int    `json:"new_messages"`
	}

	// ClassOverview is one class's roster size and today's attendance
	// rate. AvgGrade and Schedule have no data source yet and are nil.
	ClassOverview struct {
		ClassName      string  `json:"class_name"`
		Subject        string  `json:"subject"`
		TotalStudents  int     `json:"total_students"`
		AttendanceRate float64 `json:"attendance_rate"`
		AvgGrade       *string `json:"avg_grade"`
		Schedule       *string `json:"schedule"`
	}

	// ClassCount is a class label with its active student count.
	ClassCount struct {
		ClassName     string `db:"class" json:"class_name"`
		TotalStudents int    `db:"total_students" json:"total_students"`
	}
)
