package student

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	Student struct {
		ID            int         `db:"student_id" json:"id"`
		RollNo        string      `db:"roll_no" json:"roll_no"`
		Name          string      `db:"name" json:"name"`
		Class         string      `db:"class" json:"class"`
		Section       string      `db:"section" json:"section"`
		Email         string      `db:"email" json:"email"`
		Phone         string      `db:"phone" json:"phone,omitempty"`
		Address       string      `db:"address" json:"address,omitempty"`
		ParentEmail   null.String `db:"parent_email" json:"parent_email,omitempty"`
		AdmissionDate time.Time   `db:"admission_date" json:"-"`
		Status        string      `db:"status" json:"-"`

		// AttendanceStatus is today's stored status; unmarked students
		// are reported as absent.
		AttendanceStatus string `db:"attendance_status" json:"attendance_status"`
	}

	NewStudent struct {
		Name             string `json:"name" validate:"required"`
		RollNo           string `json:"roll_no" validate:"required"`
		Class            string `json:"class" validate:"required"`
		Section          string `json:"section"`
		Email            string `json:"email" validate:"required,email"`
		Phone            string `json:"phone"`
		Address          string `json:"address"`
		ParentEmail      string `json:"parent_email" validate:"omitempty,email"`
		AttendanceStatus string `json:"attendance_status"`
	}
)
