package exam

import "time"

// Exam statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type (
	Exam struct {
		ID       int       `db:"exam_id" json:"exam_id"`
		Name     string    `db:"exam_name" json:"exam_name"`
		Class    string    `db:"class" json:"class"`
		Subject  string    `db:"subject" json:"subject"`
		Date     time.Time `db:"exam_date" json:"-"`
		MaxMarks int       `db:"max_marks" json:"max_marks"`
		Status   string    `db:"status" json:"status"`
	}

	NewExam struct {
		Name     string `json:"exam_name" validate:"required"`
		Class    string `json:"class" validate:"required"`
		Subject  string `json:"subject" validate:"required"`
		Date     string `json:"exam_date" validate:"required,dateonly"`
		MaxMarks int    `json:"max_marks" validate:"required,gt=0"`
		Status   string `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
	}

	// UpdateExam carries partial updates; nil fields keep the stored value.
	UpdateExam struct {
		Name     *string `json:"exam_name"`
		Class    *string `json:"class"`
		Subject  *string `json:"subject"`
		Date     *string `json:"exam_date" validate:"omitempty,dateonly"`
		MaxMarks *int    `json:"max_marks" validate:"omitempty,gt=0"`
		Status   *string `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
	}
)
