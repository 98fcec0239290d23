package fee

import "time"

// Fee statuses; recomputed on every payment.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

type (
	// Fee is a student's fee record joined with their identity.
	// Invariant: PendingAmount = TotalAmount - PaidAmount, always >= 0.
	Fee struct {
		ID            int       `db:"fee_id" json:"fee_id"`
		StudentID     int       `db:"student_id" json:"student_id"`
		StudentName   string    `db:"name" json:"name"`
		Class         string    `db:"class" json:"class"`
		TotalAmount   float64   `db:"total_amount" json:"total_amount"`
		PaidAmount    float64   `db:"paid_amount" json:"paid_amount"`
		PendingAmount float64   `db:"pending_amount" json:"pending_amount"`
		DueDate       time.Time `db:"due_date" json:"-"`
		Status        string    `db:"status" json:"status"`
	}

	Payment struct {
		Amount float64 `json:"payment_amount" validate:"required,gt=0"`
	}

	// PaymentResult is the state of the fee after a recorded payment.
	PaymentResult struct {
		PaidAmount    float64 `json:"new_paid_amount"`
		PendingAmount float64 `json:"new_pending_amount"`
		Status        string  `json:"new_status"`
	}
)

// RecomputeStatus derives the fee status after a payment: paid when
// nothing is pending, otherwise overdue when the due date has passed.
func RecomputeStatus(pending float64, dueDate, now time.Time) string {
	if pending == 0 {
		return StatusPaid
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}
