package fee

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("fee record not found")

type (
	Repository interface {
		// QueryAllFees returns fees joined with student info, ordered by
		// status DESC then due date ASC.
		QueryAllFees() ([]Fee, error)
		GetFeeByID(id int) (Fee, error)
		// UpdateFeePayment applies the recomputed amounts and status as
		// a single statement.
		UpdateFeePayment(id int, paid, pending float64, status string) error
		// CountUnpaid counts fees with status pending or overdue.
		CountUnpaid() (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query() ([]Fee, error) {
	return svc.repo.QueryAllFees()
}

// RecordPayment applies a payment against a fee. A non-positive amount
// or one exceeding the pending balance is rejected with no state
// change; paid_amount never exceeds total_amount.
func (svc *Service) RecordPayment(id int, amount float64, now time.Time) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, core.NewValidationError(nil,
			core.FieldError{Field: "payment_amount", Error: "payment amount must be greater than 0"})
	}

	current, err := svc.repo.GetFeeByID(id)
	if err != nil {
		return PaymentResult{}, err
	}

	newPaid := current.PaidAmount + amount
	newPending := current.TotalAmount - newPaid
	if newPaid > current.TotalAmount {
		return PaymentResult{}, core.NewValidationError(nil, core.FieldError{
			Field: "payment_amount",
			Error: fmt.Sprintf("payment amount ($%g) exceeds pending amount ($%g)", amount, current.PendingAmount),
		})
	}

	status := RecomputeStatus(newPending, current.DueDate, now)
	if err := svc.repo.UpdateFeePayment(id, newPaid, newPending, status); err != nil {
		return PaymentResult{}, errors.Wrap(err, "updating fee payment")
	}
	return PaymentResult{PaidAmount: newPaid, PendingAmount: newPending, Status: status}, nil
}

func (svc *Service) CountUnpaid() (int, error) {
	return svc.repo.CountUnpaid()
}
