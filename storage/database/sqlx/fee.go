package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/fee"
)

type feeRepository struct {
	db *sqlx.DB
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *sqlx.DB) *feeRepository {
	return &feeRepository{db: db}
}

func (repo feeRepository) QueryAllFees() ([]fee.Fee, error) {
	fees := make([]fee.Fee, 0)
	err := repo.db.Select(&fees,
		`SELECT f.fee_id, f.student_id, s.name, s.class,
		        f.total_amount, f.paid_amount, f.pending_amount, f.due_date, f.status
		 FROM fees f
		 JOIN students s ON s.student_id = f.student_id
		 ORDER BY f.status DESC, f.due_date ASC`,
	)
	return fees, errors.Wrap(err, "querying fees")
}

func (repo feeRepository) GetFeeByID(id int) (fee.Fee, error) {
	var f fee.Fee
	err := repo.db.Get(&f,
		`SELECT f.fee_id, f.student_id, s.name, s.class,
		        f.total_amount, f.paid_amount, f.pending_amount, f.due_date, f.status
		 FROM fees f
		 JOIN students s ON s.student_id = f.student_id
		 WHERE f.fee_id = $1`,
		id,
	)
	if err == sql.ErrNoRows {
		return fee.Fee{}, fee.ErrNotFound
	}
	return f, errors.Wrap(err, "getting fee")
}

func (repo feeRepository) UpdateFeePayment(id int, paid, pending float64, status string) error {
	res, err := repo.db.Exec(
		`UPDATE fees SET paid_amount = $1, pending_amount = $2, status = $3 WHERE fee_id = $4`,
		paid, pending, status, id,
	)
	if err != nil {
		return errors.Wrap(err, "updating fee")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fee.ErrNotFound
	}
	return nil
}

func (repo feeRepository) CountUnpaid() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(*) FROM fees WHERE status IN ('pending', 'overdue')`)
	return count, errors.Wrap(err, "counting unpaid fees")
}
