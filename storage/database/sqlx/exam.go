package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/exam"
)

type examRepository struct {
	db *sqlx.DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *sqlx.DB) *examRepository {
	return &examRepository{db: db}
}

func (repo examRepository) QueryAllExams() ([]exam.Exam, error) {
	exams := make([]exam.Exam, 0)
	err := repo.db.Select(&exams,
		`SELECT exam_id, exam_name, class, subject, exam_date, max_marks, status
		 FROM exams
		 ORDER BY exam_date DESC`,
	)
	return exams, errors.Wrap(err, "querying exams")
}

func (repo examRepository) GetExamByID(id int) (exam.Exam, error) {
	var e exam.Exam
	err := repo.db.Get(&e,
		`SELECT exam_id, exam_name, class, subject, exam_date, max_marks, status
		 FROM exams WHERE exam_id = $1`,
		id,
	)
	if err == sql.ErrNoRows {
		return exam.Exam{}, exam.ErrNotFound
	}
	return e, errors.Wrap(err, "getting exam")
}

func (repo examRepository) CreateExam(e exam.Exam) (exam.Exam, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO exams (exam_name, class, subject, exam_date, max_marks, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING exam_id`,
		e.Name, e.Class, e.Subject, e.Date, e.MaxMarks, e.Status,
	).Scan(&e.ID)
	return e, errors.Wrap(err, "inserting exam")
}

func (repo examRepository) UpdateExam(e exam.Exam) error {
	res, err := repo.db.Exec(
		`UPDATE exams
		 SET exam_name = $1, class = $2, subject = $3, exam_date = $4, max_marks = $5, status = $6
		 WHERE exam_id = $7`,
		e.Name, e.Class, e.Subject, e.Date, e.MaxMarks, e.Status, e.ID,
	)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.ErrNotFound
	}
	return nil
}

func (repo examRepository) DeleteExam(id int) error {
	res, err := repo.db.Exec(`DELETE FROM exams WHERE exam_id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.ErrNotFound
	}
	return nil
}

func (repo examRepository) QueryUpcoming(today time.Time, days, limit int) ([]exam.Exam, error) {
	exams := make([]exam.Exam, 0)
	err := repo.db.Select(&exams,
		`SELECT exam_id, exam_name, class, subject, exam_date, max_marks, status
		 FROM exams
		 WHERE status = 'upcoming' AND exam_date BETWEEN $1 AND $1 + $2 * INTERVAL '1 day'
		 ORDER BY exam_date ASC
		 LIMIT $3`,
		today, days, limit,
	)
	return exams, errors.Wrap(err, "querying upcoming exams")
}

func (repo examRepository) CountUpcoming(today time.Time, days int) (int, error) {
	var count int
	err := repo.db.Get(&count,
		`SELECT COUNT(*) FROM exams
		 WHERE status = 'upcoming' AND exam_date BETWEEN $1 AND $1 + $2 * INTERVAL '1 day'`,
		today, days,
	)
	return count, errors.Wrap(err, "counting upcoming exams")
}
