package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CheckRollNoUniqueness(rollNo string) error {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM students WHERE roll_no = $1)`, rollNo)
	if err != nil {
		return errors.Wrap(err, "checking roll number")
	}
	if exists {
		return student.ErrRollNoExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(s student.Student, date time.Time, status attendance.Status) (student.Student, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowx(
		`INSERT INTO students (roll_no, name, class, section, email, phone, address, parent_email, admission_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING student_id`,
		s.RollNo, s.Name, s.Class, s.Section, s.Email, s.Phone, s.Address, s.ParentEmail, s.AdmissionDate, s.Status,
	).Scan(&s.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}

	if _, err = tx.Exec(
		`INSERT INTO daily_attendance (student_id, date, status) VALUES ($1, $2, $3)`,
		s.ID, date, status,
	); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting attendance")
	}

	if err = tx.Commit(); err != nil {
		return student.Student{}, errors.Wrap(err, "committing")
	}
	return s, nil
}

func (repo studentRepository) QueryActiveStudents(date time.Time) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students,
		`SELECT s.student_id, s.roll_no, s.name, s.class, s.section, s.email, s.phone, s.address,
		        s.parent_email, s.admission_date, s.status,
		        COALESCE(da.status, 'absent') AS attendance_status
		 FROM students s
		 LEFT JOIN daily_attendance da ON s.student_id = da.student_id AND da.date = $1
		 WHERE s.status = 'active'
		 ORDER BY s.class DESC, s.section ASC, s.roll_no ASC`,
		date,
	)
	return students, errors.Wrap(err, "querying students")
}

func (repo studentRepository) GetStudentByID(id int) (student.Student, error) {
	var s student.Student
	err := repo.db.Get(&s,
		`SELECT student_id, roll_no, name, class, section, email, phone, address,
		        parent_email, admission_date, status, '' AS attendance_status
		 FROM students WHERE student_id = $1`,
		id,
	)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return s, errors.Wrap(err, "getting student")
}

func (repo studentRepository) QueryClasses() ([]string, error) {
	classes := make([]string, 0)
	err := repo.db.Select(&classes, `SELECT DISTINCT class FROM students ORDER BY class DESC`)
	return classes, errors.Wrap(err, "querying classes")
}

func (repo studentRepository) QueryAbsentToday(date time.Time) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students,
		`SELECT s.student_id, s.roll_no, s.name, s.class, s.section, s.email, s.phone, s.address,
		        s.parent_email, s.admission_date, s.status,
		        'absent' AS attendance_status
		 FROM students s
		 LEFT JOIN daily_attendance da ON s.student_id = da.student_id AND da.date = $1
		 WHERE s.status = 'active' AND (da.status = 'absent' OR da.status IS NULL)
		 ORDER BY s.class DESC, s.section ASC, s.roll_no ASC`,
		date,
	)
	return students, errors.Wrap(err, "querying absent students")
}
