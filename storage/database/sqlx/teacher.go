package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo teacherRepository) QueryActiveTeachers() ([]teacher.Teacher, error) {
	teachers := make([]teacher.Teacher, 0)
	err := repo.db.Select(&teachers,
		`SELECT teacher_id, name, subject, department, joining_date, status
		 FROM teachers
		 WHERE status = 'active'
		 ORDER BY name ASC`,
	)
	return teachers, errors.Wrap(err, "querying teachers")
}

func (repo teacherRepository) CreateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO teachers (name, subject, department, joining_date, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING teacher_id`,
		t.Name, t.Subject, t.Department, t.JoiningDate, t.Status,
	).Scan(&t.ID)
	return t, errors.Wrap(err, "inserting teacher")
}

func (repo teacherRepository) QueryDepartments() ([]string, error) {
	departments := make([]string, 0)
	err := repo.db.Select(&departments, `SELECT DISTINCT department FROM teachers ORDER BY department ASC`)
	return departments, errors.Wrap(err, "querying departments")
}

func (repo teacherRepository) QueryAttendanceByDate(date time.Time) ([]teacher.AttendanceRecord, error) {
	records := make([]teacher.AttendanceRecord, 0)
	err := repo.db.Select(&records,
		`SELECT teacher_id, date, status, remarks, marked_at
		 FROM teacher_attendance
		 WHERE date = $1`,
		date,
	)
	return records, errors.Wrap(err, "querying teacher attendance")
}

func (repo teacherRepository) UpsertAttendanceBatch(records []teacher.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(
		`INSERT INTO teacher_attendance (teacher_id, date, status, remarks, marked_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (teacher_id, date)
		 DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks, marked_at = now()`,
	)
	if err != nil {
		return errors.Wrap(err, "preparing upsert")
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err = stmt.Exec(rec.TeacherID, rec.Date, rec.Status, rec.Remarks); err != nil {
			return errors.Wrapf(err, "upserting record for teacher %d", rec.TeacherID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing")
}

func (repo teacherRepository) QueryAttendanceRange(r attendance.DateRange) ([]teacher.AttendanceRecord, error) {
	records := make([]teacher.AttendanceRecord, 0)
	err := repo.db.Select(&records,
		`SELECT ta.teacher_id, ta.date, ta.status, ta.remarks, ta.marked_at
		 FROM teacher_attendance ta
		 JOIN teachers t ON t.teacher_id = ta.teacher_id
		 WHERE t.status = 'active' AND ta.date BETWEEN $1 AND $2
		 ORDER BY ta.date ASC, ta.teacher_id ASC`,
		r.Start, r.End,
	)
	return records, errors.Wrap(err, "querying teacher attendance range")
}
