package sqlxrepos

import (
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

// classFilter appends optional class/section predicates on the students
// table alias `s`, returning the extended query and args.
func classFilter(query string, args []interface{}, class, section string) (string, []interface{}) {
	if class != "" {
		args = append(args, class)
		query += " AND s.class = $" + strconv.Itoa(len(args))
	}
	if section != "" {
		args = append(args, section)
		query += " AND s.section = $" + strconv.Itoa(len(args))
	}
	return query, args
}

func (repo attendanceRepository) QueryRoster(class, section string) ([]attendance.RosterEntry, error) {
	query := `SELECT s.student_id, s.name, s.class, s.section, s.parent_email
	          FROM students s
	          WHERE s.status = 'active'`
	var args []interface{}
	query, args = classFilter(query, args, class, section)
	query += " ORDER BY s.class DESC, s.section ASC, s.roll_no ASC"

	roster := make([]attendance.RosterEntry, 0)
	err := repo.db.Select(&roster, query, args...)
	return roster, errors.Wrap(err, "querying roster")
}

func (repo attendanceRepository) QueryDay(date time.Time, class, section string) ([]attendance.DayRecord, error) {
	query := `SELECT s.student_id, s.name, s.class, s.section, s.parent_email, da.status
	          FROM daily_attendance da
	          JOIN students s ON s.student_id = da.student_id
	          WHERE s.status = 'active' AND da.date = $1`
	args := []interface{}{date}
	query, args = classFilter(query, args, class, section)
	query += " ORDER BY s.class DESC, s.section ASC, s.roll_no ASC"

	records := make([]attendance.DayRecord, 0)
	err := repo.db.Select(&records, query, args...)
	return records, errors.Wrap(err, "querying day records")
}

func (repo attendanceRepository) QueryRange(r attendance.DateRange, class, section string) ([]attendance.Record, error) {
	query := `SELECT da.id, da.student_id, da.date, da.status
	          FROM daily_attendance da
	          JOIN students s ON s.student_id = da.student_id
	          WHERE s.status = 'active' AND da.date BETWEEN $1 AND $2`
	args := []interface{}{r.Start, r.End}
	query, args = classFilter(query, args, class, section)
	query += " ORDER BY da.date ASC, da.student_id ASC"

	records := make([]attendance.Record, 0)
	err := repo.db.Select(&records, query, args...)
	return records, errors.Wrap(err, "querying range records")
}

func (repo attendanceRepository) UpsertBatch(records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(
		`INSERT INTO daily_attendance (student_id, date, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status`,
	)
	if err != nil {
		return errors.Wrap(err, "preparing upsert")
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err = stmt.Exec(rec.StudentID, rec.Date, rec.Status); err != nil {
			return errors.Wrapf(err, "upserting record for student %d", rec.StudentID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing")
}
