package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/dashboard"
)

type dashboardRepository struct {
	db *sqlx.DB
}

var _ dashboard.Repository = (*dashboardRepository)(nil) // interface compliance check

func NewDashboardRepository(db *sqlx.DB) *dashboardRepository {
	return &dashboardRepository{db: db}
}

func (repo dashboardRepository) CountActiveStudents() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(*) FROM students WHERE status = 'active'`)
	return count, errors.Wrap(err, "counting students")
}

func (repo dashboardRepository) CountActiveTeachers() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(*) FROM teachers WHERE status = 'active'`)
	return count, errors.Wrap(err, "counting teachers")
}

func (repo dashboardRepository) CountDistinctSubjects() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(DISTINCT subject) FROM teachers WHERE status = 'active'`)
	return count, errors.Wrap(err, "counting subjects")
}

func (repo dashboardRepository) DayTally(date time.Time) (present, marked int, err error) {
	row := repo.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE status = 'present'), COUNT(*)
		 FROM daily_attendance WHERE date = $1`,
		date,
	)
	if err = row.Scan(&present, &marked); err != nil {
		return 0, 0, errors.Wrap(err, "tallying attendance")
	}
	return present, marked, nil
}

func (repo dashboardRepository) ClassDayTally(class string, date time.Time) (present, marked int, err error) {
	row := repo.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE da.status = 'present'), COUNT(*)
		 FROM daily_attendance da
		 JOIN students s ON s.student_id = da.student_id
		 WHERE s.class = $1 AND da.date = $2`,
		class, date,
	)
	if err = row.Scan(&present, &marked); err != nil {
		return 0, 0, errors.Wrapf(err, "tallying attendance for %s", class)
	}
	return present, marked, nil
}

func (repo dashboardRepository) AttendanceSeries(limit int) ([]dashboard.SeriesPoint, error) {
	rows, err := repo.db.Query(
		`SELECT date,
		        ROUND(COUNT(*) FILTER (WHERE status = 'present') * 100.0 / COUNT(*), 1)
		 FROM daily_attendance
		 GROUP BY date
		 ORDER BY date DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance series")
	}
	defer func() { _ = rows.Close() }()

	points := make([]dashboard.SeriesPoint, 0, limit)
	for rows.Next() {
		var p dashboard.SeriesPoint
		if err = rows.Scan(&p.Date, &p.Percentage); err != nil {
			return nil, errors.Wrap(err, "scanning series point")
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying attendance series")
	}

	// oldest first for charting
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

func (repo dashboardRepository) QueryClassCounts() ([]dashboard.ClassCount, error) {
	counts := make([]dashboard.ClassCount, 0)
	err := repo.db.Select(&counts,
		`SELECT class, COUNT(*) AS total_students
		 FROM students
		 WHERE status = 'active'
		 GROUP BY class
		 ORDER BY class DESC`,
	)
	return counts, errors.Wrap(err, "querying class counts")
}

func (repo dashboardRepository) QueryFirstSubject() (string, error) {
	var subject string
	err := repo.db.Get(&subject, `SELECT subject FROM teachers WHERE status = 'active' ORDER BY teacher_id ASC LIMIT 1`)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return subject, errors.Wrap(err, "querying subject")
}

func (repo dashboardRepository) CountUnpaidFees() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(*) FROM fees WHERE status IN ('pending', 'overdue')`)
	return count, errors.Wrap(err, "counting unpaid fees")
}

func (repo dashboardRepository) CountUpcomingExams(today time.Time, days int) (int, error) {
	var count int
	err := repo.db.Get(&count,
		`SELECT COUNT(*) FROM exams
		 WHERE status = 'upcoming' AND exam_date BETWEEN $1 AND $1 + $2 * INTERVAL '1 day'`,
		today, days,
	)
	return count, errors.Wrap(err, "counting upcoming exams")
}
