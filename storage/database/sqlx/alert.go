package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/alert"
)

type alertRepository struct {
	db *sqlx.DB
}

var (
	_ alert.Repository    = (*alertRepository)(nil) // interface compliance checks
	_ alert.LogRepository = (*alertRepository)(nil)
)

func NewAlertRepository(db *sqlx.DB) *alertRepository {
	return &alertRepository{db: db}
}

func (repo alertRepository) TodayAttendance(date time.Time) (present, marked int, err error) {
	row := repo.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE status = 'present'), COUNT(*)
		 FROM daily_attendance WHERE date = $1`,
		date,
	)
	if err = row.Scan(&present, &marked); err != nil {
		return 0, 0, errors.Wrap(err, "counting today's attendance")
	}
	return present, marked, nil
}

func (repo alertRepository) CountUnpaidFees() (int, error) {
	var count int
	err := repo.db.Get(&count, `SELECT COUNT(*) FROM fees WHERE status IN ('pending', 'overdue')`)
	return count, errors.Wrap(err, "counting unpaid fees")
}

func (repo alertRepository) QueryExamsDue(today time.Time, days, limit int) ([]alert.ExamDue, error) {
	rows, err := repo.db.Query(
		`SELECT exam_name, class, subject, exam_date
		 FROM exams
		 WHERE status = 'upcoming' AND exam_date BETWEEN $1 AND $1 + $2 * INTERVAL '1 day'
		 ORDER BY exam_date ASC
		 LIMIT $3`,
		today, days, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying due exams")
	}
	defer func() { _ = rows.Close() }()

	exams := make([]alert.ExamDue, 0)
	for rows.Next() {
		var e alert.ExamDue
		if err = rows.Scan(&e.Name, &e.Class, &e.Subject, &e.Date); err != nil {
			return nil, errors.Wrap(err, "scanning due exam")
		}
		e.DaysLeft = alert.DaysLeft(e.Date, today)
		exams = append(exams, e)
	}
	return exams, errors.Wrap(rows.Err(), "querying due exams")
}

func (repo alertRepository) CreateLog(entry alert.LogEntry) (alert.LogEntry, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO alert_logs (student_id, alert_type, date, parent_email, message, status, reference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING log_id, sent_at`,
		entry.StudentID, entry.Type, entry.Date, entry.ParentEmail, entry.Message, entry.Status, entry.Reference,
	).Scan(&entry.ID, &entry.SentAt)
	return entry, errors.Wrap(err, "inserting alert log")
}

func (repo alertRepository) QueryRecentLogs(limit int) ([]alert.LogDetail, error) {
	logs := make([]alert.LogDetail, 0)
	err := repo.db.Select(&logs,
		`SELECT to_char(al.date, 'YYYY-MM-DD') AS date, s.name, s.roll_no, s.class, s.section,
		        al.parent_email, al.message, al.status
		 FROM alert_logs al
		 JOIN students s ON s.student_id = al.student_id
		 ORDER BY al.sent_at DESC
		 LIMIT $1`,
		limit,
	)
	return logs, errors.Wrap(err, "querying alert logs")
}
