package alert

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
)

type (
	// Repository resolves the aggregates the alert rules run against.
	Repository interface {
		// TodayAttendance returns the school-wide present/marked counts
		// of one date.
		TodayAttendance(date time.Time) (present, marked int, err error)
		CountUnpaidFees() (int, error)
		// QueryExamsDue returns upcoming exams dated within
		// [today, today+days], ascending, capped at limit.
		QueryExamsDue(today time.Time, days, limit int) ([]ExamDue, error)
	}

	Service struct {
		repo        Repository
		alertWindow int
	}
)

func NewService(repo Repository, alertWindow int) *Service {
	return &Service{repo: repo, alertWindow: alertWindow}
}

// Alerts evaluates the rules against today's data. Rules whose inputs
// are unavailable are skipped, never treated as errors.
func (svc *Service) Alerts(today time.Time) ([]Alert, error) {
	var in Input

	present, marked, err := svc.repo.TodayAttendance(today)
	if err != nil {
		return nil, errors.Wrap(err, "querying today's attendance")
	}
	if marked > 0 {
		pct := attendance.Percent(present, marked, 1)
		in.TodayPercentage = &pct
	}

	unpaid, err := svc.repo.CountUnpaidFees()
	if err != nil {
		return nil, errors.Wrap(err, "counting unpaid fees")
	}
	in.UnpaidFees = &unpaid

	in.UpcomingExams, err = svc.repo.QueryExamsDue(today, svc.alertWindow, maxExamAlerts)
	if err != nil {
		return nil, errors.Wrap(err, "querying upcoming exams")
	}

	return Evaluate(in), nil
}
