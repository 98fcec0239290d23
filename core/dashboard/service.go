package dashboard

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
)

type (
	Repository interface {
		CountActiveStudents() (int, error)
		CountActiveTeachers() (int, error)
		// CountDistinctSubjects counts the subjects taught, the proxy
		// used for "classes assigned".
		CountDistinctSubjects() (int, error)
		// DayTally returns the school-wide present/marked counts of one date.
		DayTally(date time.Time) (present, marked int, err error)
		// ClassDayTally is DayTally restricted to one class.
		ClassDayTally(class string, date time.Time) (present, marked int, err error)
		// AttendanceSeries returns the pooled percentage of the most
		// recent `limit` recorded dates, oldest first.
		AttendanceSeries(limit int) ([]SeriesPoint, error)
		QueryClassCounts() ([]ClassCount, error)
		QueryFirstSubject() (string, error)
		CountUnpaidFees() (int, error)
		CountUpcomingExams(today time.Time, days int) (int, error)
	}

	Service struct {
		repo           Repository
		upcomingWindow int
	}
)

func NewService(repo Repository, upcomingWindow int) *Service {
	return &Service{repo: repo, upcomingWindow: upcomingWindow}
}

// Stats computes the admin dashboard metrics for `today`. The
// attendance percentage is pooled over today's marked records.
func (svc *Service) Stats(today time.Time) (Stats, error) {
	var stats Stats
	var err error

	if stats.TotalStudents, err = svc.repo.CountActiveStudents(); err != nil {
		return Stats{}, errors.Wrap(err, "counting students")
	}
	if stats.TotalTeachers, err = svc.repo.CountActiveTeachers(); err != nil {
		return Stats{}, errors.Wrap(err, "counting teachers")
	}

	present, marked, err := svc.repo.DayTally(today)
	if err != nil {
		return Stats{}, errors.Wrap(err, "computing today's attendance")
	}
	stats.AttendancePercentage = attendance.Percent(present, marked, 1)
	switch {
	case stats.AttendancePercentage >= 85:
		stats.AttendanceStatus = "success"
	case stats.AttendancePercentage >= 75:
		stats.AttendanceStatus = "warning"
	default:
		stats.AttendanceStatus = "danger"
	}

	if stats.PendingFeesCount, err = svc.repo.CountUnpaidFees(); err != nil {
		return Stats{}, errors.Wrap(err, "counting unpaid fees")
	}
	switch {
	case stats.PendingFeesCount == 0:
		stats.FeesStatus = "success"
	case stats.PendingFeesCount <= 3:
		stats.FeesStatus = "warning"
	default:
		stats.FeesStatus = "danger"
	}

	if stats.UpcomingExams, err = svc.repo.CountUpcomingExams(today, svc.upcomingWindow); err != nil {
		return Stats{}, errors.Wrap(err, "counting upcoming exams")
	}
	return stats, nil
}

// Series returns the last `days` recorded attendance percentages,
// oldest first, for the dashboard chart.
func (svc *Service) Series(days int) ([]SeriesPoint, error) {
	return svc.repo.AttendanceSeries(days)
}

// TeacherStats computes the teacher dashboard metrics. Counters whose
// data source does not exist yet (assignments, messages) stay nil.
func (svc *Service) TeacherStats(today time.Time) (TeacherStats, error) {
	var stats TeacherStats
	var err error

	if stats.TotalClasses, err = svc.repo.CountDistinctSubjects(); err != nil {
		return TeacherStats{}, errors.Wrap(err, "counting subjects")
	}
	if stats.TotalStudents, err = svc.repo.CountActiveStudents(); err != nil {
		return TeacherStats{}, errors.Wrap(err, "counting students")
	}
	present, marked, err := svc.repo.DayTally(today)
	if err != nil {
		return TeacherStats{}, errors.Wrap(err, "computing today's attendance")
	}
	stats.AttendancePercentage = attendance.Percent(present, marked, 1)
	return stats, nil
}

// Classes returns per-class roster sizes with today's attendance rate.
func (svc *Service) Classes(today time.Time) ([]ClassOverview, error) {
	counts, err := svc.repo.QueryClassCounts()
	if err != nil {
		return nil, errors.Wrap(err, "querying class counts")
	}
	subject, err := svc.repo.QueryFirstSubject()
	if err != nil {
		return nil, errors.Wrap(err, "querying subject")
	}
	if subject == "" {
		subject = "General"
	}

	overviews := make([]ClassOverview, 0, len(counts))
	for _, c := range counts {
		present, marked, err := svc.repo.ClassDayTally(c.ClassName, today)
		if err != nil {
			return nil, errors.Wrapf(err, "computing attendance rate for %s", c.ClassName)
		}
		overviews = append(overviews, ClassOverview{
			ClassName:      c.ClassName,
			Subject:        subject,
			TotalStudents:  c.TotalStudents,
			AttendanceRate: attendance.Percent(present, marked, 0),
		})
	}
	return overviews, nil
}
