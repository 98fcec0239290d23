package inmem

import (
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/attendance"
)

func (s *Store) TodayAttendance(date time.Time) (present, marked int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.studentAttendance {
		if !sameDay(rec.Date, date) {
			continue
		}
		marked++
		if rec.Status == attendance.StatusPresent {
			present++
		}
	}
	return present, marked, nil
}

func (s *Store) CountUnpaidFees() (int, error) {
	return s.CountUnpaid()
}

func (s *Store) QueryExamsDue(today time.Time, days, limit int) ([]alert.ExamDue, error) {
	exams, err := s.QueryUpcoming(today, days, limit)
	if err != nil {
		return nil, err
	}

	due := make([]alert.ExamDue, 0, len(exams))
	for _, e := range exams {
		due = append(due, alert.ExamDue{
			Name:     e.Name,
			Class:    e.Class,
			Subject:  e.Subject,
			Date:     e.Date,
			DaysLeft: alert.DaysLeft(e.Date, today),
		})
	}
	return due, nil
}

func (s *Store) CreateLog(entry alert.LogEntry) (alert.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextLogID
	s.nextLogID++
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	s.alertLogs = append(s.alertLogs, entry)
	return entry, nil
}

func (s *Store) QueryRecentLogs(limit int) ([]alert.LogDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]alert.LogDetail, 0, limit)
	for i := len(s.alertLogs) - 1; i >= 0 && len(logs) < limit; i-- {
		entry := s.alertLogs[i]
		detail := alert.LogDetail{
			Date:        entry.Date.Format(core.DateFormat),
			ParentEmail: entry.ParentEmail,
			Message:     entry.Message,
			Status:      entry.Status,
		}
		for _, st := range s.students {
			if st.ID == entry.StudentID {
				detail.StudentName = st.Name
				detail.RollNo = st.RollNo
				detail.Class = st.Class
				detail.Section = st.Section
				break
			}
		}
		logs = append(logs, detail)
	}
	return logs, nil
}
