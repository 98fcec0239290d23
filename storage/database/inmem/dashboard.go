package inmem

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/dashboard"
)

func (s *Store) CountActiveStudents() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	for _, st := range s.students {
		if st.Status == "active" {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountActiveTeachers() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	for _, t := range s.teachers {
		if t.Status == "active" {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountDistinctSubjects() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subjects := make(map[string]bool)
	for _, t := range s.teachers {
		if t.Status == "active" {
			subjects[t.Subject] = true
		}
	}
	return len(subjects), nil
}

func (s *Store) DayTally(date time.Time) (present, marked int, err error) {
	return s.TodayAttendance(date)
}

func (s *Store) ClassDayTally(class string, date time.Time) (present, marked int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inClass := make(map[int]bool)
	for _, st := range s.students {
		if st.Class == class {
			inClass[st.ID] = true
		}
	}
	for _, rec := range s.studentAttendance {
		if !inClass[rec.StudentID] || !sameDay(rec.Date, date) {
			continue
		}
		marked++
		if rec.Status == attendance.StatusPresent {
			present++
		}
	}
	return present, marked, nil
}

func (s *Store) AttendanceSeries(limit int) ([]dashboard.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type tally struct{ present, marked int }
	byDate := make(map[time.Time]*tally)
	for _, rec := range s.studentAttendance {
		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		t, ok := byDate[day]
		if !ok {
			t = &tally{}
			byDate[day] = t
		}
		t.marked++
		if rec.Status == attendance.StatusPresent {
			t.present++
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) > limit {
		dates = dates[len(dates)-limit:]
	}

	points := make([]dashboard.SeriesPoint, 0, len(dates))
	for _, d := range dates {
		t := byDate[d]
		points = append(points, dashboard.SeriesPoint{
			Date:       d,
			Percentage: attendance.Percent(t.present, t.marked, 1),
		})
	}
	return points, nil
}

func (s *Store) QueryClassCounts() ([]dashboard.ClassCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byClass := make(map[string]int)
	for _, st := range s.students {
		if st.Status == "active" {
			byClass[st.Class]++
		}
	}
	counts := make([]dashboard.ClassCount, 0, len(byClass))
	for class, total := range byClass {
		counts = append(counts, dashboard.ClassCount{ClassName: class, TotalStudents: total})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].ClassName > counts[j].ClassName })
	return counts, nil
}

func (s *Store) QueryFirstSubject() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var first string
	minID := int(^uint(0) >> 1)
	for _, t := range s.teachers {
		if t.Status == "active" && t.ID < minID {
			minID = t.ID
			first = t.Subject
		}
	}
	return first, nil
}

func (s *Store) CountUpcomingExams(today time.Time, days int) (int, error) {
	return s.CountUpcoming(today, days)
}
