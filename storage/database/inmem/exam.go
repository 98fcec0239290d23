package inmem

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/exam"
)

func (s *Store) QueryAllExams() ([]exam.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := make([]exam.Exam, len(s.exams))
	copy(exams, s.exams)
	sort.Slice(exams, func(i, j int) bool { return exams[i].Date.After(exams[j].Date) })
	return exams, nil
}

func (s *Store) GetExamByID(id int) (exam.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.ID == id {
			return e, nil
		}
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (s *Store) CreateExam(e exam.Exam) (exam.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextExamID
	s.nextExamID++
	s.exams = append(s.exams, e)
	return e, nil
}

func (s *Store) UpdateExam(e exam.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.exams {
		if existing.ID == e.ID {
			s.exams[i] = e
			return nil
		}
	}
	return exam.ErrNotFound
}

func (s *Store) DeleteExam(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.exams {
		if e.ID == id {
			s.exams = append(s.exams[:i], s.exams[i+1:]...)
			return nil
		}
	}
	return exam.ErrNotFound
}

// upcomingLocked returns upcoming exams dated within [today, today+days],
// ascending.
func (s *Store) upcomingLocked(today time.Time, days int) []exam.Exam {
	exams := make([]exam.Exam, 0)
	for _, e := range s.exams {
		if e.Status != exam.StatusUpcoming {
			continue
		}
		if dl := alert.DaysLeft(e.Date, today); dl >= 0 && dl <= days {
			exams = append(exams, e)
		}
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].Date.Before(exams[j].Date) })
	return exams
}

func (s *Store) QueryUpcoming(today time.Time, days, limit int) ([]exam.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := s.upcomingLocked(today, days)
	if len(exams) > limit {
		exams = exams[:limit]
	}
	return exams, nil
}

func (s *Store) CountUpcoming(today time.Time, days int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.upcomingLocked(today, days)), nil
}
