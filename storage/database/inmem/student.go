package inmem

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

func sortStudents(students []student.Student) {
	sort.Slice(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if a.Class != b.Class {
			return a.Class > b.Class
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.RollNo < b.RollNo
	})
}

// statusForLocked returns the stored status of one student on one date.
func (s *Store) statusForLocked(studentID int, date time.Time) (attendance.Status, bool) {
	for _, rec := range s.studentAttendance {
		if rec.StudentID == studentID && sameDay(rec.Date, date) {
			return rec.Status, true
		}
	}
	return "", false
}

func (s *Store) CheckRollNoUniqueness(rollNo string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.RollNo == rollNo {
			return student.ErrRollNoExists
		}
	}
	return nil
}

func (s *Store) CreateStudent(st student.Student, date time.Time, status attendance.Status) (student.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = s.nextStudentID
	s.nextStudentID++
	s.students = append(s.students, st)
	s.upsertAttendanceLocked(attendance.Record{StudentID: st.ID, Date: date, Status: status})
	return st, nil
}

func (s *Store) QueryActiveStudents(date time.Time) ([]student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]student.Student, 0, len(s.students))
	for _, st := range s.students {
		if st.Status != "active" {
			continue
		}
		st.AttendanceStatus = string(attendance.StatusAbsent)
		if status, ok := s.statusForLocked(st.ID, date); ok {
			st.AttendanceStatus = string(status)
		}
		students = append(students, st)
	}
	sortStudents(students)
	return students, nil
}

func (s *Store) GetStudentByID(id int) (student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (s *Store) QueryClasses() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	classes := make([]string, 0)
	for _, st := range s.students {
		if !seen[st.Class] {
			seen[st.Class] = true
			classes = append(classes, st.Class)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(classes)))
	return classes, nil
}

func (s *Store) QueryAbsentToday(date time.Time) ([]student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]student.Student, 0)
	for _, st := range s.students {
		if st.Status != "active" {
			continue
		}
		status, ok := s.statusForLocked(st.ID, date)
		if ok && status != attendance.StatusAbsent {
			continue
		}
		st.AttendanceStatus = string(attendance.StatusAbsent)
		students = append(students, st)
	}
	sortStudents(students)
	return students, nil
}
