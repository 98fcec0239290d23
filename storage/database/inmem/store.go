// Package inmem provides an in-memory implementation of the storage
// repositories, used by tests and local development.
package inmem

import (
	"sync"
	"time"

	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/exam"
	"github.com/trezcool/darasa/core/fee"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

// Store holds all records in memory. One Store implements every
// repository interface, so tests wire the same instance everywhere.
type Store struct {
	mu sync.RWMutex

	students          []student.Student
	studentAttendance []attendance.Record
	teachers          []teacher.Teacher
	teacherAttendance []teacher.AttendanceRecord
	fees              []fee.Fee
	exams             []exam.Exam
	alertLogs         []alert.LogEntry

	nextStudentID    int
	nextTeacherID    int
	nextFeeID        int
	nextExamID       int
	nextAttendanceID int
	nextLogID        int
}

var (
	_ student.Repository    = (*Store)(nil) // interface compliance checks
	_ attendance.Repository = (*Store)(nil)
	_ teacher.Repository    = (*Store)(nil)
	_ fee.Repository        = (*Store)(nil)
	_ exam.Repository       = (*Store)(nil)
	_ alert.Repository      = (*Store)(nil)
	_ alert.LogRepository   = (*Store)(nil)
	_ dashboard.Repository  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		nextStudentID:    1,
		nextTeacherID:    1,
		nextFeeID:        1,
		nextExamID:       1,
		nextAttendanceID: 1,
		nextLogID:        1,
	}
}

// SeedStudent inserts a student, assigning an ID when none is set.
func (s *Store) SeedStudent(st student.Student) student.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == 0 {
		st.ID = s.nextStudentID
		s.nextStudentID++
	} else if st.ID >= s.nextStudentID {
		s.nextStudentID = st.ID + 1
	}
	if st.Status == "" {
		st.Status = "active"
	}
	s.students = append(s.students, st)
	return st
}

func (s *Store) SeedTeacher(t teacher.Teacher) teacher.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextTeacherID
		s.nextTeacherID++
	} else if t.ID >= s.nextTeacherID {
		s.nextTeacherID = t.ID + 1
	}
	if t.Status == "" {
		t.Status = "active"
	}
	s.teachers = append(s.teachers, t)
	return t
}

func (s *Store) SeedAttendance(rec attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertAttendanceLocked(rec)
}

func (s *Store) SeedTeacherAttendance(rec teacher.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertTeacherAttendanceLocked(rec)
}

func (s *Store) SeedFee(f fee.Fee) fee.Fee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == 0 {
		f.ID = s.nextFeeID
		s.nextFeeID++
	} else if f.ID >= s.nextFeeID {
		s.nextFeeID = f.ID + 1
	}
	s.fees = append(s.fees, f)
	return f
}

func (s *Store) SeedExam(e exam.Exam) exam.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.nextExamID
		s.nextExamID++
	} else if e.ID >= s.nextExamID {
		s.nextExamID = e.ID + 1
	}
	s.exams = append(s.exams, e)
	return e
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func withinDay(d, start, end time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	hi := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(lo) && !day.After(hi)
}
