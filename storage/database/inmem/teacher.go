package inmem

import (
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/teacher"
)

func (s *Store) upsertTeacherAttendanceLocked(rec teacher.AttendanceRecord) {
	if !rec.MarkedAt.Valid {
		rec.MarkedAt = null.TimeFrom(time.Now())
	}
	for i, existing := range s.teacherAttendance {
		if existing.TeacherID == rec.TeacherID && sameDay(existing.Date, rec.Date) {
			s.teacherAttendance[i].Status = rec.Status
			s.teacherAttendance[i].Remarks = rec.Remarks
			s.teacherAttendance[i].MarkedAt = rec.MarkedAt
			return
		}
	}
	s.teacherAttendance = append(s.teacherAttendance, rec)
}

func (s *Store) QueryActiveTeachers() ([]teacher.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		if t.Status == "active" {
			teachers = append(teachers, t)
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
	return teachers, nil
}

func (s *Store) CreateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTeacherID
	s.nextTeacherID++
	s.teachers = append(s.teachers, t)
	return t, nil
}

func (s *Store) QueryDepartments() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	departments := make([]string, 0)
	for _, t := range s.teachers {
		if !seen[t.Department] {
			seen[t.Department] = true
			departments = append(departments, t.Department)
		}
	}
	sort.Strings(departments)
	return departments, nil
}

func (s *Store) QueryAttendanceByDate(date time.Time) ([]teacher.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]teacher.AttendanceRecord, 0)
	for _, rec := range s.teacherAttendance {
		if sameDay(rec.Date, date) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *Store) UpsertAttendanceBatch(records []teacher.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.upsertTeacherAttendanceLocked(rec)
	}
	return nil
}

func (s *Store) QueryAttendanceRange(r attendance.DateRange) ([]teacher.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make(map[int]bool)
	for _, t := range s.teachers {
		if t.Status == "active" {
			active[t.ID] = true
		}
	}

	records := make([]teacher.AttendanceRecord, 0)
	for _, rec := range s.teacherAttendance {
		if active[rec.TeacherID] && withinDay(rec.Date, r.Start, r.End) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !sameDay(records[i].Date, records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].TeacherID < records[j].TeacherID
	})
	return records, nil
}
