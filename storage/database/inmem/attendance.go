package inmem

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

func matchesClass(st student.Student, class, section string) bool {
	if class != "" && st.Class != class {
		return false
	}
	if section != "" && st.Section != section {
		return false
	}
	return true
}

// activeRosterLocked returns active students matching the filter in
// roster order.
func (s *Store) activeRosterLocked(class, section string) []student.Student {
	students := make([]student.Student, 0, len(s.students))
	for _, st := range s.students {
		if st.Status == "active" && matchesClass(st, class, section) {
			students = append(students, st)
		}
	}
	sortStudents(students)
	return students
}

func (s *Store) upsertAttendanceLocked(rec attendance.Record) {
	for i, existing := range s.studentAttendance {
		if existing.StudentID == rec.StudentID && sameDay(existing.Date, rec.Date) {
			s.studentAttendance[i].Status = rec.Status
			return
		}
	}
	rec.ID = s.nextAttendanceID
	s.nextAttendanceID++
	s.studentAttendance = append(s.studentAttendance, rec)
}

func (s *Store) QueryRoster(class, section string) ([]attendance.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]attendance.RosterEntry, 0)
	for _, st := range s.activeRosterLocked(class, section) {
		roster = append(roster, attendance.RosterEntry{
			StudentID:   st.ID,
			Name:        st.Name,
			Class:       st.Class,
			Section:     st.Section,
			ParentEmail: st.ParentEmail,
		})
	}
	return roster, nil
}

func (s *Store) QueryDay(date time.Time, class, section string) ([]attendance.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]attendance.DayRecord, 0)
	for _, st := range s.activeRosterLocked(class, section) {
		status, ok := s.statusForLocked(st.ID, date)
		if !ok {
			continue
		}
		records = append(records, attendance.DayRecord{
			RosterEntry: attendance.RosterEntry{
				StudentID:   st.ID,
				Name:        st.Name,
				Class:       st.Class,
				Section:     st.Section,
				ParentEmail: st.ParentEmail,
			},
			Status: status,
		})
	}
	return records, nil
}

func (s *Store) QueryRange(r attendance.DateRange, class, section string) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make(map[int]bool)
	for _, st := range s.activeRosterLocked(class, section) {
		active[st.ID] = true
	}

	records := make([]attendance.Record, 0)
	for _, rec := range s.studentAttendance {
		if active[rec.StudentID] && withinDay(rec.Date, r.Start, r.End) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !sameDay(records[i].Date, records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records, nil
}

func (s *Store) UpsertBatch(records []attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.upsertAttendanceLocked(rec)
	}
	return nil
}
