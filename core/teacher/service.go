package teacher

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
)

type (
	Repository interface {
		QueryActiveTeachers() ([]Teacher, error)
		CreateTeacher(t Teacher) (Teacher, error)
		QueryDepartments() ([]string, error)
		QueryAttendanceByDate(date time.Time) ([]AttendanceRecord, error)
		// UpsertAttendanceBatch writes records as a single atomic unit;
		// a (teacher, date) pair is unique.
		UpsertAttendanceBatch(records []AttendanceRecord) error
		QueryAttendanceRange(r attendance.DateRange) ([]AttendanceRecord, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query() ([]Teacher, error) {
	return svc.repo.QueryActiveTeachers()
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	joined, err := time.Parse(core.DateFormat, nt.JoiningDate)
	if err != nil {
		return Teacher{}, core.NewValidationError(err, core.FieldError{Field: "joining_date", Error: "invalid date"})
	}
	t := Teacher{
		Name:        core.CleanString(nt.Name),
		Subject:     core.CleanString(nt.Subject),
		Department:  core.CleanString(nt.Department),
		JoiningDate: joined,
		Status:      "active",
	}
	return svc.repo.CreateTeacher(t)
}

func (svc *Service) Departments() ([]string, error) {
	return svc.repo.QueryDepartments()
}

// AttendanceByDate returns the marked statuses of one date keyed by teacher id.
func (svc *Service) AttendanceByDate(date time.Time) (map[int]DayStatus, error) {
	records, err := svc.repo.QueryAttendanceByDate(date)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher attendance")
	}
	marked := make(map[int]DayStatus, len(records))
	for _, rec := range records {
		marked[rec.TeacherID] = DayStatus{
			Status:   rec.Status,
			Remarks:  rec.Remarks.String,
			MarkedAt: rec.MarkedAt,
		}
	}
	return marked, nil
}

// SaveAttendance validates and stores a batch of teacher attendance
// records, reporting per-record outcomes instead of silently skipping
// invalid ones.
func (svc *Service) SaveAttendance(records []SaveRecord) ([]SaveResult, error) {
	if len(records) == 0 {
		return nil, core.NewValidationError(errors.New("no attendance records provided"))
	}

	results := make([]SaveResult, len(records))
	valid := make([]AttendanceRecord, 0, len(records))
	for i, rec := range records {
		res := SaveResult{Index: i, TeacherID: rec.TeacherID}
		switch {
		case rec.TeacherID <= 0:
			res.Reason = "missing teacher_id"
		case rec.Date == "":
			res.Reason = "missing date"
		default:
			date, err := time.Parse(core.DateFormat, rec.Date)
			if err != nil {
				res.Reason = "invalid date"
				break
			}
			status, ok := ParseAttendanceStatus(rec.Status)
			if !ok {
				res.Reason = "invalid status"
				break
			}
			res.Saved = true
			valid = append(valid, AttendanceRecord{
				TeacherID: rec.TeacherID,
				Date:      date,
				Status:    status,
				Remarks:   null.NewString(rec.Remarks, rec.Remarks != ""),
			})
		}
		results[i] = res
	}

	if len(valid) > 0 {
		if err := svc.repo.UpsertAttendanceBatch(valid); err != nil {
			return nil, errors.Wrap(err, "saving teacher attendance batch")
		}
	}
	return results, nil
}

// ReportRange resolves report parameters into a date range: either an
// explicit start/end pair or a month expanded to its first..last day.
func ReportRange(month, startDate, endDate string) (attendance.DateRange, error) {
	if month != "" {
		m, err := time.Parse(core.MonthFormat, month)
		if err != nil {
			return attendance.DateRange{}, core.NewValidationError(err, core.FieldError{Field: "month", Error: "invalid month"})
		}
		return attendance.MonthRange(m), nil
	}
	if startDate == "" || endDate == "" {
		return attendance.DateRange{}, core.NewValidationError(
			errors.New("please provide either month or start_date and end_date"))
	}
	start, err := time.Parse(core.DateFormat, startDate)
	if err != nil {
		return attendance.DateRange{}, core.NewValidationError(err, core.FieldError{Field: "start_date", Error: "invalid date"})
	}
	end, err := time.Parse(core.DateFormat, endDate)
	if err != nil {
		return attendance.DateRange{}, core.NewValidationError(err, core.FieldError{Field: "end_date", Error: "invalid date"})
	}
	r, err := attendance.NewDateRange(start, end)
	if err != nil {
		return attendance.DateRange{}, core.NewValidationError(err, core.FieldError{Field: "end_date", Error: err.Error()})
	}
	return r, nil
}

// Report builds the per-teacher attendance report over a date range,
// with present/absent/leave/not_marked breakdowns and a cross-teacher
// pooled percentage.
func (svc *Service) Report(r attendance.DateRange) (Report, error) {
	teachers, err := svc.repo.QueryActiveTeachers()
	if err != nil {
		return Report{}, errors.Wrap(err, "querying teachers")
	}
	records, err := svc.repo.QueryAttendanceRange(r)
	if err != nil {
		return Report{}, errors.Wrap(err, "querying teacher attendance range")
	}

	totalDays := r.TotalDays()
	rows := make([]ReportRow, 0, len(teachers))
	index := make(map[int]int, len(teachers)) // teacher id -> row index
	for _, t := range teachers {
		index[t.ID] = len(rows)
		rows = append(rows, ReportRow{
			TeacherID:    t.ID,
			Name:         t.Name,
			Subject:      t.Subject,
			Department:   t.Department,
			TotalDays:    totalDays,
			DailyRecords: make([]DailyRecord, 0),
		})
	}

	for _, rec := range records {
		i, ok := index[rec.TeacherID]
		if !ok {
			continue // inactive teacher
		}
		switch rec.Status {
		case StatusPresent:
			rows[i].Present++
		case StatusAbsent:
			rows[i].Absent++
		case StatusLeave:
			rows[i].Leave++
		}
		rows[i].DailyRecords = append(rows[i].DailyRecords, DailyRecord{
			Date:    rec.Date.Format(core.DateFormat),
			Status:  string(rec.Status),
			Remarks: rec.Remarks.String,
		})
	}

	report := Report{
		StartDate: r.Start.Format(core.DateFormat),
		EndDate:   r.End.Format(core.DateFormat),
		TotalDays: totalDays,
		Teachers:  rows,
	}
	var totalPresent, totalMarked int
	for i := range rows {
		marked := rows[i].Present + rows[i].Absent + rows[i].Leave
		rows[i].NotMarked = totalDays - marked
		rows[i].AttendancePercentage = attendance.Percent(rows[i].Present, marked, 2)

		report.OverallStats.TotalPresent += rows[i].Present
		report.OverallStats.TotalAbsent += rows[i].Absent
		report.OverallStats.TotalLeave += rows[i].Leave
		report.OverallStats.TotalNotMarked += rows[i].NotMarked
		totalPresent += rows[i].Present
		totalMarked += marked
	}
	report.OverallStats.TotalTeachers = len(rows)
	report.OverallStats.AttendancePercentage = attendance.Percent(totalPresent, totalMarked, 2)
	return report, nil
}
