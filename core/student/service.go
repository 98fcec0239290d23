package student

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
)

var (
	ErrNotFound     = errors.New("student not found")
	ErrRollNoExists = errors.New("roll number already exists")
)

type (
	Repository interface {
		CheckRollNoUniqueness(rollNo string) error
		// CreateStudent inserts the student and their attendance row for
		// `date` in one transaction.
		CreateStudent(s Student, date time.Time, status attendance.Status) (Student, error)
		// QueryActiveStudents returns active students with their status
		// for `date` (absent when unmarked), ordered by class DESC,
		// section ASC, roll_no ASC.
		QueryActiveStudents(date time.Time) ([]Student, error)
		GetStudentByID(id int) (Student, error)
		QueryClasses() ([]string, error)
		// QueryAbsentToday returns active students marked absent on
		// `date` or not marked at all.
		QueryAbsentToday(date time.Time) ([]Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(today time.Time) ([]Student, error) {
	return svc.repo.QueryActiveStudents(today)
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// Create registers a student and seeds their attendance for today.
func (svc *Service) Create(ns NewStudent, today time.Time) (Student, error) {
	rollNo := core.CleanString(ns.RollNo)
	if err := svc.repo.CheckRollNoUniqueness(rollNo); err != nil {
		if errors.Cause(err) == ErrRollNoExists {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "roll_no", Error: err.Error()})
		}
		return Student{}, err
	}

	status := attendance.StatusPresent
	if ns.AttendanceStatus != "" {
		parsed, ok := attendance.ParseStatus(ns.AttendanceStatus)
		if !ok {
			return Student{}, core.NewValidationError(nil, core.FieldError{Field: "attendance_status", Error: "invalid status"})
		}
		status = parsed
	}

	section := core.CleanString(ns.Section)
	if section == "" {
		section = "A"
	}
	s := Student{
		RollNo:        rollNo,
		Name:          core.CleanString(ns.Name),
		Class:         core.CleanString(ns.Class),
		Section:       section,
		Email:         core.CleanString(ns.Email, true /* lower */),
		Phone:         core.CleanString(ns.Phone),
		Address:       core.CleanString(ns.Address),
		AdmissionDate: today,
		Status:        "active",
	}
	if pe := core.CleanString(ns.ParentEmail, true /* lower */); pe != "" {
		s.ParentEmail = null.StringFrom(pe)
	}

	created, err := svc.repo.CreateStudent(s, today, status)
	if err != nil {
		return Student{}, errors.Wrap(err, "creating student")
	}
	created.AttendanceStatus = string(status)
	return created, nil
}

func (svc *Service) Classes() ([]string, error) {
	return svc.repo.QueryClasses()
}

func (svc *Service) AbsentToday(today time.Time) ([]Student, error) {
	return svc.repo.QueryAbsentToday(today)
}
