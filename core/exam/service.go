package exam

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("exam not found")

type (
	Repository interface {
		// QueryAllExams returns exams ordered by date DESC.
		QueryAllExams() ([]Exam, error)
		GetExamByID(id int) (Exam, error)
		CreateExam(e Exam) (Exam, error)
		UpdateExam(e Exam) error
		DeleteExam(id int) error
		// QueryUpcoming returns upcoming exams with a date within
		// [today, today+days], ascending, capped at limit.
		QueryUpcoming(today time.Time, days, limit int) ([]Exam, error)
		CountUpcoming(today time.Time, days int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query() ([]Exam, error) {
	return svc.repo.QueryAllExams()
}

func (svc *Service) Create(ne NewExam) (Exam, error) {
	date, err := time.Parse(core.DateFormat, ne.Date)
	if err != nil {
		return Exam{}, core.NewValidationError(err, core.FieldError{Field: "exam_date", Error: "invalid date"})
	}
	status := ne.Status
	if status == "" {
		status = StatusUpcoming
	}
	e := Exam{
		Name:     core.CleanString(ne.Name),
		Class:    core.CleanString(ne.Class),
		Subject:  core.CleanString(ne.Subject),
		Date:     date,
		MaxMarks: ne.MaxMarks,
		Status:   status,
	}
	return svc.repo.CreateExam(e)
}

// Update merges the provided fields into the stored exam.
func (svc *Service) Update(id int, ue UpdateExam) (Exam, error) {
	existing, err := svc.repo.GetExamByID(id)
	if err != nil {
		return Exam{}, err
	}

	if ue.Name != nil {
		existing.Name = core.CleanString(*ue.Name)
	}
	if ue.Class != nil {
		existing.Class = core.CleanString(*ue.Class)
	}
	if ue.Subject != nil {
		existing.Subject = core.CleanString(*ue.Subject)
	}
	if ue.Date != nil {
		date, err := time.Parse(core.DateFormat, *ue.Date)
		if err != nil {
			return Exam{}, core.NewValidationError(err, core.FieldError{Field: "exam_date", Error: "invalid date"})
		}
		existing.Date = date
	}
	if ue.MaxMarks != nil {
		existing.MaxMarks = *ue.MaxMarks
	}
	if ue.Status != nil {
		existing.Status = *ue.Status
	}

	if err := svc.repo.UpdateExam(existing); err != nil {
		return Exam{}, errors.Wrap(err, "updating exam")
	}
	return existing, nil
}

func (svc *Service) Delete(id int) error {
	if _, err := svc.repo.GetExamByID(id); err != nil {
		return err
	}
	return svc.repo.DeleteExam(id)
}

func (svc *Service) Upcoming(today time.Time, days, limit int) ([]Exam, error) {
	return svc.repo.QueryUpcoming(today, days, limit)
}

func (svc *Service) CountUpcoming(today time.Time, days int) (int, error) {
	return svc.repo.CountUpcoming(today, days)
}
