package exam

import (
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
)

type fakeRepo struct {
	exams   []Exam
	updated *Exam
	deleted int
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) QueryAllExams() ([]Exam, error) { return r.exams, nil }
func (r *fakeRepo) GetExamByID(id int) (Exam, error) {
	for _, e := range r.exams {
		if e.ID == id {
			return e, nil
		}
	}
	return Exam{}, ErrNotFound
}
func (r *fakeRepo) CreateExam(e Exam) (Exam, error) {
	e.ID = len(r.exams) + 1
	r.exams = append(r.exams, e)
	return e, nil
}
func (r *fakeRepo) UpdateExam(e Exam) error {
	r.updated = &e
	return nil
}
func (r *fakeRepo) DeleteExam(id int) error {
	r.deleted = id
	return nil
}
func (r *fakeRepo) QueryUpcoming(today time.Time, days, limit int) ([]Exam, error) { return nil, nil }
func (r *fakeRepo) CountUpcoming(today time.Time, days int) (int, error)           { return 0, nil }

func sPtr(s string) *string { return &s }
func nPtr(n int) *int       { return &n }

func TestService_Create(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if _, err := svc.Create(NewExam{Name: "Unit Test 1", Class: "10", Subject: "Maths", Date: "tomorrow", MaxMarks: 50}); err == nil {
		t.Errorf("Create() expected error for invalid date, got nil")
	} else if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Create() error = %T, want *core.ValidationError", err)
	}

	created, err := svc.Create(NewExam{Name: " Unit Test 1 ", Class: "10", Subject: "Maths", Date: "2025-02-10", MaxMarks: 50})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 || created.Name != "Unit Test 1" || created.Status != StatusUpcoming {
		t.Errorf("Create() = %+v, want upcoming exam with id and trimmed name", created)
	}
	if !created.Date.Equal(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Create() date = %v, want 2025-02-10", created.Date)
	}
}

func TestService_Update(t *testing.T) {
	stored := Exam{ID: 1, Name: "Unit Test 1", Class: "10", Subject: "Maths",
		Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), MaxMarks: 50, Status: StatusUpcoming}

	tests := []struct {
		name    string
		id      int
		ue      UpdateExam
		want    Exam
		wantErr error
	}{
		{name: "unknown exam", id: 9, wantErr: ErrNotFound},
		{name: "no fields keeps everything", id: 1, want: stored},
		{
			name: "partial update",
			id:   1,
			ue:   UpdateExam{Date: sPtr("2025-02-15"), MaxMarks: nPtr(100)},
			want: Exam{ID: 1, Name: "Unit Test 1", Class: "10", Subject: "Maths",
				Date: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), MaxMarks: 100, Status: StatusUpcoming},
		},
		{
			name: "status change",
			id:   1,
			ue:   UpdateExam{Status: sPtr(StatusCompleted)},
			want: Exam{ID: 1, Name: "Unit Test 1", Class: "10", Subject: "Maths",
				Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), MaxMarks: 50, Status: StatusCompleted},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{exams: []Exam{stored}}
			svc := NewService(repo)

			got, err := svc.Update(tt.id, tt.ue)
			if err != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("Update() = %+v, want %+v", got, tt.want)
			}
			if repo.updated == nil || *repo.updated != tt.want {
				t.Errorf("persisted exam = %+v, want %+v", repo.updated, tt.want)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	repo := &fakeRepo{exams: []Exam{{ID: 1, Name: "Unit Test 1"}}}
	svc := NewService(repo)

	if err := svc.Delete(9); err != ErrNotFound {
		t.Errorf("Delete(9) error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(1); err != nil {
		t.Errorf("Delete(1) error = %v", err)
	}
	if repo.deleted != 1 {
		t.Errorf("deleted id = %d, want 1", repo.deleted)
	}
}
