package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/darasa/core/exam"
)

func Test_examApi_create(t *testing.T) {
	srv, _ := setup(t)

	rec, body := do(t, srv, http.MethodPost, "/api/exams", marchallObj(t, exam.NewExam{
		Name: "Unit Test 1", Class: "10", Subject: "Mathematics", Date: "2025-02-10", MaxMarks: 50,
	}))
	checkCode(t, rec, http.StatusCreated)
	if body["success"] != true || body["message"] != "Exam added successfully" || body["exam_id"] != float64(1) {
		t.Errorf("body = %+v", body)
	}

	rec, body = do(t, srv, http.MethodPost, "/api/exams", marchallObj(t, exam.NewExam{
		Name: "Unit Test 2", Class: "10", Subject: "Mathematics", Date: "10/02/2025", MaxMarks: 50,
	}))
	checkCode(t, rec, http.StatusBadRequest)
	if got := errField(t, body, "exam_date"); got != "must be a valid date in YYYY-MM-DD format" {
		t.Errorf("error[exam_date] = %q", got)
	}

	rec, body = do(t, srv, http.MethodGet, "/api/exams")
	checkCode(t, rec, http.StatusOK)
	exams := list(t, body, "exams")
	if body["total"] != float64(1) || len(exams) != 1 {
		t.Fatalf("GET /api/exams = %+v, want 1 exam", body)
	}
	created := item(t, exams, 0)
	if created["exam_date"] != "2025-02-10" || created["status"] != exam.StatusUpcoming {
		t.Errorf("exams[0] = %+v", created)
	}
}

func Test_examApi_update(t *testing.T) {
	srv, store := setup(t)
	seeded := store.SeedExam(exam.Exam{
		Name: "Unit Test 1", Class: "10", Subject: "Mathematics",
		Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), MaxMarks: 50, Status: exam.StatusUpcoming,
	})

	rec, body := do(t, srv, http.MethodPut, "/api/exams/1", marchallObj(t, map[string]interface{}{
		"exam_date": "2025-02-15",
		"max_marks": 100,
	}))
	checkCode(t, rec, http.StatusOK)
	if body["message"] != "Exam updated successfully" {
		t.Errorf("message = %v", body["message"])
	}
	updated, ok := body["exam"].(map[string]interface{})
	if !ok {
		t.Fatalf("exam = %+v, want object", body["exam"])
	}
	// untouched fields keep their stored values
	if updated["exam_date"] != "2025-02-15" || updated["max_marks"] != float64(100) || updated["exam_name"] != seeded.Name {
		t.Errorf("exam = %+v", updated)
	}

	rec, body = do(t, srv, http.MethodPut, "/api/exams/99", marchallObj(t, map[string]interface{}{"max_marks": 100}))
	checkCode(t, rec, http.StatusNotFound)
	if got := errMessage(t, body); got != "exam not found" {
		t.Errorf("error = %q", got)
	}
}

func Test_examApi_destroy(t *testing.T) {
	srv, store := setup(t)
	store.SeedExam(exam.Exam{Name: "Unit Test 1", Class: "10", Subject: "Mathematics",
		Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), MaxMarks: 50, Status: exam.StatusUpcoming})

	rec, body := do(t, srv, http.MethodDelete, "/api/exams/99")
	checkCode(t, rec, http.StatusNotFound)

	rec, body = do(t, srv, http.MethodDelete, "/api/exams/1")
	checkCode(t, rec, http.StatusOK)
	if body["message"] != "Exam deleted successfully" {
		t.Errorf("body = %+v", body)
	}

	rec, body = do(t, srv, http.MethodGet, "/api/exams")
	checkCode(t, rec, http.StatusOK)
	if body["total"] != float64(0) {
		t.Errorf("total after delete = %v, want 0", body["total"])
	}
}
