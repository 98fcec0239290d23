package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

func Test_studentApi_query(t *testing.T) {
	srv, store := setup(t)
	today := time.Now()

	store.SeedStudent(student.Student{RollNo: "R002", Name: "Diya Patel", Class: "9", Section: "B", Email: "diya@test.cd"})
	aarav := store.SeedStudent(student.Student{RollNo: "R001", Name: "Aarav Gupta", Class: "10", Section: "A", Email: "aarav@test.cd"})
	store.SeedStudent(student.Student{RollNo: "R009", Name: "Gone Kid", Class: "10", Section: "A", Email: "gone@test.cd", Status: "inactive"})
	store.SeedAttendance(attendance.Record{StudentID: aarav.ID, Date: today, Status: attendance.StatusPresent})

	rec, body := do(t, srv, http.MethodGet, "/api/students")
	checkCode(t, rec, http.StatusOK)

	students := list(t, body, "students")
	if body["total"] != float64(2) || len(students) != 2 {
		t.Fatalf("GET /api/students total = %v (%d rows), want 2", body["total"], len(students))
	}
	// classes sort descending as text, "9" before "10"
	first, second := item(t, students, 0), item(t, students, 1)
	if first["roll_no"] != "R002" || second["roll_no"] != "R001" {
		t.Errorf("order = %v, %v; want R002, R001", first["roll_no"], second["roll_no"])
	}
	if second["attendance_status"] != "present" {
		t.Errorf("marked student status = %v, want present", second["attendance_status"])
	}
	// unmarked students read as absent
	if first["attendance_status"] != "absent" {
		t.Errorf("unmarked student status = %v, want absent", first["attendance_status"])
	}
}

func Test_studentApi_create(t *testing.T) {
	srv, store := setup(t)
	store.SeedStudent(student.Student{RollNo: "R001", Name: "Aarav Gupta", Class: "10", Section: "A", Email: "aarav@test.cd"})

	tests := []struct {
		name      string
		body      interface{}
		wantCode  int
		wantField string
		wantError string
	}{
		{
			name: "created",
			body: student.NewStudent{
				Name: "Diya Patel", RollNo: "R002", Class: "9", Section: "B",
				Email: "diya@test.cd", ParentEmail: "parent2@test.cd",
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing required fields",
			body:      student.NewStudent{Name: "No Mail"},
			wantCode:  http.StatusBadRequest,
			wantField: "roll_no",
			wantError: "this field is required",
		},
		{
			name:      "bad email",
			body:      student.NewStudent{Name: "Bad Mail", RollNo: "R003", Class: "9", Email: "nope"},
			wantCode:  http.StatusBadRequest,
			wantField: "email",
			wantError: "email must be a valid email address",
		},
		{
			name: "duplicate roll no",
			body: student.NewStudent{
				Name: "Copy Cat", RollNo: "R001", Class: "10", Email: "copy@test.cd",
			},
			wantCode:  http.StatusBadRequest,
			wantField: "roll_no",
			wantError: "roll number already exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, srv, http.MethodPost, "/api/students", marchallObj(t, tt.body))
			checkCode(t, rec, tt.wantCode)

			if tt.wantField != "" {
				if got := errField(t, body, tt.wantField); got != tt.wantError {
					t.Errorf("error[%s] = %q, want %q", tt.wantField, got, tt.wantError)
				}
				return
			}
			if body["success"] != true || body["message"] != "Student added successfully" {
				t.Errorf("body = %+v", body)
			}
			created, ok := body["student"].(map[string]interface{})
			if !ok {
				t.Fatalf("student = %+v, want object", body["student"])
			}
			if created["id"] == float64(0) || created["roll_no"] != "R002" {
				t.Errorf("created student = %+v", created)
			}
			// new students are marked present for today by default
			if created["attendance_status"] != "present" {
				t.Errorf("created attendance_status = %v, want present", created["attendance_status"])
			}
		})
	}
}

func Test_studentApi_classes(t *testing.T) {
	srv, store := setup(t)
	store.SeedStudent(student.Student{RollNo: "R001", Name: "A", Class: "9", Email: "a@test.cd"})
	store.SeedStudent(student.Student{RollNo: "R002", Name: "B", Class: "10", Email: "b@test.cd"})
	store.SeedStudent(student.Student{RollNo: "R003", Name: "C", Class: "9", Email: "c@test.cd"})

	rec, body := do(t, srv, http.MethodGet, "/api/classes")
	checkCode(t, rec, http.StatusOK)

	classes := list(t, body, "classes")
	if body["total"] != float64(2) || len(classes) != 2 {
		t.Fatalf("GET /api/classes = %+v, want 2 classes", body)
	}
	if classes[0] != "9" || classes[1] != "10" {
		t.Errorf("classes = %v, want [9 10]", classes)
	}
}

func Test_studentApi_absentToday(t *testing.T) {
	srv, store := setup(t)
	today := time.Now()

	present := store.SeedStudent(student.Student{RollNo: "R001", Name: "Aarav Gupta", Class: "10", Email: "a@test.cd"})
	absent := store.SeedStudent(student.Student{RollNo: "R002", Name: "Diya Patel", Class: "10", Email: "d@test.cd", ParentEmail: null.StringFrom("parent2@test.cd")})
	store.SeedStudent(student.Student{RollNo: "R003", Name: "Ishaan Roy", Class: "10", Email: "i@test.cd"}) // never marked
	store.SeedAttendance(attendance.Record{StudentID: present.ID, Date: today, Status: attendance.StatusPresent})
	store.SeedAttendance(attendance.Record{StudentID: absent.ID, Date: today, Status: attendance.StatusAbsent})

	rec, body := do(t, srv, http.MethodGet, "/api/absent")
	checkCode(t, rec, http.StatusOK)

	students := list(t, body, "students")
	if body["total"] != float64(2) || len(students) != 2 {
		t.Fatalf("GET /api/absent = %+v, want 2 students", body)
	}
	if body["date"] != today.Format("2006-01-02") {
		t.Errorf("date = %v, want today", body["date"])
	}
	for i := range students {
		if got := item(t, students, i)["attendance_status"]; got != "absent" {
			t.Errorf("students[%d].attendance_status = %v, want absent", i, got)
		}
	}
}
