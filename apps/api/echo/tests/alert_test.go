package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	emailsvc "github.com/trezcool/darasa/services/email"
)

func Test_alertApi_notifyAbsences(t *testing.T) {
	srv, store := setup(t)
	today := time.Now()

	present := store.SeedStudent(student.Student{RollNo: "R001", Name: "Aarav Gupta", Class: "10", Section: "A", Email: "a@test.cd", ParentEmail: null.StringFrom("parent1@test.cd")})
	absent := store.SeedStudent(student.Student{RollNo: "R002", Name: "Diya Patel", Class: "10", Section: "A", Email: "d@test.cd", ParentEmail: null.StringFrom("parent2@test.cd")})
	store.SeedStudent(student.Student{RollNo: "R003", Name: "Ishaan Roy", Class: "10", Section: "A", Email: "i@test.cd"}) // absent, no parent email
	store.SeedAttendance(attendance.Record{StudentID: present.ID, Date: today, Status: attendance.StatusPresent})
	store.SeedAttendance(attendance.Record{StudentID: absent.ID, Date: today, Status: attendance.StatusAbsent})

	rec, body := do(t, srv, http.MethodPost, "/api/notifications/absence", marchallObj(t, map[string]interface{}{}))
	checkCode(t, rec, http.StatusOK)

	if body["sent"] != float64(1) || body["failed"] != float64(0) || body["skipped"] != float64(1) {
		t.Errorf("summary = %+v, want sent=1 failed=0 skipped=1", body)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent %d emails, want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.Subject != "Absence Notification" || msg.To[0].Address != "parent2@test.cd" {
		t.Errorf("email = %q to %v", msg.Subject, msg.To)
	}
	if msg.TextContent == "" {
		t.Error("email has no rendered content")
	}

	// every attempt lands in the audit log, the skipped one as failed
	rec, body = do(t, srv, http.MethodGet, "/api/teacher/alert-logs")
	checkCode(t, rec, http.StatusOK)
	logs := list(t, body, "logs")
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	// newest first: the skipped student was processed last
	first := item(t, logs, 0)
	if first["student_name"] != "Ishaan Roy" || first["status"] != "failed" || first["parent_email"] != "" {
		t.Errorf("logs[0] = %+v", first)
	}
	second := item(t, logs, 1)
	if second["student_name"] != "Diya Patel" || second["status"] != "sent" {
		t.Errorf("logs[1] = %+v", second)
	}
}

func Test_alertApi_notifyLowAttendance(t *testing.T) {
	srv, store := setup(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	low := store.SeedStudent(student.Student{RollNo: "R001", Name: "Aarav Gupta", Class: "10", Section: "A", Email: "a@test.cd", ParentEmail: null.StringFrom("parent1@test.cd")})
	fine := store.SeedStudent(student.Student{RollNo: "R002", Name: "Diya Patel", Class: "10", Section: "A", Email: "d@test.cd", ParentEmail: null.StringFrom("parent2@test.cd")})
	// 70% and 90% over 10 marked days
	for i := 0; i < 10; i++ {
		st1, st2 := attendance.StatusPresent, attendance.StatusPresent
		if i >= 7 {
			st1 = attendance.StatusAbsent
		}
		if i >= 9 {
			st2 = attendance.StatusAbsent
		}
		store.SeedAttendance(attendance.Record{StudentID: low.ID, Date: start.AddDate(0, 0, i), Status: st1})
		store.SeedAttendance(attendance.Record{StudentID: fine.ID, Date: start.AddDate(0, 0, i), Status: st2})
	}

	rec, body := do(t, srv, http.MethodPost, "/api/notifications/low-attendance", marchallObj(t, map[string]interface{}{}))
	checkCode(t, rec, http.StatusBadRequest)
	if got := errField(t, body, "month"); got != "invalid month" {
		t.Errorf("error[month] = %q", got)
	}

	rec, body = do(t, srv, http.MethodPost, "/api/notifications/low-attendance", marchallObj(t, map[string]interface{}{"month": "2025-01"}))
	checkCode(t, rec, http.StatusOK)
	if body["sent"] != float64(1) || body["skipped"] != float64(0) {
		t.Errorf("summary = %+v, want sent=1 skipped=0", body)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent %d emails, want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.Subject != "Low Attendance Alert - Aarav Gupta" || msg.To[0].Address != "parent1@test.cd" {
		t.Errorf("email = %q to %v", msg.Subject, msg.To)
	}

	// a stricter threshold flags the 90% student too
	emailsvc.ClearSentMessages()
	rec, body = do(t, srv, http.MethodPost, "/api/notifications/low-attendance",
		marchallObj(t, map[string]interface{}{"month": "2025-01", "threshold": 95}))
	checkCode(t, rec, http.StatusOK)
	if body["sent"] != float64(2) {
		t.Errorf("summary = %+v, want sent=2", body)
	}
}
