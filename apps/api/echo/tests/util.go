package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/exam"
	"github.com/trezcool/darasa/core/fee"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
	emailsvc "github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/storage/database/inmem"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}

// setup wires a fresh in-memory store behind a full server. The store
// is returned for seeding.
func setup(t *testing.T) (echoapi.Server, *inmem.Store) {
	t.Helper()
	emailsvc.ClearSentMessages()

	store := inmem.NewStore()

	conf := &core.Config{Env: "TEST", TestMode: true, AppName: "Darasa"}
	conf.DefaultFromEmail = mail.Address{Name: conf.AppName, Address: "noreply@test.cd"}
	conf.Attendance.LowThreshold = 75
	conf.Attendance.AlertWindow = 3
	conf.Attendance.UpcomingWindow = 7

	logger := testLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	validate, translator := core.NewValidator()

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,

		StudentSvc:    student.NewService(store),
		TeacherSvc:    teacher.NewService(store),
		AttendanceSvc: attendance.NewService(store),
		FeeSvc:        fee.NewService(store),
		ExamSvc:       exam.NewService(store),
		AlertSvc:      alert.NewService(store, conf.Attendance.AlertWindow),
		Notifier:      alert.NewNotifier(store, mailSvc, logger),
		DashboardSvc:  dashboard.NewService(store, conf.Attendance.UpcomingWindow),

		Validate:   validate,
		Translator: translator,
	})
	return server, store
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do performs a request against the server and decodes the JSON body.
func do(t *testing.T, srv http.Handler, method, path string, data ...[]byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req, rec := newRequest(method, path, data...)
	srv.ServeHTTP(rec, req)

	body := make(map[string]interface{})
	if rec.Body.Len() > 0 {
		err := json.Unmarshal(rec.Body.Bytes(), &body)
		require.NoErrorf(t, err, "%s %s: decoding body %q", method, path, rec.Body.String())
	}
	return rec, body
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("response code = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

// errField digs the field error map out of an error envelope.
func errField(t *testing.T, body map[string]interface{}, field string) string {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected an error envelope, got %+v", body)
	}
	fields, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("error is not a field map: %+v", body["error"])
	}
	msg, _ := fields[field].(string)
	return msg
}

// errMessage returns the plain error string of an error envelope.
func errMessage(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	msg, ok := body["error"].(string)
	if !ok {
		t.Fatalf("error is not a string: %+v", body["error"])
	}
	return msg
}

func list(t *testing.T, body map[string]interface{}, key string) []interface{} {
	t.Helper()
	items, ok := body[key].([]interface{})
	if !ok {
		t.Fatalf("%q is not a list: %+v", key, body[key])
	}
	return items
}

func item(t *testing.T, items []interface{}, i int) map[string]interface{} {
	t.Helper()
	obj, ok := items[i].(map[string]interface{})
	if !ok {
		t.Fatalf("item %d is not an object: %+v", i, items[i])
	}
	return obj
}
