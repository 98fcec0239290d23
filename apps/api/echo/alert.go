package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

const alertLogLimit = 50

type alertApi struct {
	notifier      *alert.Notifier
	attendanceSvc *attendance.Service
	studentSvc    *student.Service
	conf          *core.Config
}

func registerAlertAPI(
	g *echo.Group,
	notifier *alert.Notifier,
	attendanceSvc *attendance.Service,
	studentSvc *student.Service,
	conf *core.Config,
) {
	api := alertApi{
		notifier:      notifier,
		attendanceSvc: attendanceSvc,
		studentSvc:    studentSvc,
		conf:          conf,
	}

	g.GET("/teacher/alert-logs", api.logs)
	g.POST("/notifications/absence", api.notifyAbsences)
	g.POST("/notifications/low-attendance", api.notifyLowAttendance)
}

func (api *alertApi) logs(ctx echo.Context) error {
	logs, err := api.notifier.RecentLogs(alertLogLimit)
	if err != nil {
		return errors.Wrap(err, "querying alert logs")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "logs": logs})
}

// notifyAbsences emails the parents of students absent on the given
// date (default today) and reports per-batch outcomes.
func (api *alertApi) notifyAbsences(ctx echo.Context) error {
	var data struct {
		Date string `json:"date"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding notification request")
	}

	date := time.Now()
	if data.Date != "" {
		parsed, err := time.Parse(core.DateFormat, data.Date)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date"})
		}
		date = parsed
	}

	absent, err := api.studentSvc.AbsentToday(date)
	if err != nil {
		return errors.Wrap(err, "querying absent students")
	}
	summary, err := api.notifier.NotifyAbsences(absent, date)
	if err != nil {
		return errors.Wrap(err, "dispatching absence notifications")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"sent":    summary.Sent,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	})
}

// notifyLowAttendance emails the parents of students below the
// attendance threshold for a month.
func (api *alertApi) notifyLowAttendance(ctx echo.Context) error {
	var data struct {
		Month     string   `json:"month" validate:"required,yearmonth"`
		Threshold *float64 `json:"threshold"`
		Class     string   `json:"class"`
		Section   string   `json:"section"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding notification request")
	}

	month, err := time.Parse(core.MonthFormat, data.Month)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "month", Error: "invalid month"})
	}
	threshold := api.conf.Attendance.LowThreshold
	if data.Threshold != nil {
		threshold = *data.Threshold
	}

	low, err := api.attendanceSvc.Low(month, threshold, data.Class, data.Section)
	if err != nil {
		return errors.Wrap(err, "building low attendance report")
	}
	summary, err := api.notifier.NotifyLowAttendance(low, month)
	if err != nil {
		return errors.Wrap(err, "dispatching low attendance notifications")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"sent":    summary.Sent,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	})
}
