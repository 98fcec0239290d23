package echoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
)

type attendanceApi struct {
	svc  *attendance.Service
	conf *core.Config
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, conf *core.Config) {
	api := attendanceApi{svc: svc, conf: conf}

	g.GET("/teacher/students", api.roster)
	g.POST("/teacher/attendance/save", api.save)
	g.GET("/teacher/attendance/daily", api.daily)
	g.GET("/teacher/attendance/monthly", api.monthly)
	g.GET("/teacher/attendance/low", api.low)
}

// roster serves the students available for attendance marking; a class
// must be selected first.
func (api *attendanceApi) roster(ctx echo.Context) error {
	class := ctx.QueryParam("class")
	if class == "" {
		return core.NewValidationError(errors.New("please select a class"))
	}
	section := ctx.QueryParam("section")

	students, err := api.svc.Roster(class, section)
	if err != nil {
		return errors.Wrap(err, "querying roster")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "students": students})
}

func (api *attendanceApi) save(ctx echo.Context) error {
	var data struct {
		Attendance []attendance.SaveRecord `json:"attendance"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding attendance records")
	}

	results, err := api.svc.SaveBatch(data.Attendance)
	if err != nil {
		return errors.Wrap(err, "saving attendance")
	}

	var saved int
	for _, res := range results {
		if res.Saved {
			saved++
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Attendance saved successfully for %d students", saved),
		"results": results,
	})
}

func (api *attendanceApi) daily(ctx echo.Context) error {
	date, err := time.Parse(core.DateFormat, ctx.QueryParam("date"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date"})
	}

	report, err := api.svc.Daily(date, ctx.QueryParam("class"), ctx.QueryParam("section"))
	if err != nil {
		return errors.Wrap(err, "building daily report")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats":   report.Stats,
		"details": report.Details,
	})
}

func (api *attendanceApi) monthly(ctx echo.Context) error {
	month, err := time.Parse(core.MonthFormat, ctx.QueryParam("month"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "month", Error: "invalid month"})
	}

	report, err := api.svc.Monthly(month, ctx.QueryParam("class"), ctx.QueryParam("section"))
	if err != nil {
		return errors.Wrap(err, "building monthly report")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":            true,
		"overall_percentage": report.OverallPercentage,
		"students":           report.Students,
	})
}

func (api *attendanceApi) low(ctx echo.Context) error {
	month, err := time.Parse(core.MonthFormat, ctx.QueryParam("month"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "month", Error: "invalid month"})
	}

	threshold := api.conf.Attendance.LowThreshold
	if raw := ctx.QueryParam("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "threshold", Error: "invalid threshold"})
		}
	}

	students, err := api.svc.Low(month, threshold, ctx.QueryParam("class"), ctx.QueryParam("section"))
	if err != nil {
		return errors.Wrap(err, "building low attendance report")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "students": students})
}
