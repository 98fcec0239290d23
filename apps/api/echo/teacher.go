package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/teacher"
)

type teacherApi struct {
	svc      *teacher.Service
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, svc *teacher.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	g.GET("/teachers", api.query)
	g.POST("/teachers", api.create)
	g.GET("/departments", api.departments)
	g.GET("/teacher-attendance", api.attendanceByDate)
	g.POST("/teacher-attendance", api.saveAttendance)
	g.GET("/teacher-attendance-report", api.attendanceReport)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	now := time.Now()
	list := make([]echo.Map, 0, len(teachers))
	for _, t := range teachers {
		list = append(list, echo.Map{
			"id":               t.ID,
			"teacher_id":       t.ID,
			"name":             t.Name,
			"subject":          t.Subject,
			"department":       t.Department,
			"joining_date":     t.JoiningDate.Format(core.DateFormat),
			"years_experience": t.YearsExperience(now),
			"status":           t.Status,
		})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "teachers": list, "total": len(list)})
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	created, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"message":    "Teacher added successfully",
		"teacher_id": created.ID,
	})
}

func (api *teacherApi) departments(ctx echo.Context) error {
	departments, err := api.svc.Departments()
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"departments": departments, "total": len(departments)})
}

func (api *teacherApi) attendanceByDate(ctx echo.Context) error {
	date := time.Now()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(core.DateFormat, raw)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date"})
		}
		date = parsed
	}

	marked, err := api.svc.AttendanceByDate(date)
	if err != nil {
		return errors.Wrap(err, "querying teacher attendance")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"date":       date.Format(core.DateFormat),
		"attendance": marked,
	})
}

func (api *teacherApi) saveAttendance(ctx echo.Context) error {
	var data struct {
		Records []teacher.SaveRecord `json:"records"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding attendance records")
	}

	results, err := api.svc.SaveAttendance(data.Records)
	if err != nil {
		return errors.Wrap(err, "saving teacher attendance")
	}

	var saved int
	for _, res := range results {
		if res.Saved {
			saved++
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("%d attendance records saved successfully", saved),
		"results": results,
	})
}

func (api *teacherApi) attendanceReport(ctx echo.Context) error {
	r, err := teacher.ReportRange(
		ctx.QueryParam("month"),
		ctx.QueryParam("start_date"),
		ctx.QueryParam("end_date"),
	)
	if err != nil {
		return err
	}

	report, err := api.svc.Report(r)
	if err != nil {
		return errors.Wrap(err, "building teacher attendance report")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"start_date":    report.StartDate,
		"end_date":      report.EndDate,
		"total_days":    report.TotalDays,
		"overall_stats": report.OverallStats,
		"teachers":      report.Teachers,
	})
}
