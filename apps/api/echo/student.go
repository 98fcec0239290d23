package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	g.GET("/students", api.query)
	g.POST("/students", api.create)
	g.GET("/classes", api.classes)
	g.GET("/absent", api.absentToday)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.Query(time.Now())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"students": students, "total": len(students)})
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	created, err := api.svc.Create(data, time.Now())
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Student added successfully",
		"student": created,
	})
}

func (api *studentApi) classes(ctx echo.Context) error {
	classes, err := api.svc.Classes()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"classes": classes, "total": len(classes)})
}

func (api *studentApi) absentToday(ctx echo.Context) error {
	today := time.Now()
	students, err := api.svc.AbsentToday(today)
	if err != nil {
		return errors.Wrap(err, "querying absent students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"students": students,
		"total":    len(students),
		"date":     today.Format(core.DateFormat),
	})
}
