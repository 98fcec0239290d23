package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/exam"
)

type examApi struct {
	svc      *exam.Service
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, svc *exam.Service, validate *validator.Validate) {
	api := examApi{svc: svc, validate: validate}

	g.GET("/exams", api.query)
	g.POST("/exams", api.create)
	g.PUT("/exams/:id", api.update)
	g.DELETE("/exams/:id", api.destroy)
}

// examItem exposes the exam date in wire format.
type examItem struct {
	exam.Exam
	ExamDate string `json:"exam_date"`
}

func newExamItem(e exam.Exam) examItem {
	return examItem{Exam: e, ExamDate: e.Date.Format(core.DateFormat)}
}

func (api *examApi) query(ctx echo.Context) error {
	exams, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}

	list := make([]examItem, 0, len(exams))
	for _, e := range exams {
		list = append(list, newExamItem(e))
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "exams": list, "total": len(list)})
}

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	created, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Exam added successfully",
		"exam_id": created.ID,
	})
}

func (api *examApi) update(ctx echo.Context) error {
	id, err := examID(ctx)
	if err != nil {
		return err
	}

	var data exam.UpdateExam
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	updated, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Exam updated successfully",
		"exam":    newExamItem(updated),
	})
}

func (api *examApi) destroy(ctx echo.Context) error {
	id, err := examID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Exam deleted successfully",
	})
}

func examID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: "id", Error: "invalid exam id"})
	}
	return id, nil
}
