package echoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/fee"
)

type feeApi struct {
	svc      *fee.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, svc *fee.Service, validate *validator.Validate) {
	api := feeApi{svc: svc, validate: validate}

	g.GET("/fees", api.query)
	g.POST("/fees/:id/payment", api.recordPayment)
}

// feeItem exposes the due date in wire format.
type feeItem struct {
	fee.Fee
	DueDate string `json:"due_date"`
}

func (api *feeApi) query(ctx echo.Context) error {
	fees, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying fees")
	}

	list := make([]feeItem, 0, len(fees))
	for _, f := range fees {
		list = append(list, feeItem{Fee: f, DueDate: f.DueDate.Format(core.DateFormat)})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "fees": list, "total": len(list)})
}

func (api *feeApi) recordPayment(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "id", Error: "invalid fee id"})
	}

	var data fee.Payment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Payment")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	result, err := api.svc.RecordPayment(id, data.Amount, time.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":            true,
		"message":            fmt.Sprintf("Payment of $%g recorded successfully", data.Amount),
		"new_paid_amount":    result.PaidAmount,
		"new_pending_amount": result.PendingAmount,
		"new_status":         result.Status,
	})
}
