package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/alert"
	"github.com/trezcool/darasa/core/dashboard"
)

const attendanceSeriesDays = 7

type dashboardApi struct {
	svc      *dashboard.Service
	alertSvc *alert.Service
}

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service, alertSvc *alert.Service) {
	api := dashboardApi{svc: svc, alertSvc: alertSvc}

	g.GET("/stats", api.stats)
	g.GET("/attendance-data", api.attendanceData)
	g.GET("/alerts", api.alerts)
	g.GET("/teacher/stats", api.teacherStats)
	g.GET("/teacher/classes", api.teacherClasses)
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(time.Now())
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

// attendanceData serves the last 7 recorded days as chart labels/values.
func (api *dashboardApi) attendanceData(ctx echo.Context) error {
	points, err := api.svc.Series(attendanceSeriesDays)
	if err != nil {
		return errors.Wrap(err, "querying attendance series")
	}

	labels := make([]string, 0, len(points))
	data := make([]float64, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Date.Format("Jan 02"))
		data = append(data, p.Percentage)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"labels": labels, "data": data})
}

func (api *dashboardApi) alerts(ctx echo.Context) error {
	alerts, err := api.alertSvc.Alerts(time.Now())
	if err != nil {
		return errors.Wrap(err, "evaluating alerts")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"alerts": alerts, "total": len(alerts)})
}

func (api *dashboardApi) teacherStats(ctx echo.Context) error {
	stats, err := api.svc.TeacherStats(time.Now())
	if err != nil {
		return errors.Wrap(err, "computing teacher stats")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":               true,
		"total_classes":         stats.TotalClasses,
		"total_students":        stats.TotalStudents,
		"attendance_percentage": stats.AttendancePercentage,
		"pending_assignments":   stats.PendingAssignments,
		"new_messages":          stats.NewMessages,
	})
}

func (api *dashboardApi) teacherClasses(ctx echo.Context) error {
	classes, err := api.svc.Classes(time.Now())
	if err != nil {
		return errors.Wrap(err, "querying class overviews")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "classes": classes})
}
