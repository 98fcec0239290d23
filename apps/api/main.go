package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

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
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := database.OpenAndMigrate(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	studentRepo := sqlxrepos.NewStudentRepository(db)
	attendanceRepo := sqlxrepos.NewAttendanceRepository(db)
	teacherRepo := sqlxrepos.NewTeacherRepository(db)
	feeRepo := sqlxrepos.NewFeeRepository(db)
	examRepo := sqlxrepos.NewExamRepository(db)
	alertRepo := sqlxrepos.NewAlertRepository(db)
	dashboardRepo := sqlxrepos.NewDashboardRepository(db)

	studentSvc := student.NewService(studentRepo)
	attendanceSvc := attendance.NewService(attendanceRepo)
	teacherSvc := teacher.NewService(teacherRepo)
	feeSvc := fee.NewService(feeRepo)
	examSvc := exam.NewService(examRepo)
	alertSvc := alert.NewService(alertRepo, conf.Attendance.AlertWindow)
	notifier := alert.NewNotifier(alertRepo, mailSvc, logger)
	dashboardSvc := dashboard.NewService(dashboardRepo, conf.Attendance.UpcomingWindow)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			StudentSvc:    studentSvc,
			TeacherSvc:    teacherSvc,
			AttendanceSvc: attendanceSvc,
			FeeSvc:        feeSvc,
			ExamSvc:       examSvc,
			AlertSvc:      alertSvc,
			Notifier:      notifier,
			DashboardSvc:  dashboardSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
