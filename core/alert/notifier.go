package alert

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

type (
	LogRepository interface {
		// CreateLog appends an audit row; the table is append-only.
		CreateLog(entry LogEntry) (LogEntry, error)
		// QueryRecentLogs returns log rows joined with student info,
		// newest first.
		QueryRecentLogs(limit int) ([]LogDetail, error)
	}

	// Notifier formats and dispatches parent emails for absence and
	// low-attendance events, persisting an audit row per attempt.
	Notifier struct {
		logs   LogRepository
		mail   core.EmailService
		logger core.Logger
	}
)

func NewNotifier(logs LogRepository, mailSvc core.EmailService, logger core.Logger) *Notifier {
	return &Notifier{logs: logs, mail: mailSvc, logger: logger}
}

// NotifyAbsences emails the parents of the given absent students for
// `date`. Every attempt is logged, including failures and students
// without a parent email on file.
func (n *Notifier) NotifyAbsences(students []student.Student, date time.Time) (DispatchSummary, error) {
	var summary DispatchSummary
	for _, s := range students {
		displayDate := date.Format("02/01/2006")
		message := fmt.Sprintf(
			"Dear Parent, Your child %s (Roll No: %s, Class: %s-%s) has been marked absent today (%s). "+
				"If this information is incorrect, please contact the school immediately.",
			s.Name, s.RollNo, s.Class, s.Section, displayDate,
		)

		entry := LogEntry{
			StudentID:   s.ID,
			Type:        LogTypeAbsence,
			Date:        date,
			ParentEmail: s.ParentEmail.String,
			Message:     message,
			Reference:   uuid.NewString(),
		}

		if !s.ParentEmail.Valid {
			summary.Skipped++
			entry.Status = LogStatusFailed
			if err := n.appendLog(entry); err != nil {
				return summary, err
			}
			continue
		}

		msg := &core.EmailMessage{
			To:           []mail.Address{{Name: s.Name, Address: s.ParentEmail.String}},
			Subject:      "Absence Notification",
			TemplateName: "absence",
			TemplateData: map[string]interface{}{
				"Name":    s.Name,
				"RollNo":  s.RollNo,
				"Class":   s.Class,
				"Section": s.Section,
				"Date":    displayDate,
			},
			BodyStr: message,
		}
		entry.Status = n.send(msg)
		if entry.Status == LogStatusSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
		if err := n.appendLog(entry); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// NotifyLowAttendance emails the parents of students flagged below the
// attendance threshold for a month.
func (n *Notifier) NotifyLowAttendance(students []attendance.StudentMonthly, month time.Time) (DispatchSummary, error) {
	var summary DispatchSummary
	for _, s := range students {
		marked := s.Present + s.Absent
		message := fmt.Sprintf(
			"Dear Parent, Your child %s (Roll No: %d, Class: %s-%s) has a low attendance of %.1f%% "+
				"(%d present out of %d marked days) for %s. Please ensure regular attendance.",
			s.Name, s.StudentID, s.Class, s.Section, s.Percentage, s.Present, marked, month.Format("January 2006"),
		)

		entry := LogEntry{
			StudentID:   s.StudentID,
			Type:        LogTypeLowAttendance,
			Date:        month,
			ParentEmail: s.ParentEmail.String,
			Message:     message,
			Reference:   uuid.NewString(),
		}

		if !s.ParentEmail.Valid {
			summary.Skipped++
			entry.Status = LogStatusFailed
			if err := n.appendLog(entry); err != nil {
				return summary, err
			}
			continue
		}

		msg := &core.EmailMessage{
			To:           []mail.Address{{Name: s.Name, Address: s.ParentEmail.String}},
			Subject:      "Low Attendance Alert - " + s.Name,
			TemplateName: "low_attendance",
			TemplateData: map[string]interface{}{
				"Name":       s.Name,
				"Class":      s.Class,
				"Section":    s.Section,
				"Percentage": fmt.Sprintf("%.1f", s.Percentage),
				"Present":    s.Present,
				"Marked":     marked,
				"Month":      month.Format("January 2006"),
			},
			BodyStr: message,
		}
		entry.Status = n.send(msg)
		if entry.Status == LogStatusSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
		if err := n.appendLog(entry); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (n *Notifier) RecentLogs(limit int) ([]LogDetail, error) {
	return n.logs.QueryRecentLogs(limit)
}

func (n *Notifier) send(msg *core.EmailMessage) string {
	if err := n.mail.Send(msg); err != nil {
		n.logger.Error(fmt.Sprintf("sending parent alert: %v", err), err)
		return LogStatusFailed
	}
	return LogStatusSent
}

func (n *Notifier) appendLog(entry LogEntry) error {
	if _, err := n.logs.CreateLog(entry); err != nil {
		return errors.Wrap(err, "appending alert log")
	}
	return nil
}
