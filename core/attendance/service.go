package attendance

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type (
	Repository interface {
		// QueryRoster returns active students, optionally filtered by
		// class and/or section.
		QueryRoster(class, section string) ([]RosterEntry, error)
		// QueryDay returns the attendance rows of one date joined with
		// student identities, ordered by student id.
		QueryDay(date time.Time, class, section string) ([]DayRecord, error)
		// QueryRange returns the raw attendance rows of all roster
		// students within the inclusive date range.
		QueryRange(r DateRange, class, section string) ([]Record, error)
		// UpsertBatch writes records as a single atomic unit;
		// a (student, date) pair is unique.
		UpsertBatch(records []Record) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Roster returns the active students available for attendance marking,
// optionally filtered by class and/or section.
func (svc *Service) Roster(class, section string) ([]RosterEntry, error) {
	return svc.repo.QueryRoster(class, section)
}

// SaveBatch validates and stores a batch of attendance records. Valid
// records are committed together; invalid ones are reported per record
// rather than aborting the batch.
func (svc *Service) SaveBatch(records []SaveRecord) ([]SaveResult, error) {
	if len(records) == 0 {
		return nil, core.NewValidationError(errors.New("no attendance records provided"))
	}

	results := make([]SaveResult, len(records))
	valid := make([]Record, 0, len(records))
	for i, rec := range records {
		res := SaveResult{Index: i, StudentID: rec.StudentID}
		switch {
		case rec.StudentID <= 0:
			res.Reason = "missing student_id"
		case rec.Date == "":
			res.Reason = "missing date"
		default:
			date, err := time.Parse(core.DateFormat, rec.Date)
			if err != nil {
				res.Reason = "invalid date"
				break
			}
			status, ok := ParseStatus(rec.Status)
			if !ok {
				res.Reason = "invalid status"
				break
			}
			res.Saved = true
			valid = append(valid, Record{StudentID: rec.StudentID, Date: date, Status: status})
		}
		results[i] = res
	}

	if len(valid) > 0 {
		if err := svc.repo.UpsertBatch(valid); err != nil {
			return nil, errors.Wrap(err, "saving attendance batch")
		}
	}
	return results, nil
}

// Daily builds the report of a single date with optional class/section
// filters. A filter matching no students yields an empty report.
func (svc *Service) Daily(date time.Time, class, section string) (DailyReport, error) {
	rows, err := svc.repo.QueryDay(date, class, section)
	if err != nil {
		return DailyReport{}, errors.Wrap(err, "querying daily attendance")
	}
	roster, err := svc.repo.QueryRoster(class, section)
	if err != nil {
		return DailyReport{}, errors.Wrap(err, "querying roster")
	}

	report := DailyReport{Details: make([]DailyDetail, 0, len(rows))}
	var tally Tally
	for _, row := range rows {
		tally.Add(row.Status)
		report.Details = append(report.Details, DailyDetail{
			StudentID: row.StudentID,
			Name:      row.Name,
			Class:     row.Class,
			Section:   row.Section,
			Status:    row.Status.Display(),
		})
	}
	report.Stats = DailyStats{
		Total:   len(rows),
		Present: tally.Present,
		Absent:  tally.Absent,
		Late:    tally.Late,
		OnLeave: tally.OnLeave,
	}
	if unmarked := len(roster) - len(rows); unmarked > 0 {
		report.Stats.Unmarked = unmarked
	}
	return report, nil
}

// Monthly builds per-student aggregates for the month of `month` plus
// the overall pooled percentage: sum(present)/sum(marked), not the
// mean of per-student percentages.
func (svc *Service) Monthly(month time.Time, class, section string) (MonthlyReport, error) {
	r := MonthRange(month)
	roster, tallies, err := svc.aggregate(r, class, section)
	if err != nil {
		return MonthlyReport{}, err
	}

	report := MonthlyReport{Students: make([]StudentMonthly, 0, len(roster))}
	var totalPresent, totalMarked int
	for _, entry := range roster {
		tally := tallies[entry.StudentID]
		report.Students = append(report.Students, StudentMonthly{
			StudentID:   entry.StudentID,
			Name:        entry.Name,
			Class:       entry.Class,
			Section:     entry.Section,
			TotalDays:   r.TotalDays(),
			Present:     tally.Present,
			Absent:      tally.Absent,
			Percentage:  tally.Percent(1),
			ParentEmail: entry.ParentEmail,
		})
		totalPresent += tally.Present
		totalMarked += tally.Marked()
	}
	report.OverallPercentage = Percent(totalPresent, totalMarked, 2)
	return report, nil
}

// Low returns the students of a month whose percentage falls strictly
// below the threshold. Students with no marked days are not flagged.
func (svc *Service) Low(month time.Time, threshold float64, class, section string) ([]StudentMonthly, error) {
	r := MonthRange(month)
	roster, tallies, err := svc.aggregate(r, class, section)
	if err != nil {
		return nil, err
	}

	low := make([]StudentMonthly, 0)
	for _, entry := range roster {
		tally := tallies[entry.StudentID]
		marked := tally.Marked()
		if marked == 0 {
			continue
		}
		pct := tally.Percent(1)
		if !Below(pct, threshold) {
			continue
		}
		low = append(low, StudentMonthly{
			StudentID:   entry.StudentID,
			Name:        entry.Name,
			Class:       entry.Class,
			Section:     entry.Section,
			TotalDays:   r.TotalDays(),
			Present:     tally.Present,
			Absent:      marked - tally.Present,
			Percentage:  pct,
			ParentEmail: entry.ParentEmail,
		})
	}
	return low, nil
}

func (svc *Service) aggregate(r DateRange, class, section string) ([]RosterEntry, map[int]Tally, error) {
	roster, err := svc.repo.QueryRoster(class, section)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying roster")
	}
	records, err := svc.repo.QueryRange(r, class, section)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying attendance range")
	}

	sort.Slice(roster, func(i, j int) bool { return roster[i].StudentID < roster[j].StudentID })
	tallies := make(map[int]Tally, len(roster))
	for _, rec := range records {
		tally := tallies[rec.StudentID]
		tally.Add(rec.Status)
		tallies[rec.StudentID] = tally
	}
	return roster, tallies, nil
}
