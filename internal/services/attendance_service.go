package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

const dateLayout = "2006-01-02"

type AttendanceStore interface {
	GetByUsernameDate(ctx context.Context, username, date string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, rec *models.AttendanceRecord) (*models.AttendanceRecord, error)
	MarkStatus(ctx context.Context, rec *models.AttendanceRecord) (*models.AttendanceRecord, error)
	Close(ctx context.Context, id int64, clockOut time.Time, totalHours string) error
	ListByUsername(ctx context.Context, username string) ([]models.AttendanceRecord, error)
}

// DayMark is one administratively assigned status in a bulk save.
type DayMark struct {
	Username string
	Status   string
}

// AttendanceService drives the per-day session state machine:
// no session -> clocked in -> clocked out (terminal for that day).
type AttendanceService struct {
	records    AttendanceStore
	lateCutoff string // "15:04"
	now        func() time.Time
}

func NewAttendanceService(records AttendanceStore, lateCutoff string) *AttendanceService {
	return &AttendanceService{
		records:    records,
		lateCutoff: lateCutoff,
		now:        time.Now,
	}
}

// WithClock overrides the service's time source. Test hook.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

// ClockIn opens today's session. Any existing record for today, open or
// closed, rejects the call: one session per employee per day. The existence
// pre-check only produces the friendlier error; the database unique index is
// what actually guarantees the invariant under concurrent calls.
func (s *AttendanceService) ClockIn(ctx context.Context, username string) (*models.AttendanceRecord, error) {
	now := s.now()
	date := now.Format(dateLayout)

	existing, err := s.records.GetByUsernameDate(ctx, username, date)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
	}
	if existing != nil {
		return nil, alreadyRecordedToday()
	}

	rec := &models.AttendanceRecord{
		Username:   username,
		Date:       date,
		ClockIn:    now,
		TotalHours: "00:00:00",
		Status:     s.statusFor(now),
	}

	created, err := s.records.Create(ctx, rec)
	if errors.Is(err, repo.ErrDuplicate) {
		// Lost the check-then-act race; the unique index caught it.
		return nil, alreadyRecordedToday()
	}
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
	}
	return created, nil
}

// MarkDay bulk-saves admin-assigned statuses for one calendar day. This is
// the only writer of the Absent status: employees who never clocked in get a
// row created for them, while existing rows keep their clock data and only
// have the status overridden.
func (s *AttendanceService) MarkDay(ctx context.Context, date string, marks []DayMark) ([]models.AttendanceRecord, error) {
	if date == "" {
		date = s.now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Date must be YYYY-MM-DD")
	}
	if len(marks) == 0 {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "No attendance records to save")
	}

	out := make([]models.AttendanceRecord, 0, len(marks))
	for _, mark := range marks {
		if mark.Username == "" {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Username required for every record")
		}
		switch mark.Status {
		case models.AttendanceStatusPresent, models.AttendanceStatusLate, models.AttendanceStatusAbsent:
		default:
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Status must be Present, Late or Absent")
		}

		rec := &models.AttendanceRecord{
			Username:   mark.Username,
			Date:       date,
			ClockIn:    s.now(),
			TotalHours: "00:00:00",
			Status:     mark.Status,
		}
		saved, err := s.records.MarkStatus(ctx, rec)
		if err != nil {
			return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
		}
		out = append(out, *saved)
	}
	return out, nil
}

// ClockOut closes the open session. A clock-out recorded shortly after
// midnight still closes the previous day's open session, and the duration is
// measured as elapsed real time between the stored timestamps, so it can
// never be negative.
func (s *AttendanceService) ClockOut(ctx context.Context, username string) (*models.AttendanceRecord, error) {
	now := s.now()

	rec, err := s.openSession(ctx, username, now)
	if err != nil {
		return nil, err
	}

	elapsed := now.Sub(rec.ClockIn)
	if elapsed < 0 {
		elapsed = 0
	}
	total := FormatDuration(elapsed)

	if err := s.records.Close(ctx, rec.ID, now, total); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// A concurrent clock-out won; the session is already closed.
			return nil, noOpenSession()
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
	}

	rec.ClockOut = &now
	rec.TotalHours = total
	return rec, nil
}

// Today returns today's session or nil when none exists. It never creates.
func (s *AttendanceService) Today(ctx context.Context, username string) (*models.AttendanceRecord, error) {
	date := s.now().Format(dateLayout)
	rec, err := s.records.GetByUsernameDate(ctx, username, date)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
	}
	return rec, nil
}

// History returns the employee's sessions newest-date first.
func (s *AttendanceService) History(ctx context.Context, username string) ([]models.AttendanceRecord, error) {
	records, err := s.records.ListByUsername(ctx, username)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
	}
	return records, nil
}

// openSession finds the session the clock-out applies to: today's, or the
// previous day's when it was left open across midnight.
func (s *AttendanceService) openSession(ctx context.Context, username string, now time.Time) (*models.AttendanceRecord, error) {
	for _, date := range []string{
		now.Format(dateLayout),
		now.AddDate(0, 0, -1).Format(dateLayout),
	} {
		rec, err := s.records.GetByUsernameDate(ctx, username, date)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
		}
		if rec.Open() {
			return rec, nil
		}
		if date == now.Format(dateLayout) {
			// Today's session exists but is already closed.
			return nil, noOpenSession()
		}
	}
	return nil, noOpenSession()
}

// statusFor derives the session status once, at clock-in. It is never
// re-evaluated afterwards.
func (s *AttendanceService) statusFor(now time.Time) string {
	cutoff, err := time.Parse("15:04", s.lateCutoff)
	if err != nil {
		return models.AttendanceStatusPresent
	}
	limit := time.Date(now.Year(), now.Month(), now.Day(), cutoff.Hour(), cutoff.Minute(), 0, 0, now.Location())
	if now.After(limit) {
		return models.AttendanceStatusLate
	}
	return models.AttendanceStatusPresent
}

// FormatDuration renders a duration as HH:MM:SS, rounded to the second.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func alreadyRecordedToday() error {
	return utils.NewAppError(http.StatusConflict, utils.CodeAlreadyRecorded, "Attendance already recorded for today")
}

func noOpenSession() error {
	return utils.NewAppError(http.StatusBadRequest, utils.CodeNoOpenSession, "No open attendance session to clock out")
}
