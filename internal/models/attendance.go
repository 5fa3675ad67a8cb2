package models

import "time"

const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusLate    = "Late"
	AttendanceStatusAbsent  = "Absent"
)

// AttendanceRecord is one clock-in/clock-out session for one employee on one
// calendar day. The (username, date) pair is unique at the storage layer;
// that index, not the application pre-check, is what guarantees one session
// per person per day under concurrent clock-ins.
type AttendanceRecord struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"uniqueIndex:idx_attendance_user_day;not null" json:"username"`
	Date       string     `gorm:"uniqueIndex:idx_attendance_user_day;not null" json:"date"` // YYYY-MM-DD
	ClockIn    time.Time  `gorm:"not null" json:"-"`
	ClockOut   *time.Time `json:"-"`
	TotalHours string     `gorm:"not null;default:00:00:00" json:"total_hours"` // HH:MM:SS
	Status     string     `gorm:"not null;default:Present" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Open reports whether the session is clocked in but not yet clocked out.
func (r *AttendanceRecord) Open() bool {
	return r.ClockOut == nil
}
