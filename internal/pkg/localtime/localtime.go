package localtime

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Normalizer converts absolute (UTC) timestamps to the deployment's fixed
// local offset. The offset never observes DST, so every conversion is plain
// arithmetic and day windows are always exactly 24 hours.
type Normalizer struct {
	loc       *time.Location
	weekStart time.Weekday
}

func NewNormalizer(offsetMinutes int, weekStart time.Weekday) *Normalizer {
	sign := "+"
	abs := offsetMinutes
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/60, abs%60)
	return &Normalizer{
		loc:       time.FixedZone(name, offsetMinutes*60),
		weekStart: weekStart,
	}
}

// Location returns the fixed-offset location.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ToLocal shifts a UTC instant into the local offset.
func (n *Normalizer) ToLocal(t time.Time) time.Time {
	return t.In(n.loc)
}

// LocalDay returns local midnight of the calendar day t falls on. The result
// is the unit used for "today" filtering and absence inference: a session
// belongs to the local day of its check-in, even when it ends the next day.
func (n *Normalizer) LocalDay(t time.Time) time.Time {
	lt := t.In(n.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, n.loc)
}

// Day builds local midnight for an explicit calendar date. Returns an error
// for out-of-range components (e.g. February 30th).
func (n *Normalizer) Day(year int, month time.Month, day int) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, n.loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}

// DayWindow returns the [start, end) UTC instants covering the local day.
func (n *Normalizer) DayWindow(day time.Time) (time.Time, time.Time) {
	start := n.LocalDay(day)
	return start.UTC(), start.Add(24 * time.Hour).UTC()
}

// WeekWindow returns the [start, end) UTC instants of the local week
// containing t, beginning on the configured week start day.
func (n *Normalizer) WeekWindow(t time.Time) (time.Time, time.Time) {
	day := n.LocalDay(t)
	back := (int(day.Weekday()) - int(n.weekStart) + 7) % 7
	start := day.AddDate(0, 0, -back)
	return start.UTC(), start.AddDate(0, 0, 7).UTC()
}

// MonthWindow returns the [start, end) UTC instants of the local calendar
// month containing t.
func (n *Normalizer) MonthWindow(t time.Time) (time.Time, time.Time) {
	lt := t.In(n.loc)
	start := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, n.loc)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// FormatDay renders a local day as YYYY-MM-DD.
func (n *Normalizer) FormatDay(t time.Time) string {
	return t.In(n.loc).Format("2006-01-02")
}

// FormatClock renders the local wall-clock time of a UTC instant.
func (n *Normalizer) FormatClock(t time.Time) string {
	return t.In(n.loc).Format("15:04")
}

// FormatHours renders a duration as decimal hours with one decimal place,
// e.g. "7.5". Rounding is half away from zero on totalSeconds/3600.
func FormatHours(d time.Duration) string {
	hours := math.Round(d.Seconds()/3600*10) / 10
	return fmt.Sprintf("%.1f", hours)
}

// ParseWeekStart maps a config value to a weekday. Only monday and sunday
// deployments exist today.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("unsupported week start %q", s)
	}
}
