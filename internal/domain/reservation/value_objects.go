package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// time.Date normalizes out-of-range values (e.g. Feb 30)
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d.year == 0 && d.month == 0 && d.day == 0 }
func (d Date) Weekday() Weekday   { return Weekday(d.midnight(time.UTC).Weekday()) }
func (d Date) AddDays(n int) Date { return DateOf(d.midnight(time.UTC).AddDate(0, 0, n)) }

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// At combines the date with a time of day in loc.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// Time returns midnight UTC, the representation used by the storage layer.
func (d Date) Time() time.Time {
	return d.midnight(time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Weekday uses 0=Sunday..6=Saturday.
type Weekday int

func (w Weekday) IsValid() bool { return w >= 0 && w <= 6 }

// TimeOfDay is the number of seconds since midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	return TimeOfDay(d / time.Second)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

func (t TimeOfDay) IsValid() bool { return t >= 0 && t < secondsPerDay }

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

// Sub returns t-other as a duration.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t-other) * time.Second
}

// String renders the canonical HH:MM:SS form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Short renders HH:MM for display.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

type callerKind int

const (
	callerGuest callerKind = iota + 1
	callerAuthenticated
)

// CallerIdentity is either an authenticated user or a guest identified by email.
type CallerIdentity struct {
	kind   callerKind
	userID uuid.UUID
	email  string
}

func Authenticated(userID uuid.UUID) CallerIdentity {
	return CallerIdentity{kind: callerAuthenticated, userID: userID}
}

func Guest(email string) CallerIdentity {
	return CallerIdentity{kind: callerGuest, email: NormalizeEmail(email)}
}

func (c CallerIdentity) IsAuthenticated() bool { return c.kind == callerAuthenticated }
func (c CallerIdentity) IsGuest() bool         { return c.kind == callerGuest }
func (c CallerIdentity) IsZero() bool          { return c.kind == 0 }

// UserID is uuid.Nil for guests.
func (c CallerIdentity) UserID() uuid.UUID { return c.userID }

// Email is empty for authenticated callers.
func (c CallerIdentity) Email() string { return c.email }

// Key is the value duplicate detection groups bookings by.
func (c CallerIdentity) Key() string {
	switch c.kind {
	case callerAuthenticated:
		return "user:" + c.userID.String()
	case callerGuest:
		return "guest:" + c.email
	default:
		return ""
	}
}

func (c CallerIdentity) String() string {
	return c.Key()
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
