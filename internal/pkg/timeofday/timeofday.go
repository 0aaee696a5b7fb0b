// Package timeofday models a wall-clock time without a date, as stored in
// PostgreSQL TIME columns.
package timeofday

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// TimeOfDay is the offset from midnight, in [0, 24h).
type TimeOfDay struct {
	d time.Duration
}

// New builds a TimeOfDay from hour, minute and second. It panics on out-of-range input.
func New(hour, minute, second int) TimeOfDay {
	t, err := FromDuration(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
	if err != nil {
		panic(err)
	}
	return t
}

func FromDuration(d time.Duration) (TimeOfDay, error) {
	if d < 0 || d >= day {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %s", d)
	}
	return TimeOfDay{d: d}, nil
}

// Of returns the wall-clock part of t in t's location.
func Of(t time.Time) TimeOfDay {
	return New(t.Clock())
}

// Parse accepts "15:04" or "15:04:05".
func Parse(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Of(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// ParseOptional returns nil for blank or unparsable input.
func ParseOptional(s string) *TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		return nil
	}
	return &t
}

func (t TimeOfDay) Duration() time.Duration { return t.d }

func (t TimeOfDay) Hour() int   { return int(t.d / time.Hour) }
func (t TimeOfDay) Minute() int { return int(t.d % time.Hour / time.Minute) }
func (t TimeOfDay) Second() int { return int(t.d % time.Minute / time.Second) }

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.d < u.d }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.d > u.d }
func (t TimeOfDay) Equal(u TimeOfDay) bool  { return t.d == u.d }

// Sub returns t-u on the same day. The result is negative when u is later than t.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration { return t.d - u.d }

// String formats as HH:MM, which is how times are exchanged with clients.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
