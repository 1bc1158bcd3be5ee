// ABOUTME: Calendar date type used by interactions
// ABOUTME: Encodes as YYYY-MM-DD and accepts RFC 3339 timestamps from the backend
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and form format for interaction dates.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
}

// Date is a calendar date. A bare YYYY-MM-DD is midnight UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateLayout)
}

// Display formats the date the way the interaction log shows it, e.g. "Jan 2, 2006".
func (d Date) Display() string {
	if d.IsZero() {
		return "-"
	}
	return d.UTC().Format("Jan 2, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
