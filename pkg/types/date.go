package types

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateString is a calendar date in "YYYY-MM-DD" form, used in request
// and response models where only the date component is meaningful.
type DateString string

// NewDateString creates a DateString from a time.Time
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// IsZero returns true if the date is empty
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate checks that the value parses as a calendar date
func (d DateString) Validate() error {
	_, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return fmt.Errorf("invalid date %q: must be YYYY-MM-DD", string(d))
	}
	return nil
}

// Time parses the date into a time.Time at midnight UTC
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", string(d))
	}
	return t, nil
}

// String returns the date in wire form
func (d DateString) String() string {
	return string(d)
}
