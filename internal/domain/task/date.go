package task

import (
	"fmt"
	"strings"
	"time"
)

// Date is a due date that accepts both date-only ("2024-09-30") and
// RFC 3339 input and renders as RFC 3339.
type Date struct {
	time.Time
}

const dateOnly = "2006-01-02"

func NewDate(t time.Time) Date {
	return Date{Time: t.UTC()}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)

	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}

	t, err := time.Parse(dateOnly, s)

	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}

	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}

	return []byte(`"` + d.UTC().Format(time.RFC3339) + `"`), nil
}
