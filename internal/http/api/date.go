package api

import (
	"encoding/json"
	"time"
)

// Date is a calendar date in JSON. It reads "2006-01-02" or a full RFC 3339
// timestamp and always writes "2006-01-02". A timestamp keeps the calendar date
// in the offset it was written with.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return err
		}
	}

	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return nil
}

// Ptr returns nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}

	return &d.Time
}
