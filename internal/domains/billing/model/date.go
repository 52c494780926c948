package model

import (
	"bytes"
	"strconv"
	"time"
)

// Date is a time.Time that tolerates the date encodings seen across the
// upstream backend: RFC3339, bare dates, SQL datetime strings, epoch
// milliseconds, and null. A value that cannot be parsed unmarshals to the
// zero time instead of failing the whole record.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		d.Time = time.Time{}

		return nil
	}

	if data[0] != '"' {
		millis, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			d.Time = time.Time{}

			return nil
		}

		d.Time = time.UnixMilli(millis).UTC()

		return nil
	}

	value := string(bytes.Trim(data, `"`))
	if value == "" {
		d.Time = time.Time{}

		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			d.Time = t

			return nil
		}
	}

	d.Time = time.Time{}

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}
