package repository

import (
	"log"
	"time"
)

// TimestampLayout is the stored form of every timestamp column. Values are
// written in server-local time so lexical order is chronological order and
// the first ten characters are the local calendar date.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const DateLayout = "2006-01-02"

func formatTime(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(TimestampLayout, v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t
	}
	log.Printf("repository_bad_timestamp value=%q", v)
	return time.Time{}
}

// LocalDate returns the YYYY-MM-DD key used by date filters.
func LocalDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}
