package ggd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event is the occasion a poem was written for. Dates are ISO. TimeStamp is
// set only for an exact day.
type Event struct {
	TimeStamp     string   `json:"timeStamp,omitempty"`
	EarliestBegin string   `json:"earliestBeginTimeStamp,omitempty"`
	LatestEnd     string   `json:"latestEndTimeStamp,omitempty"`
	Places        []string `json:"place,omitempty"`
	Types         []string `json:"type,omitempty"`
}

// NewEvent builds an event from a YYYY-MM-DD date where a zero day means
// "some day in the month" and a zero month and day mean "some day in the
// year".
func NewEvent(date string, places, types []string) (Event, error) {
	ev := Event{
		Places: nonEmpty(places),
		Types:  nonEmpty(types),
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return ev, nil
	}
	if len(date) > 10 {
		date = date[:10]
	}
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return ev, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return ev, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	switch {
	case strings.HasSuffix(date, "00-00"):
		ev.EarliestBegin = fmt.Sprintf("%04d-01-01", year)
		ev.LatestEnd = fmt.Sprintf("%04d-12-31", year)

	case strings.HasSuffix(date, "-00"):
		month, err := strconv.Atoi(date[5:7])
		if err != nil || month < 1 || month > 12 {
			return ev, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
		ev.EarliestBegin = fmt.Sprintf("%04d-%02d-01", year, month)
		ev.LatestEnd = last.Format(time.DateOnly)

	default:
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return ev, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		ev.TimeStamp = date
		ev.EarliestBegin = date
		ev.LatestEnd = date
	}

	return ev, nil
}
