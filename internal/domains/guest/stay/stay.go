// Package stay holds the booking-date rules for guest registrations: parsing
// of the check-in/check-out pair, structural validation against the current
// date, and half-open overlap detection between stays at the same hotel.
package stay

import (
	"fmt"
	"time"

	"checkin/shared/constant"
	"checkin/shared/failure"
	"checkin/shared/timezone"
)

var (
	ErrInvalidDate  = failure.BadRequestFromString("check-in and check-out must be valid dates in YYYY-MM-DD format")
	ErrDateInPast   = failure.BadRequestFromString("check-in date must not be in the past")
	ErrInvalidRange = failure.BadRequestFromString("check-out date must be after check-in date")
)

// Interval is a half-open date range [From, To). A guest checking out on the
// same day another checks in does not occupy the same night, so abutting
// intervals never overlap.
type Interval struct {
	From time.Time
	To   time.Time
}

func Parse(from, to string) (Interval, error) {
	fromDate, err := ParseDate(from)
	if err != nil {
		return Interval{}, err
	}

	toDate, err := ParseDate(to)
	if err != nil {
		return Interval{}, err
	}

	return Interval{From: fromDate, To: toDate}, nil
}

// ParseDate parses a single stay date at midnight in the application
// timezone, so comparisons against timezone.Today() stay consistent.
func ParseDate(s string) (time.Time, error) {
	date, err := timezone.Parse(constant.StayDateFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return date, nil
}

func (i Interval) String() string {
	return fmt.Sprintf("%s to %s", i.From.Format(constant.StayDateFormat), i.To.Format(constant.StayDateFormat))
}

// Nights is the stay length in whole days.
func (i Interval) Nights() int {
	return int(i.To.Sub(i.From).Hours() / 24)
}

// Validate runs the structural checks in order: past check-in, inverted
// range, maximum stay length. maxStayDays of zero disables the length cap.
func (i Interval) Validate(today time.Time, maxStayDays int) error {
	if i.From.Before(today) {
		return ErrDateInPast
	}

	if !i.To.After(i.From) {
		return ErrInvalidRange
	}

	if maxStayDays > 0 && i.Nights() > maxStayDays {
		return failure.BadRequestFromString(fmt.Sprintf("stay cannot exceed %d days", maxStayDays))
	}

	return nil
}

func (i Interval) Overlaps(other Interval) bool {
	return other.From.Before(i.To) && other.To.After(i.From)
}

// FindConflict returns the first existing interval that overlaps the
// candidate, if any.
func FindConflict(candidate Interval, existing []Interval) (Interval, bool) {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return e, true
		}
	}

	return Interval{}, false
}

// Conflict builds the user-facing error for an overlapping booking, carrying
// the conflicting range for display.
func Conflict(conflicting Interval) error {
	return failure.Conflict(fmt.Sprintf("stay dates conflict with an existing booking (%s)", conflicting)) //nolint:wrapcheck
}
