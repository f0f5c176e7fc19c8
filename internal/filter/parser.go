package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseDateRange parses a date range relative to the current time.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15"
//   - "March 1 - April 15"
//   - "March" (entire month)
//
// A month earlier than the current one is taken to be next year, and a range
// whose end month precedes its start month ends next year. Bounds are UTC,
// from 00:00:00 on the first day to 23:59:59 on the last.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	return ParseDateRangeAt(input, time.Now())
}

// ParseDateRangeAt is ParseDateRange with an explicit reference time.
func ParseDateRangeAt(input string, now time.Time) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[3])
		if err != nil {
			return nil, nil, err
		}

		year := yearForMonth(month, now)
		return bounds(
			time.Date(year, month, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, day2, 23, 59, 59, 0, time.UTC),
		)
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		month1, month2 := parseMonth(m[1]), parseMonth(m[3])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearForMonth(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}

		return bounds(
			time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC),
		)
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearForMonth(month, now)
		return bounds(
			time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			// Day 0 of the next month is the last day of this one
			time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC),
		)
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

// SetDateRange parses input and applies it to the criteria.
func (c *Criteria) SetDateRange(input string) error {
	from, to, err := ParseDateRange(input)
	if err != nil {
		return fmt.Errorf("parsing date range: %w", err)
	}
	c.DateFrom, c.DateTo = from, to
	return nil
}

func bounds(from, to time.Time) (*time.Time, *time.Time, error) {
	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

// parseMonth converts a month name to time.Month, or 0 when unknown
func parseMonth(name string) time.Month {
	return months[strings.ToLower(strings.TrimSpace(name))]
}

func parseDay(raw string) (int, error) {
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", raw)
	}
	return day, nil
}

// yearForMonth returns next year when month has already passed
func yearForMonth(month time.Month, now time.Time) int {
	if month < now.Month() {
		return now.Year() + 1
	}
	return now.Year()
}
