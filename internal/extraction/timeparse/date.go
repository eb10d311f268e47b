package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical clock hours for time-of-day words.
var periodHours = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   18,
	"night":     20,
	"noon":      12,
	"midnight":  0,
}

// Default hours when a date resolves without any explicit time.
const (
	defaultWeekdayHour = 9
	defaultWeekendHour = 10
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var weekdayNumbers = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
	"mon":    time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
}

func weekdayFromTerm(term string) (time.Weekday, bool) {
	if term == "weekend" {
		return time.Saturday, true
	}
	day, ok := weekdayNumbers[term]
	return day, ok
}

// resolveWeekday finds the next occurrence of the target weekday on or
// after ref. The "next" qualifier always skips a full week.
func resolveWeekday(ref time.Time, target time.Weekday, qualifier string) time.Time {
	days := (int(target) - int(ref.Weekday()) + 7) % 7
	if qualifier == "next" {
		days += 7
	}
	return ref.AddDate(0, 0, days)
}

func defaultHourFor(date time.Time) int {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return defaultWeekendHour
	default:
		return defaultWeekdayHour
	}
}

// at combines a date carrier with a clock time in the given location.
func at(day time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// calendarDate validates a year/month/day triple by round-tripping it
// through time.Date: an invalid date like Feb 30 normalizes to a
// different month or day and is rejected.
func calendarDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// hasInvalidCalendarDate reports whether the text contains a calendar
// expression that fails validation.
func hasInvalidCalendarDate(text string) bool {
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if _, ok := calendarDate(2000, month, day, time.UTC); !ok {
			return true
		}
	}
	for _, m := range monthNameDateRe.FindAllStringSubmatch(text, -1) {
		month, ok := monthNumbers[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		year := 2001 // non-leap, so Feb 29 is also rejected without an explicit year
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if _, ok := calendarDate(year, month, day, time.UTC); !ok {
			return true
		}
	}
	return false
}

type dateKind int

const (
	dateNone dateKind = iota
	dateRelative
	dateWeekday
	dateCalendar
)

// dateFromText scans the whole text for a date reference, trying the
// most specific forms first. It reports what kind of reference anchored
// the result so callers can decide how to handle a resolution that has
// already passed.
func dateFromText(text string, ref time.Time) (time.Time, dateKind) {
	if m := relativeDayRe.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "tomorrow":
			return ref.AddDate(0, 0, 1), dateRelative
		case "the day after tomorrow":
			return ref.AddDate(0, 0, 2), dateRelative
		default:
			return ref, dateRelative
		}
	}

	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		if day, ok := weekdayFromTerm(strings.ToLower(m[2])); ok {
			return resolveWeekday(ref, day, strings.ToLower(m[1])), dateWeekday
		}
	}
	if m := weekdayAbbrevRe.FindStringSubmatch(text); m != nil {
		if day, ok := weekdayFromTerm(strings.ToLower(m[2])); ok {
			return resolveWeekday(ref, day, strings.ToLower(m[1])), dateWeekday
		}
	}

	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := ref.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if d, ok := calendarDate(year, month, day, ref.Location()); ok {
			return d, dateCalendar
		}
	}

	if m := monthNameDateRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			year := ref.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			if d, ok := calendarDate(year, month, day, ref.Location()); ok {
				return d, dateCalendar
			}
		}
	}

	return time.Time{}, dateNone
}

var bareClockRe = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)

// clockFromText scans the whole text for an explicit clock time,
// preferring meridiem forms over bare 24-hour ones.
func clockFromText(text string) (hour, minute int, ok bool) {
	if m := meridiemClockRe.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour <= 23 {
			return hour, minute, true
		}
	}
	if m := bareClockRe.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute, true
	}
	return 0, 0, false
}

func hasClock(text string) bool {
	_, _, ok := clockFromText(text)
	return ok
}

// timeOfDayFromText finds the first time-of-day word anywhere in text.
func timeOfDayFromText(text string) (string, bool) {
	if m := timeOfDayRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1]), true
	}
	return "", false
}

// combineClock anchors an explicit clock time to whatever date the text
// names, defaulting to the reference date. A dateless time that has
// already passed rolls to the next day; a same-weekday collision rolls
// a full week forward.
func combineClock(text string, ref time.Time, hour, minute int) time.Time {
	day, kind := dateFromText(text, ref)
	if kind == dateNone {
		day = ref
	}
	resolved := at(day, hour, minute, ref.Location())
	if resolved.Before(ref) {
		switch kind {
		case dateNone:
			resolved = resolved.AddDate(0, 0, 1)
		case dateWeekday:
			resolved = resolved.AddDate(0, 0, 7)
		}
	}
	return resolved
}
