package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The pattern ladder, most specific first. Later date-only rules pick
// up any clock time found elsewhere in the text, and clock rules pick
// up any date reference, so competing candidates for the same sentence
// converge on the same instant.
var rules = []rule{
	meridiemClockRule,
	prepositionClockRule,
	relativeDayRule,
	timeOfDayRule,
	weekdayRule,
	numericDateRule,
	monthNameDateRule,
}

type rule func(text string, ref time.Time) []Candidate

var (
	meridiemClockRe    = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm)\b`)
	prepositionClockRe = regexp.MustCompile(`(?i)\b(?:at|by|on|for)\s+([01]?\d|2[0-3]):([0-5]\d)\b`)
	meridiemSuffixRe   = regexp.MustCompile(`(?i)^\s*(?:am|pm)\b`)
	relativeDayRe      = regexp.MustCompile(`(?i)\b(the day after tomorrow|today|tonight|tomorrow)\b(?:\s+(?:in the\s+)?(morning|afternoon|evening|night|noon|midnight)\b)?`)
	timeOfDayRe        = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night|noon|midnight)\b`)
	weekdayRe          = regexp.MustCompile(`(?i)\b(?:(this|next)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday|weekend)\b`)
	weekdayAbbrevRe    = regexp.MustCompile(`(?i)\b(this|next)\s+(mon|tue|wed|thu|fri|sat|sun)\b`)
	numericDateRe      = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	monthNameDateRe    = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)[.\s]+(\d{1,2})(?:st|nd|rd|th)?(?:[,\s]+(\d{4}))?\b`)
)

func meridiemClockRule(text string, ref time.Time) []Candidate {
	var out []Candidate
	for _, m := range meridiemClockRe.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[m[2]:m[3]])
		minute := 0
		if m[4] >= 0 {
			minute, _ = strconv.Atoi(text[m[4]:m[5]])
		}
		switch strings.ToLower(text[m[6]:m[7]]) {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour > 23 {
			continue
		}
		out = append(out, Candidate{
			MatchedText:  text[m[0]:m[1]],
			Start:        m[0],
			End:          m[1],
			Resolved:     combineClock(text, ref, hour, minute),
			Confidence:   patternConfidence,
			HasClockTime: true,
		})
	}
	return out
}

func prepositionClockRule(text string, ref time.Time) []Candidate {
	var out []Candidate
	for _, m := range prepositionClockRe.FindAllStringSubmatchIndex(text, -1) {
		// Clock times with a trailing meridiem belong to the rule above.
		if meridiemSuffixRe.MatchString(text[m[1]:]) {
			continue
		}
		hour, _ := strconv.Atoi(text[m[2]:m[3]])
		minute, _ := strconv.Atoi(text[m[4]:m[5]])
		out = append(out, Candidate{
			MatchedText:  text[m[0]:m[1]],
			Start:        m[0],
			End:          m[1],
			Resolved:     combineClock(text, ref, hour, minute),
			Confidence:   patternConfidence,
			HasClockTime: true,
		})
	}
	return out
}

func relativeDayRule(text string, ref time.Time) []Candidate {
	var out []Candidate
	for _, m := range relativeDayRe.FindAllStringSubmatchIndex(text, -1) {
		day := ref
		term := strings.ToLower(text[m[2]:m[3]])
		switch term {
		case "tomorrow":
			day = ref.AddDate(0, 0, 1)
		case "the day after tomorrow":
			day = ref.AddDate(0, 0, 2)
		}

		period := ""
		if m[4] >= 0 {
			period = strings.ToLower(text[m[4]:m[5]])
		} else if term == "tonight" {
			period = "evening"
		}

		c := Candidate{
			MatchedText: text[m[0]:m[1]],
			Start:       m[0],
			End:         m[1],
			Confidence:  patternConfidence,
		}
		if hour, minute, ok := clockFromText(text); ok {
			c.Resolved = at(day, hour, minute, ref.Location())
			c.HasClockTime = true
		} else if period != "" {
			c.Resolved = at(day, periodHours[period], 0, ref.Location())
			c.Period = period
		} else if p, ok := timeOfDayFromText(text); ok {
			c.Resolved = at(day, periodHours[p], 0, ref.Location())
			c.Period = p
		} else {
			c.Resolved = at(day, defaultWeekdayHour, 0, ref.Location())
		}
		out = append(out, c)
	}
	return out
}

func timeOfDayRule(text string, ref time.Time) []Candidate {
	// A period word only stands on its own when no exact clock time is
	// present; otherwise the clock rules already resolved the instant.
	if _, _, ok := clockFromText(text); ok {
		return nil
	}

	var out []Candidate
	for _, m := range timeOfDayRe.FindAllStringSubmatchIndex(text, -1) {
		period := strings.ToLower(text[m[2]:m[3]])

		day, kind := dateFromText(text, ref)
		if kind == dateNone {
			day = ref
		}
		resolved := at(day, periodHours[period], 0, ref.Location())
		switch kind {
		case dateNone:
			if !resolved.After(ref) {
				resolved = resolved.AddDate(0, 0, 1)
			}
		case dateWeekday:
			if resolved.Before(ref) {
				resolved = resolved.AddDate(0, 0, 7)
			}
		}

		out = append(out, Candidate{
			MatchedText: text[m[0]:m[1]],
			Start:       m[0],
			End:         m[1],
			Resolved:    resolved,
			Confidence:  patternConfidence,
			Period:      period,
		})
	}
	return out
}

func weekdayRule(text string, ref time.Time) []Candidate {
	matches := weekdayRe.FindAllStringSubmatchIndex(text, -1)
	matches = append(matches, weekdayAbbrevRe.FindAllStringSubmatchIndex(text, -1)...)

	var out []Candidate
	for _, m := range matches {
		qualifier := ""
		if m[2] >= 0 {
			qualifier = strings.ToLower(text[m[2]:m[3]])
		}
		day, ok := weekdayFromTerm(strings.ToLower(text[m[4]:m[5]]))
		if !ok {
			continue
		}
		date := resolveWeekday(ref, day, qualifier)

		c := Candidate{
			MatchedText: text[m[0]:m[1]],
			Start:       m[0],
			End:         m[1],
			Confidence:  patternConfidence,
		}
		switch {
		case hasClock(text):
			hour, minute, _ := clockFromText(text)
			c.Resolved = at(date, hour, minute, ref.Location())
			c.HasClockTime = true
		default:
			if period, ok := timeOfDayFromText(text); ok {
				c.Resolved = at(date, periodHours[period], 0, ref.Location())
				c.Period = period
			} else {
				c.Resolved = at(date, defaultHourFor(date), 0, ref.Location())
				c.BareWeekday = true
			}
		}
		// Same-weekday collisions resolve forward, never into the past.
		if c.Resolved.Before(ref) {
			c.Resolved = c.Resolved.AddDate(0, 0, 7)
		}
		out = append(out, c)
	}
	return out
}

func numericDateRule(text string, ref time.Time) []Candidate {
	var out []Candidate
	for _, m := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		month, _ := strconv.Atoi(text[m[2]:m[3]])
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		year := ref.Year()
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
			if year < 100 {
				year += 2000
			}
		}
		date, ok := calendarDate(year, month, day, ref.Location())
		if !ok {
			continue
		}
		out = append(out, dateCandidate(text, ref, date, m[0], m[1]))
	}
	return out
}

func monthNameDateRule(text string, ref time.Time) []Candidate {
	var out []Candidate
	for _, m := range monthNameDateRe.FindAllStringSubmatchIndex(text, -1) {
		month, ok := monthNumbers[strings.ToLower(text[m[2]:m[3]])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		year := ref.Year()
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
		}
		date, ok := calendarDate(year, month, day, ref.Location())
		if !ok {
			continue
		}
		out = append(out, dateCandidate(text, ref, date, m[0], m[1]))
	}
	return out
}

// dateCandidate builds a candidate for a calendar-date match, attaching
// any clock time or period found elsewhere in the text.
func dateCandidate(text string, ref time.Time, date time.Time, start, end int) Candidate {
	c := Candidate{
		MatchedText: text[start:end],
		Start:       start,
		End:         end,
		Confidence:  patternConfidence,
	}
	if hour, minute, ok := clockFromText(text); ok {
		c.Resolved = at(date, hour, minute, ref.Location())
		c.HasClockTime = true
	} else if period, ok := timeOfDayFromText(text); ok {
		c.Resolved = at(date, periodHours[period], 0, ref.Location())
		c.Period = period
	} else {
		c.Resolved = at(date, defaultHourFor(date), 0, ref.Location())
	}
	return c
}

// keywordFallback is the last-resort scan for bare keyword phrases that
// the pattern ladder did not catch.
func keywordFallback(text string, ref time.Time) []Candidate {
	lower := strings.ToLower(text)
	for _, kw := range fallbackKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}

		c := Candidate{
			MatchedText: text[idx : idx+len(kw)],
			Start:       idx,
			End:         idx + len(kw),
			Confidence:  fallbackConfidence,
		}
		if kw == "tomorrow" {
			c.Resolved = at(ref.AddDate(0, 0, 1), defaultWeekdayHour, 0, ref.Location())
		} else if hour, ok := periodHours[kw]; ok {
			c.Period = kw
			c.Resolved = at(ref, hour, 0, ref.Location())
			if !c.Resolved.After(ref) {
				c.Resolved = c.Resolved.AddDate(0, 0, 1)
			}
		} else if day, ok := weekdayFromTerm(kw); ok {
			date := resolveWeekday(ref, day, "")
			c.BareWeekday = true
			c.Resolved = at(date, defaultHourFor(date), 0, ref.Location())
			if c.Resolved.Before(ref) {
				c.Resolved = c.Resolved.AddDate(0, 0, 7)
			}
		} else {
			continue
		}
		return []Candidate{c}
	}
	return nil
}

var fallbackKeywords = []string{
	"tomorrow",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"morning", "afternoon", "evening", "night", "noon", "midnight",
}
