package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Recognized reminder grammars. The absolute pattern is shared between
// locales; relative patterns carry the locale keyword.
var (
	reAbsolute = regexp.MustCompile(`^(\d{2})[./](\d{2})[./](\d{4})\s+(\d{2}):(\d{2})(?:\s+(.*))?$`)

	reMinRU = regexp.MustCompile(`(?i)^через\s+(\d+)\s*мин(?:ут[ыу]?)?(?:\s+(.*))?$`)
	reHrRU  = regexp.MustCompile(`(?i)^через\s+(\d+)\s*час(?:а|ов)?(?:\s+(.*))?$`)
	reMinEN = regexp.MustCompile(`(?i)^in\s+(\d+)\s*min(?:s|utes?)?(?:\s+(.*))?$`)
	reHrEN  = regexp.MustCompile(`(?i)^in\s+(\d+)\s*hour(?:s)?(?:\s+(.*))?$`)
)

// placeholder returns the locale's substitute for an empty reminder body.
func placeholder(loc Locale) string {
	if loc == LocaleRU {
		return "Без текста"
	}
	return "No text"
}

// Parse extracts a reminder request from free-form text.
//
// Matching is tried in a fixed order: the absolute date pattern
// ("21.07.2025 18:00 call mom", "." and "/" both accepted), then the
// locale-specific relative patterns ("через 10 минут ..." / "in 10 minutes
// ..."). Hours convert to minutes. A trimmed-empty tail is replaced with the
// locale placeholder. The second return value is false when the text is not
// a reminder at all; that is a routing signal, not an error.
func Parse(text string, loc Locale) (Request, bool) {
	text = strings.TrimSpace(text)

	if m := reAbsolute.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])

		at, ok := calendarDate(year, month, day, hour, minute)
		if !ok {
			return Request{}, false
		}
		return Request{
			Kind: AbsoluteInstant,
			At:   at,
			Body: bodyOrPlaceholder(m[6], loc),
		}, true
	}

	reMin, reHr := reMinEN, reHrEN
	if loc == LocaleRU {
		reMin, reHr = reMinRU, reHrRU
	}

	if m := reMin.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Request{Kind: RelativeMinutes, Minutes: n, Body: bodyOrPlaceholder(m[2], loc)}, true
	}
	if m := reHr.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Request{Kind: RelativeMinutes, Minutes: n * 60, Body: bodyOrPlaceholder(m[2], loc)}, true
	}

	return Request{}, false
}

// calendarDate builds a UTC instant and rejects values time.Date would
// silently normalize (month 13, day 32, hour 25 and so on).
func calendarDate(year, month, day, hour, minute int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, false
	}
	return t, true
}

func bodyOrPlaceholder(tail string, loc Locale) string {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return placeholder(loc)
	}
	return tail
}
