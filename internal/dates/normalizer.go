// Package dates turns the human-readable dates printed by the source sites into timestamps.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numericDate = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

var monthsGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthNames = buildMonthTable()

func buildMonthTable() map[string]time.Month {
	table := map[string]time.Month{}
	nominative := [12]string{
		"январь", "февраль", "март", "апрель", "май", "июнь",
		"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
	}
	short := [12]string{
		"янв", "фев", "мар", "апр", "мая", "июн",
		"июл", "авг", "сен", "окт", "ноя", "дек",
	}
	for i := 0; i < 12; i++ {
		m := time.Month(i + 1)
		table[monthsGenitive[i]] = m
		table[nominative[i]] = m
		table[short[i]] = m
	}
	table["сент"] = time.September
	return table
}

// Normalize parses raw relative to now. The second result is false when the
// string is empty or in no supported form; callers treat that as an unknown date.
//
// Supported: "сегодня"/"today", "вчера"/"yesterday", "12 марта 2024" and "12.03.2024".
// A trailing ", 14:05" time part and a "г."/"года" suffix are ignored.
func Normalize(raw string, now time.Time) (time.Time, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return time.Time{}, false
	}
	if head, _, found := strings.Cut(value, ","); found {
		value = strings.TrimSpace(head)
	}

	switch firstWord(value) {
	case "сегодня", "today":
		return now, true
	case "вчера", "yesterday":
		return now.AddDate(0, 0, -1), true
	}

	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(value, "года"), "г."))

	if numericDate.MatchString(value) {
		t, err := time.ParseInLocation("02.01.2006", value, now.Location())
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return parseDayMonthYear(value, now.Location())
}

func parseDayMonthYear(value string, loc *time.Location) (time.Time, bool) {
	tokens := strings.Fields(value)
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(tokens[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.TrimSuffix(tokens[1], ".")]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(tokens[2])
	if err != nil || len(tokens[2]) != 4 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// time.Date normalises 31 февраля into March; reject instead.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func firstWord(value string) string {
	if i := strings.IndexAny(value, " \t"); i >= 0 {
		return value[:i]
	}
	return value
}

// FormatDayMonthYear renders t the way the sites print it: "2 марта 2024".
func FormatDayMonthYear(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + monthsGenitive[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatNumeric renders t as DD.MM.YYYY.
func FormatNumeric(t time.Time) string {
	return t.Format("02.01.2006")
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
