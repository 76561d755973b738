package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 13, 30, 0, 0, moscow(t))

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{name: "today", input: "Сегодня", want: now, wantOK: true},
		{name: "today with time", input: "сегодня, 10:15", want: now, wantOK: true},
		{name: "yesterday", input: "вчера", want: now.AddDate(0, 0, -1), wantOK: true},
		{name: "english yesterday", input: "Yesterday", want: now.AddDate(0, 0, -1), wantOK: true},
		{name: "genitive month", input: "2 марта 2024", want: time.Date(2024, time.March, 2, 0, 0, 0, 0, now.Location()), wantOK: true},
		{name: "year suffix", input: "12 мая 2023 г.", want: time.Date(2023, time.May, 12, 0, 0, 0, 0, now.Location()), wantOK: true},
		{name: "short month", input: "1 сент 2022", want: time.Date(2022, time.September, 1, 0, 0, 0, 0, now.Location()), wantOK: true},
		{name: "numeric", input: "05.11.2023", want: time.Date(2023, time.November, 5, 0, 0, 0, 0, now.Location()), wantOK: true},
		{name: "numeric not padded", input: "5.11.2023"},
		{name: "numeric invalid month", input: "05.13.2023"},
		{name: "unknown month", input: "2 foo 2024"},
		{name: "impossible day", input: "31 февраля 2024"},
		{name: "two tokens", input: "2 марта"},
		{name: "empty", input: "   "},
		{name: "garbage", input: "недавно"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Normalize(tt.input, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	t.Parallel()

	loc := moscow(t)
	now := time.Date(2025, time.January, 1, 0, 30, 0, 0, loc)

	for day := 0; day < 400; day += 7 {
		known := now.AddDate(0, 0, -day)

		for _, formatted := range []string{FormatDayMonthYear(known), FormatNumeric(known)} {
			got, ok := Normalize(formatted, now)
			require.True(t, ok, "cannot parse %q", formatted)
			assert.True(t, SameDay(known, got), "%q -> %v, want day of %v", formatted, got, known)
		}
	}

	got, ok := Normalize("сегодня", now)
	require.True(t, ok)
	assert.True(t, SameDay(now, got))

	got, ok = Normalize("вчера", now)
	require.True(t, ok)
	assert.True(t, SameDay(now.AddDate(0, 0, -1), got))
}

func TestFormatDayMonthYear(t *testing.T) {
	t.Parallel()

	got := FormatDayMonthYear(time.Date(2024, time.August, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "9 августа 2024", got)
}
