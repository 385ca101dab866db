package utils

import "time"

// DateLayout — формат дат формы (request_date, scheduled_date и т.д.).
const DateLayout = "2006-01-02"

// ParseDate разбирает дату формы. Пустая строка или мусор — ok=false.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Truncate до календарного дня, чтобы сравнивать даты без времени.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween — количество полных дней от a до b.
func DaysBetween(a, b time.Time) float64 {
	return DayOf(b).Sub(DayOf(a)).Hours() / 24
}

// TimePtrToString форматирует отметку времени для ответа API.
func TimePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
