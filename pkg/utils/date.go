package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// FormatDate formata a data no padrão ISO (YYYY-MM-DD) usado nos snapshots
func FormatDate(date time.Time) string {
	return date.Format(time.DateOnly)
}

// StartOfDay retorna a meia-noite do dia da data informada, preservando o fuso
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// FirstDayOfMonth retorna o primeiro dia do mês da data informada
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthPeriod formata o período mensal no formato mm-yyyy
func MonthPeriod(date time.Time) string {
	return date.Format("01-2006")
}

func EqualDate(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month() && date1.Day() == date2.Day()
}

// DaysBetween conta os dias de calendário entre from e to, ignorando horário e horário de verão
func DaysBetween(from, to time.Time) int {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
