package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *date)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 3, 21, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 20, DaysBetween(from, to))
	assert.Equal(t, 0, DaysBetween(to, to))
	assert.Equal(t, -20, DaysBetween(to, from))
}

func TestMonthHelpers(t *testing.T) {
	date := time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), FirstDayOfMonth(date))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), StartOfDay(date))
	assert.Equal(t, "02-2024", MonthPeriod(date))
	assert.Equal(t, "2024-02-29", FormatDate(date))
	assert.True(t, EqualDate(date, StartOfDay(date)))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 52.89, RoundWithTwoDecimalPlace(2221.25/42))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.1, RoundTo(3.14159, 1))
	assert.Equal(t, 3.142, RoundTo(3.14159, 3))
	assert.Equal(t, 0.0, RoundTo(math.NaN(), 2))
	assert.Equal(t, 0.0, RoundTo(math.Inf(1), 2))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1250.00", FormatMoney(1250))
	assert.Equal(t, "52.89", FormatMoney(2221.25/42))
	assert.Equal(t, "0.00", FormatMoney(0))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, IDLength)

	other, err := GenerateID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
