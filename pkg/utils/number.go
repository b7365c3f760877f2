package utils

import (
	"math"
	"strconv"
)

// RoundTo arredonda f para a quantidade de casas decimais informada.
// NaN e infinito viram zero para não vazarem no JSON.
func RoundTo(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	pow := math.Pow10(places)
	return math.Round(f*pow) / pow
}

func RoundWithTwoDecimalPlace(f float64) float64 {
	return RoundTo(f, 2)
}

// FormatMoney formata um valor monetário com duas casas, sem separador de milhar
func FormatMoney(f float64) string {
	return strconv.FormatFloat(RoundWithTwoDecimalPlace(f), 'f', 2, 64)
}
