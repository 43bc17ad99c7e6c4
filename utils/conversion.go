package utils

import (
	"math"
	"strconv"
	"time"
)

// RoundTo rounds v half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatMoney renders an amount with thousands separators and no decimals, e.g. 162.000.
func FormatMoney(amount float64) string {
	s := strconv.FormatInt(int64(math.Round(amount)), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}

// MonthRange returns the first day of the month and the first day of the next month as YYYY-MM-DD strings.
func MonthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.Format(DateLayout), end.Format(DateLayout)
}
