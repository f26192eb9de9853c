package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatVND renders an integer dong amount with dot thousand separators,
// e.g. 450000 -> "450.000 VND".
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s VND", sign, formatThousand(amount))
}

// SeatTotal is the fixed-fare price of a party.
func SeatTotal(pax int, pricePerSeat int64) int64 {
	if pax <= 0 || pricePerSeat <= 0 {
		return 0
	}
	return int64(pax) * pricePerSeat
}

func formatThousand(n int64) string {
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
