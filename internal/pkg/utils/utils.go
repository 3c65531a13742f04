package utils

import (
	"fmt"
	"math"
	"strconv"
)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatRupees formats a fare with thousands separators and paise
// Example: 5400.5 -> "Rs 5,400.50"
func FormatRupees(amount float64) string {
	paise := int64(math.Round(amount * 100))
	if paise == 0 {
		return "Rs 0.00"
	}

	negative := paise < 0
	if negative {
		paise = -paise
	}

	var result []byte
	str := strconv.FormatInt(paise/100, 10)

	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	formatted := fmt.Sprintf("%s.%02d", result, paise%100)
	if negative {
		return "Rs -" + formatted
	}
	return "Rs " + formatted
}
