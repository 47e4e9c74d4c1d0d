package currency

import (
	"fmt"
	"math"
)

// FormatUSD renders an amount as "$1,234.56" for display fields on
// normalized legs and trip candidates.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	intStr := fmt.Sprintf("%d", cents/100)
	formatted := addThousandsSeparator(intStr, ",")

	result := fmt.Sprintf("$%s.%02d", formatted, cents%100)
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
