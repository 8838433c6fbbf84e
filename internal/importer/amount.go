package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotAmount = errors.New("not an amount")

// ParseAmount reads a spreadsheet money cell into a decimal. Currency symbols
// and spaces are ignored. When both separators appear, the last one is the
// decimal point. A lone separator followed by exactly three digits groups
// thousands, so "1.500" and "1,500" are both fifteen hundred.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)

	if strings.Trim(clean, "-.,") == "" {
		return decimal.Zero, errNotAmount
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSeparator(clean, ",")
	case lastDot >= 0:
		clean = normalizeSeparator(clean, ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, errNotAmount
	}

	return d, nil
}

func normalizeSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 || len(s)-strings.LastIndex(s, sep)-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
