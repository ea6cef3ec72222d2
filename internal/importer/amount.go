package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errBlankAmount = errors.New("blank amount")

// parseAmount accepts both European ("1.234,56") and dotted ("1,234.56")
// notation. Whichever separator comes last is the decimal separator. A lone
// separator followed by exactly three digits is read as a thousands group,
// unless it is the sheet's declared decimal mark: with mark "." the cell
// "12.500" is 12.5, without it 12500.
func parseAmount(s, mark string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\'':
			return -1
		}

		return r
	}, strings.TrimSpace(s))

	if clean == "" {
		return decimal.Zero, errBlankAmount
	}

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		clean = singleSeparator(clean, ",", mark)
	case lastDot >= 0:
		clean = singleSeparator(clean, ".", mark)
	}

	return decimal.NewFromString(clean)
}

func singleSeparator(s, sep, mark string) string {
	parts := strings.Split(s, sep)
	if len(parts) > 2 || (len(parts[len(parts)-1]) == 3 && sep != mark) {
		return strings.Join(parts, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
