package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A money value: optional thousands groups, optional 1-2 decimals with
// comma or dot.
const numPat = `(\d+(?:[ \x{00A0}]\d{3})*(?:[.,]\d{1,2})?)`

// Amount patterns in priority order: the stronger the context keyword,
// the more we trust the number next to it.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:total|montant)\s*t\.?t\.?c\.?[^\d\n]{0,12}` + numPat),
	regexp.MustCompile(`(?i)[àa]\s+(?:r[ée]gler|payer)[^\d\n]{0,12}` + numPat),
	regexp.MustCompile(`(?i)(?:montant|prix)[^\d\n]{0,12}` + numPat),
	regexp.MustCompile(`(?i)total[^\d\n]{0,12}` + numPat),
	// Any number glued to the currency glyph, as long as it is not part
	// of a DD/MM/YYYY triplet (the [^/\d] guard).
	regexp.MustCompile(`(?:^|[^/\d])` + numPat + `[ \x{00A0}]?€`),
}

// Amount extracts a monetary amount from text and normalizes it to a
// dot-decimal string with two decimals ("98.00"). Returns "" when no
// pattern matches or the value falls outside [0.01, 1 000 000).
func Amount(text string) string {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := normalizeAmount(m[1]); ok {
			return v
		}
	}
	return ""
}

func normalizeAmount(raw string) (string, bool) {
	s := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	if f < 0.01 || f >= 1_000_000 {
		return "", false
	}
	return fmt.Sprintf("%.2f", f), true
}
