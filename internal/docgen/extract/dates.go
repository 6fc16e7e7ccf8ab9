package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var frenchMonths = map[string]int{
	"janvier": 1, "février": 2, "fevrier": 2, "mars": 3, "avril": 4,
	"mai": 5, "juin": 6, "juillet": 7, "août": 8, "aout": 8,
	"septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12, "decembre": 12,
}

const monthPat = `janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[ûu]t|septembre|octobre|novembre|d[ée]cembre`

var (
	reNumericDate = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)
	reMonthDate   = regexp.MustCompile(`(?i)\b(\d{1,2}|1er)\s+(` + monthPat + `)\s+(\d{4})\b`)

	reInvoiceDateNumeric = regexp.MustCompile(`(?i)date\s+(?:de\s+(?:la\s+)?)?facture[^\d\n]{0,8}(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)
	reInvoiceDateMonth   = regexp.MustCompile(`(?i)date\s+(?:de\s+(?:la\s+)?)?facture[^\d\n]{0,8}((?:\d{1,2}|1er)\s+(?:` + monthPat + `)\s+\d{4})`)
)

// InvoiceDate extracts the invoice's own date: a labeled numeric date
// first, then a labeled French month-name date, then any bare numeric
// date. Returned as DD/MM/YYYY, or "" when nothing matches.
func InvoiceDate(text string) string {
	if m := reInvoiceDateNumeric.FindStringSubmatch(text); m != nil {
		if d, ok := normalizeNumericDate(m[1]); ok {
			return d
		}
	}
	if m := reInvoiceDateMonth.FindStringSubmatch(text); m != nil {
		if d, ok := normalizeMonthDate(m[1]); ok {
			return d
		}
	}
	if m := reNumericDate.FindStringSubmatch(text); m != nil {
		if d, ok := assembleDate(m[1], m[2], m[3]); ok {
			return d
		}
	}
	return ""
}

// ExplicitDate scans the whole text for calendar dates, numeric and
// French month-name alike, and returns one only when exactly one unique
// date is present. Two distinct dates is ambiguity, and ambiguity is
// never resolved by guessing. Day, month and year are preserved
// verbatim, never shifted.
func ExplicitDate(text string) string {
	found := map[string]struct{}{}
	var last string
	for _, m := range reNumericDate.FindAllStringSubmatch(text, -1) {
		if d, ok := assembleDate(m[1], m[2], m[3]); ok {
			found[d] = struct{}{}
			last = d
		}
	}
	for _, m := range reMonthDate.FindAllStringSubmatch(text, -1) {
		if d, ok := normalizeMonthDate(m[0]); ok {
			found[d] = struct{}{}
			last = d
		}
	}
	if len(found) != 1 {
		return ""
	}
	return last
}

func normalizeNumericDate(raw string) (string, bool) {
	m := reNumericDate.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return assembleDate(m[1], m[2], m[3])
}

func normalizeMonthDate(raw string) (string, bool) {
	m := reMonthDate.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	dayStr := strings.ToLower(m[1])
	if dayStr == "1er" {
		dayStr = "1"
	}
	month, ok := frenchMonths[foldMonth(m[2])]
	if !ok {
		return "", false
	}
	return assembleDate(dayStr, strconv.Itoa(month), m[3])
}

// foldMonth lowercases and maps the few accented month spellings onto
// the map keys.
func foldMonth(s string) string {
	s = strings.ToLower(s)
	switch s {
	case "février", "fevrier":
		return "février"
	case "août", "aout":
		return "août"
	case "décembre", "decembre":
		return "décembre"
	}
	return s
}

func assembleDate(dayStr, monthStr, yearStr string) (string, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	if year < 100 {
		year += 2000
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2099 {
		return "", false
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
}
