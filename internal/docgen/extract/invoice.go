// Package extract holds the deterministic pattern extractors that turn
// free text (task titles, descriptions, attachment text) into candidate
// facts. Every function is total: it returns the empty string when
// nothing matches, and it never guesses. Precision over recall.
package extract

import (
	"regexp"
	"strings"
)

// Labeled invoice references. The {0,6} runs absorb OCR noise between
// the label and the separator ("Facture  *n° X", "invoice   no: X").
var (
	reInvoiceLabeled = regexp.MustCompile(`(?i)(?:facture|invoice)[^\nA-Za-z0-9]{0,6}(?:number|num(?:[ée]ro)?|n[°º]|n[o0]\.?|#)[^\nA-Za-z0-9]{0,6}([A-Za-z0-9][A-Za-z0-9/\-.]{1,23})`)
	reInvoiceRef     = regexp.MustCompile(`(?i)r[ée]f(?:[ée]rence)?\.?[^\n]{0,6}?facture[^\nA-Za-z0-9]{0,6}([A-Za-z0-9][A-Za-z0-9/\-.]{1,23})`)

	// Vendor-style structured codes: two digits, a letter, then 5-8
	// alphanumerics, optionally a dashed second segment.
	reInvoiceVendor = regexp.MustCompile(`\b\d{2}[A-Z][A-Z0-9]{5,8}(?:-[A-Z0-9]{1,6})?\b`)

	// Generic short code: 2-4 letters glued to 4+ digits.
	reInvoiceGeneric = regexp.MustCompile(`\b[A-Za-z]{2,4}-?\d{4,}\b`)

	reAllDigits = regexp.MustCompile(`^\d+$`)
	reHasDigit  = regexp.MustCompile(`\d`)
	reDateLike  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
)

// InvoiceRef extracts an invoice reference from text, or "" when no
// candidate survives the guards. Patterns are tried in priority order
// and the first surviving match wins.
func InvoiceRef(text string) string {
	for _, re := range []*regexp.Regexp{reInvoiceLabeled, reInvoiceRef} {
		if m := re.FindStringSubmatch(text); m != nil {
			if ref := vetInvoiceRef(m[1]); ref != "" {
				return ref
			}
		}
	}
	for _, re := range []*regexp.Regexp{reInvoiceVendor, reInvoiceGeneric} {
		if m := re.FindString(text); m != "" {
			if ref := vetInvoiceRef(m); ref != "" {
				return ref
			}
		}
	}
	return ""
}

// vetInvoiceRef applies the shared candidate guards: a reference must
// contain a digit, an all-digit run longer than 12 is a SIRET or an
// account number rather than an invoice id, and anything swallowed past
// an embedded date is cut off.
func vetInvoiceRef(cand string) string {
	cand = strings.TrimRight(cand, "-/.,;:")
	if loc := reDateLike.FindStringIndex(cand); loc != nil {
		if loc[0] == 0 {
			return ""
		}
		cand = strings.TrimRight(cand[:loc[0]], "-/.,;: ")
	}
	if !reHasDigit.MatchString(cand) {
		return ""
	}
	if reAllDigits.MatchString(cand) && len(cand) > 12 {
		return ""
	}
	return cand
}
