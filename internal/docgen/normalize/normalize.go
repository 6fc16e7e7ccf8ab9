// Package normalize applies the typographic clean-up pass that runs
// after placeholder substitution and before unresolved-placeholder
// cleanup.
package normalize

import "regexp"

// NBSP is the non-breaking space used to bind an amount to its currency
// glyph.
const NBSP = "\u00a0"

// BlankMarker is the fixed-width run of underscores rendered in place of
// a variable that could not be resolved.
const BlankMarker = "______________________"

var (
	reDots         = regexp.MustCompile(`\.{2,}`)
	reAmountEuro   = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)[ \x{00A0}]*€`)
	reStrayPeriod  = regexp.MustCompile(`€[ \x{00A0}]+\.`)
	rePlaceholders = regexp.MustCompile(`\{\{[A-Za-z][A-Za-z0-9_]*\}\}`)
)

// Normalize runs the full clean-up pass. It is idempotent: normalizing
// an already-normalized string is a no-op.
func Normalize(s string) string {
	// Runs of literal dots leaking from source free text collapse into
	// a single ellipsis glyph.
	s = reDots.ReplaceAllString(s, "…")
	// Bind amount and currency glyph so line wrapping cannot separate
	// "98,00" from "€".
	s = reAmountEuro.ReplaceAllString(s, "${1}"+NBSP+"€")
	// Re-attach a sentence-ending period the binding may have orphaned.
	s = reStrayPeriod.ReplaceAllString(s, "€.")
	return s
}

// StripUnresolved replaces any placeholder still present after
// substitution with the blank-line marker, so a literal "{{name}}"
// never reaches the rendered document.
func StripUnresolved(s string) string {
	return rePlaceholders.ReplaceAllString(s, BlankMarker)
}
