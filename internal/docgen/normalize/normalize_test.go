package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesDotRuns(t *testing.T) {
	assert.Equal(t, "à suivre…", Normalize("à suivre..."))
	assert.Equal(t, "euh… oui", Normalize("euh.. oui"))
	// A single period is left alone.
	assert.Equal(t, "Fin.", Normalize("Fin."))
}

func TestNormalizeBindsAmountToCurrency(t *testing.T) {
	// Both spellings end up with a non-breaking space between the
	// amount and the glyph, so line wrapping can never separate them.
	assert.Equal(t, "98.00"+NBSP+"€", Normalize("98.00 €"))
	assert.Equal(t, "98,00"+NBSP+"€", Normalize("98,00€"))
	assert.Equal(t, "montant de 120,50"+NBSP+"€ au total", Normalize("montant de 120,50 € au total"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"98.00 €", "98,00€", "reste à payer... 12 €."} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "re-normalizing %q must be a no-op", in)
	}
}

func TestNormalizeReattachesStrayPeriod(t *testing.T) {
	assert.Equal(t, "12"+NBSP+"€.", Normalize("12 € ."))
}

func TestStripUnresolved(t *testing.T) {
	out := StripUnresolved("Je soussigné(e) {{parentName}} certifie…")
	assert.False(t, strings.Contains(out, "{{"))
	assert.True(t, strings.Contains(out, BlankMarker))
	// Resolved text passes through untouched.
	assert.Equal(t, "rien à remplacer", StripUnresolved("rien à remplacer"))
}
