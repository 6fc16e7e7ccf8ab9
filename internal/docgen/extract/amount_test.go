package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountFromCurrencyGlyph(t *testing.T) {
	assert.Equal(t, "98.00", Amount("Payer facture Selfbox - 98,00€"))
	assert.Equal(t, "98.00", Amount("Payer facture Selfbox - 98.00 €"))
}

func TestAmountPrefersTotalTTC(t *testing.T) {
	text := "Sous-total : 100,00 €\nTOTAL TTC : 120,50 €"
	assert.Equal(t, "120.50", Amount(text))
}

func TestAmountKeywordPriority(t *testing.T) {
	// "Montant TTC" outranks a bare "Total" appearing earlier.
	text := "Total : 10,00\nMontant TTC : 42,00"
	assert.Equal(t, "42.00", Amount(text))

	assert.Equal(t, "55.10", Amount("à régler : 55,10"))
	assert.Equal(t, "15.00", Amount("Prix : 15 €"))
}

func TestAmountIgnoresDateTriplets(t *testing.T) {
	// "15/12/2025€" must not yield 2025 as an amount.
	assert.Equal(t, "", Amount("rendez-vous le 15/12/2025€"))
}

func TestAmountDecimalSeparators(t *testing.T) {
	assert.Equal(t, "1234.56", Amount("montant : 1 234,56"))
	assert.Equal(t, "8.90", Amount("total 8.90"))
}

func TestAmountRange(t *testing.T) {
	assert.Equal(t, "", Amount("total : 0,00"))
	assert.Equal(t, "", Amount("montant : 2000000,00"))
}

func TestAmountNoMatch(t *testing.T) {
	assert.Equal(t, "", Amount("aucun chiffre ici"))
}
