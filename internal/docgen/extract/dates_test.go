package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceDateLabeled(t *testing.T) {
	assert.Equal(t, "03/02/2025", InvoiceDate("Date de facture : 03/02/2025"))
	assert.Equal(t, "03/02/2025", InvoiceDate("date facture 03-02-2025"))
	assert.Equal(t, "07/04/2025", InvoiceDate("Date de la facture : 7 avril 2025"))
}

func TestInvoiceDateBareFallback(t *testing.T) {
	assert.Equal(t, "15/01/2025", InvoiceDate("émise le 15/01/2025 à Lyon"))
	assert.Equal(t, "15/01/2025", InvoiceDate("émise le 15/01/25"))
}

func TestInvoiceDateNoMatch(t *testing.T) {
	assert.Equal(t, "", InvoiceDate("pas de date ici"))
}

func TestExplicitDateSingle(t *testing.T) {
	assert.Equal(t, "15/12/2025", ExplicitDate("Absence école Héloïse 15 décembre 2025"))
	assert.Equal(t, "01/09/2024", ExplicitDate("rentrée le 01/09/2024"))
	// The first of the month.
	assert.Equal(t, "01/06/2025", ExplicitDate("kermesse le 1er juin 2025"))
}

func TestExplicitDatePreservedVerbatim(t *testing.T) {
	// Day, month and year are never shifted, even for past dates.
	assert.Equal(t, "02/01/2019", ExplicitDate("contrat signé le 02/01/2019"))
}

func TestExplicitDateAmbiguous(t *testing.T) {
	// Two distinct dates: ambiguity is never resolved by guessing.
	assert.Equal(t, "", ExplicitDate("du 12/05/2025 au 14/05/2025"))
	assert.Equal(t, "", ExplicitDate("rien à signaler"))
}

func TestExplicitDateDuplicatesCollapse(t *testing.T) {
	// The same date written twice, in two notations, is still a single
	// unique date.
	assert.Equal(t, "15/12/2025", ExplicitDate("le 15/12/2025, soit le 15 décembre 2025"))
}
