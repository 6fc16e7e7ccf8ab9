package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceRefLabeled(t *testing.T) {
	assert.Equal(t, "CE25/3924", InvoiceRef("Facture n° CE25/3924"))
	assert.Equal(t, "F2024-118", InvoiceRef("invoice number F2024-118 due soon"))
	assert.Equal(t, "AB1234", InvoiceRef("Réf. facture : AB1234"))
}

func TestInvoiceRefToleratesOCRNoise(t *testing.T) {
	// Up to six junk characters may sit between the label and the
	// separator on scanned documents.
	assert.Equal(t, "CE25/3924", InvoiceRef("Facture  *· n° : CE25/3924"))
}

func TestInvoiceRefVendorCode(t *testing.T) {
	assert.Equal(t, "21X45C9B2", InvoiceRef("votre référence 21X45C9B2 merci"))
	assert.Equal(t, "21X45C9B2-F01", InvoiceRef("code 21X45C9B2-F01"))
}

func TestInvoiceRefGenericCode(t *testing.T) {
	assert.Equal(t, "FAC20240112", InvoiceRef("merci de rappeler FAC20240112"))
}

func TestInvoiceRefRejectsSIRETShapedNumbers(t *testing.T) {
	// A 13-digit all-numeric candidate is an account or SIRET number,
	// never an invoice reference.
	assert.Equal(t, "", InvoiceRef("facture n° 1234567890123"))
	// 12 digits is still acceptable.
	assert.Equal(t, "123456789012", InvoiceRef("facture n° 123456789012"))
}

func TestInvoiceRefRequiresDigit(t *testing.T) {
	assert.Equal(t, "", InvoiceRef("facture n° ABCDEF"))
}

func TestInvoiceRefTruncatesSwallowedDate(t *testing.T) {
	assert.Equal(t, "AB1234", InvoiceRef("facture n° AB1234-01/09/2025"))
}

func TestInvoiceRefNoMatch(t *testing.T) {
	assert.Equal(t, "", InvoiceRef("penser à racheter du pain"))
	assert.Equal(t, "", InvoiceRef(""))
}
