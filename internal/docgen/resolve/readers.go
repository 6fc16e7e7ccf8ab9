package resolve

import (
	"time"

	"famorg/internal/docgen/extract"
	"famorg/internal/entity"
)

// DateLayout is the calendar format used in generated documents.
const DateLayout = "02/01/2006"

// ProfileVariables maps profile facts onto the role-prefixed variable
// names plus today's date. The first child is offered as a default; the
// absence augmentation withdraws it again when the child is ambiguous.
func ProfileVariables(p *entity.Profile, now time.Time) map[string]string {
	vars := make(map[string]string, 24)
	if p == nil {
		return vars
	}
	expandAliases(vars, profileAliases["fullName"], p.FullName())
	expandAliases(vars, profileAliases["address"], p.Address)
	expandAliases(vars, profileAliases["postalCode"], p.PostalCode)
	expandAliases(vars, profileAliases["city"], p.City)
	expandAliases(vars, profileAliases["email"], p.Email)
	vars["todayDate"] = now.Format(DateLayout)
	if len(p.Children) > 0 {
		first := p.Children[0]
		vars["childName"] = first.FirstName
		vars["patientName"] = first.FirstName
		if !first.BirthDate.IsZero() {
			vars["childBirthDate"] = first.BirthDate.Format(DateLayout)
		}
	}
	return vars
}

// TaskVariables maps a task's own fields: contacts one-to-one, the
// deadline under every date-role alias, and whatever facts the pattern
// extractors can pull from the task's free text.
func TaskVariables(t *entity.Task) map[string]string {
	vars := make(map[string]string, 16)
	if t == nil {
		return vars
	}
	if t.ContactName != "" {
		vars["contactName"] = t.ContactName
		vars["recipientName"] = t.ContactName
		vars["proxyName"] = t.ContactName
	}
	if t.ContactEmail != "" {
		vars["contactEmail"] = t.ContactEmail
	}
	if t.ContactPhone != "" {
		vars["contactPhone"] = t.ContactPhone
		vars["parentPhone"] = t.ContactPhone
	}
	if !t.Deadline.IsZero() {
		expandAliases(vars, deadlineAliases, t.Deadline.Format(DateLayout))
	}
	text := t.FreeText()
	vars["invoiceRef"] = extract.InvoiceRef(text)
	vars["invoiceAmount"] = extract.Amount(text)
	vars["invoiceDate"] = extract.InvoiceDate(text)
	return vars
}

// AttachmentVariables runs the invoice extractors over the text pulled
// out of an attached source document. The resolver overlays the result
// only for the fields the template declares attachment-authoritative.
func AttachmentVariables(text string) map[string]string {
	if text == "" {
		return nil
	}
	return map[string]string{
		"invoiceRef":    extract.InvoiceRef(text),
		"invoiceAmount": extract.Amount(text),
		"invoiceDate":   extract.InvoiceDate(text),
	}
}
