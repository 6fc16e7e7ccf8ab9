package resolve

// One physical fact feeds many template-specific variable names. The
// alias tables are expanded mechanically by the readers instead of
// being hand-enumerated per call site.

// profileAliases maps a canonical profile fact to every variable name a
// template may ask it under.
var profileAliases = map[string][]string{
	"fullName":   {"parentName", "customerName", "tenantName", "declarantName", "senderName"},
	"address":    {"parentAddress", "customerAddress", "tenantAddress", "declarantAddress", "senderAddress"},
	"postalCode": {"parentPostalCode", "customerPostalCode", "tenantPostalCode", "declarantPostalCode", "senderPostalCode"},
	"city":       {"parentCity", "customerCity", "tenantCity", "declarantCity", "senderCity"},
	"email":      {"parentEmail", "customerEmail", "senderEmail"},
}

// deadlineAliases are the date-role names derived from a task deadline.
var deadlineAliases = []string{
	"absenceDate", "startDate", "effectiveDate", "eventDate", "appointmentDate",
}

func expandAliases(dst map[string]string, aliases []string, value string) {
	if value == "" {
		return
	}
	for _, name := range aliases {
		dst[name] = value
	}
}
