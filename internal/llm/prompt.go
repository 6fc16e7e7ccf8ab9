package llm

import "strings"

// BuildSystemPrompt composes the system message with the category
// taxonomy, family context, and strict-but-practical formatting rules.
func BuildSystemPrompt(req ClassifyRequest) string {
	cats := req.AllowedCategories
	if len(cats) == 0 {
		cats = DefaultCategories
	}

	var ctxBits []string
	if n := strings.TrimSpace(req.Family.ParentName); n != "" {
		ctxBits = append(ctxBits, "Parent: "+n+".")
	}
	if len(req.Family.Children) > 0 {
		ctxBits = append(ctxBits, "Children: "+strings.Join(req.Family.Children, ", ")+".")
	}
	if c := strings.TrimSpace(req.Family.City); c != "" {
		ctxBits = append(ctxBits, "City: "+c+".")
	}

	parts := []string{
		"You turn a forwarded email or pasted note (usually French) into ONE actionable household task.",
		"Return ONLY JSON that matches the provided JSON Schema.",
		"The 'title' is a short imperative in the language of the input, e.g. \"Payer facture Selfbox - 98,00€\".",
		"Use ISO-8601 dates (YYYY-MM-DD) for 'deadline'; omit it when the text gives none.",
		"Category MUST be exactly one of: " + strings.Join(cats, ", ") + ". If uncertain, use 'other'.",
		"Amounts are EUR decimals with a dot, e.g. \"98.00\".",
		"If the text concerns one of the listed children, set 'child_name' to that exact name; otherwise omit it.",
		"Contact fields come from the signature or sender; never invent them.",
		"Family context: " + strings.Join(ctxBits, " "),
		"Never output null. If a field is not present, omit it.",
	}
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		parts = append(parts, "If dates are ambiguous, prefer timezone: "+tz+".")
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages subject/sender hints plus the body, capped so
// a long email thread cannot blow up the request.
func BuildUserPrompt(req ClassifyRequest) string {
	var b strings.Builder
	if s := strings.TrimSpace(req.Subject); s != "" {
		b.WriteString("Subject: ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	if s := strings.TrimSpace(req.SenderHint); s != "" {
		b.WriteString("From: ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\nText (first ~4k chars):\n")
	text := req.Text
	if len(text) > 4000 {
		text = text[:4000]
	}
	b.WriteString(text)
	return b.String()
}
