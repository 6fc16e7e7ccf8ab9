package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"strings"
)

var (
	reDeadline = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	rePhone    = regexp.MustCompile(`^\+?[\d .\-()]{6,20}$`)
)

// NormalizeAndSanitizeJSON
// - Renames known synonyms (due_date -> deadline)
// - Drops null/empty optionals and malformed optional values
// - Coerces numeric -> string for the amount field
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("due_date", "deadline")
	renamed("due", "deadline")
	renamed("date", "deadline")
	renamed("email", "contact_email")
	renamed("phone", "contact_phone")
	renamed("contact", "contact_name")
	renamed("child", "child_name")

	// 2) amount: coerce numeric to string, drop empties
	if v, ok := m["amount"]; ok {
		switch t := v.(type) {
		case float64:
			m["amount"] = fmt.Sprintf("%.2f", t)
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
			s = strings.TrimSpace(strings.TrimSuffix(s, "€"))
			if s == "" {
				delete(m, "amount")
				dropped = append(dropped, "amount(empty)")
			} else {
				m["amount"] = s
			}
		case nil:
			delete(m, "amount")
			dropped = append(dropped, "amount(null)")
		default:
			delete(m, "amount")
			dropped = append(dropped, "amount(type)")
		}
	}

	// 3) deadline: drop anything that is not YYYY-MM-DD
	if v, ok := m["deadline"].(string); ok {
		s := strings.TrimSpace(v)
		if !reDeadline.MatchString(s) {
			delete(m, "deadline")
			dropped = append(dropped, "deadline(format)")
		} else {
			m["deadline"] = s
		}
	}

	// 4) contact fields: light normalization, malformed optionals get dropped
	if v, ok := m["contact_email"].(string); ok {
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" || !strings.Contains(s, "@") {
			delete(m, "contact_email")
			dropped = append(dropped, "contact_email(invalid)")
		} else {
			m["contact_email"] = s
		}
	}
	if v, ok := m["contact_phone"].(string); ok {
		s := strings.TrimSpace(v)
		if !rePhone.MatchString(s) {
			delete(m, "contact_phone")
			dropped = append(dropped, "contact_phone(invalid)")
		} else {
			m["contact_phone"] = s
		}
	}

	// 5) remove unknown keys
	allowed := map[string]struct{}{
		"title": {}, "description": {}, "deadline": {}, "category": {},
		"contact_name": {}, "contact_email": {}, "contact_phone": {},
		"child_name": {}, "amount": {}, "confidence": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 6) trim obvious strings; empty optionals disappear
	trimKeys := []string{"title", "description", "category", "contact_name", "child_name"}
	for _, k := range trimKeys {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" && k != "title" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.classify.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
