package llm

// BuildTaskJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We pass this to the provider as a structured output constraint and also use it
// locally to validate.
func BuildTaskJSONSchema(allowedCategories []string) map[string]any {
	props := map[string]any{
		"title":         map[string]any{"type": "string", "minLength": 1, "maxLength": 120},
		"description":   map[string]any{"type": "string"},
		"deadline":      map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"category":      map[string]any{"type": "string"},
		"contact_name":  map[string]any{"type": "string"},
		"contact_email": map[string]any{"type": "string", "pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`},
		"contact_phone": map[string]any{"type": "string"},
		"child_name":    map[string]any{"type": "string"},
		"amount":        map[string]any{"type": "string", "pattern": `^\d+(\.\d{1,2})?$`},
		"confidence":    map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}
	required := []string{"title"}

	if len(allowedCategories) > 0 {
		props["category"] = map[string]any{
			"type": "string",
			"enum": allowedCategories,
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
