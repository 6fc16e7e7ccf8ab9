package resolve

import (
	"strings"

	"famorg/internal/docgen/template"
)

// MissingVariables returns the template-required variable names whose
// resolved value is absent, empty or whitespace, in template order.
// Callers use it to prompt the user before committing to a render.
func MissingVariables(tpl *template.Template, vs *VariableSet) []string {
	missing := make([]string, 0)
	for _, name := range tpl.Required {
		if strings.TrimSpace(vs.Value(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
