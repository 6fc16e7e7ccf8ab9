// Package render fills a template body with resolved variables and lays
// the result out as a paginated PDF.
package render

import (
	"regexp"
	"strings"

	"famorg/internal/docgen/normalize"
	"famorg/internal/docgen/resolve"
	"famorg/internal/docgen/template"
)

var rePlaceholder = regexp.MustCompile(`\{\{([A-Za-z][A-Za-z0-9_]*)\}\}`)

// Fill substitutes {{name}} tokens with resolved values, runs the
// typographic normalizer, then turns whatever is still unresolved into
// blank-line markers.
func Fill(tpl *template.Template, vs *resolve.VariableSet) string {
	content := rePlaceholder.ReplaceAllStringFunc(tpl.Body, func(tok string) string {
		name := tok[2 : len(tok)-2]
		if v, ok := vs.Get(name); ok && strings.TrimSpace(v) != "" {
			return v
		}
		return tok
	})
	content = normalize.Normalize(content)
	return normalize.StripUnresolved(content)
}
