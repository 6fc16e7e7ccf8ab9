package extract

import (
	"regexp"
	"strings"
)

// Explicit child-name phrases. These fire before any token matching
// against the profile's children.
// The capture stays case-sensitive: a child name is capitalized, and a
// lowercase word after "absence école" ("demain") must not be taken for
// one.
var childPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:absence\s+(?:[ée]cole|cr[èe]che))\s+(\p{Lu}[\p{L}'\-]+)`),
	regexp.MustCompile(`(?i:justificatif\s+d['’]absence\s+(?:de|pour))\s+(\p{Lu}[\p{L}'\-]+)`),
	regexp.MustCompile(`(?i:absence\s+de)\s+(\p{Lu}[\p{L}'\-]+)`),
}

// ChildName resolves which child a text is about.
//
// Strategy (a): an explicit phrase ("absence école <Name>", "absence de
// <Name>") wins outright, provided the captured name is one of the
// profile's children when the profile has any.
//
// Strategy (b): otherwise the children's first names are matched as
// tokens against the text; the result is kept only when exactly one
// child matches, or when the profile has exactly one child. Anything
// else returns "": a blank, never a default to the first child.
func ChildName(text string, children []string) string {
	for _, re := range childPhrasePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := m[1]
		if len(children) == 0 {
			return name
		}
		for _, c := range children {
			if strings.EqualFold(c, name) {
				return c
			}
		}
	}

	var matched []string
	for _, c := range children {
		if c == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(c) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			matched = append(matched, c)
		}
	}
	switch {
	case len(matched) == 1:
		return matched[0]
	case len(matched) == 0 && len(children) == 1:
		return children[0]
	default:
		return ""
	}
}
