// Package template holds the static catalogue of administrative
// document skeletons. A template is data only: an id, the variables it
// requires, a body with {{name}} placeholders, and the rule metadata the
// resolver needs (kind, attachment-authoritative fields).
package template

import "errors"

// Kind selects which augmentation rules the resolver applies.
type Kind string

const (
	KindGeneric      Kind = "generic"
	KindAbsence      Kind = "absence"
	KindContestation Kind = "contestation"
	KindAttestation  Kind = "attestation"
)

// ErrUnknownTemplate is returned for an id that is not in the
// catalogue. This is a caller error and the only hard failure in the
// generation path.
var ErrUnknownTemplate = errors.New("unknown template")

// Template is one document skeleton.
type Template struct {
	ID    string
	Title string
	Kind  Kind

	// Required lists the variables the template needs, in body order.
	// Preview reports the ones that resolve empty.
	Required []string

	// AttachmentFields are the variables for which an attached source
	// document, when present, is authoritative over values derived from
	// free text.
	AttachmentFields []string

	Body string
}

// Lookup returns the template for id or ErrUnknownTemplate.
func Lookup(id string) (*Template, error) {
	for _, t := range catalogue {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrUnknownTemplate
}

// All returns the catalogue in declaration order.
func All() []*Template {
	out := make([]*Template, len(catalogue))
	copy(out, catalogue)
	return out
}
