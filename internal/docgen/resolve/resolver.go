package resolve

import (
	"log/slog"
	"time"

	"famorg/internal/docgen/template"
	"famorg/internal/entity"
)

// Resolver merges the precedence layers into a VariableSet and applies
// the template's augmentation rules. It is pure: all I/O (attachment
// fetch, text extraction) happens before Resolve is called.
type Resolver struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger, now: time.Now}
}

// Resolve builds the variable set for one generation or preview call.
//
// Layers are merged lowest to highest: profile defaults, task-derived
// values, attachment-derived values (only for the fields the template
// declares the attachment authoritative for), then caller overrides.
// A non-empty higher layer always wins; an empty or absent value never
// erases a lower one, except in the override layer, where an empty
// string is a deliberate blank.
func (r *Resolver) Resolve(tpl *template.Template, task *entity.Task, attachmentText string, profile *entity.Profile, overrides map[string]string) *VariableSet {
	vs := NewVariableSet()

	vs.Overlay(ProfileVariables(profile, r.now()))
	if task != nil {
		vs.Overlay(TaskVariables(task))
	}
	if attachmentText != "" && len(tpl.AttachmentFields) > 0 {
		attach := AttachmentVariables(attachmentText)
		for _, field := range tpl.AttachmentFields {
			vs.SetNonEmpty(field, attach[field])
		}
	}
	for k, v := range overrides {
		vs.Set(k, v)
	}

	r.augment(tpl, vs, task, profile, overrides)

	r.logger.Debug("docgen.resolve.done",
		"template_id", tpl.ID,
		"variables", len(vs.m),
		"has_task", task != nil,
		"has_attachment_text", attachmentText != "",
	)
	return vs
}

// pinned reports whether the caller overrode a key; augmentation rules
// never touch a pinned key.
func pinned(overrides map[string]string, key string) bool {
	_, ok := overrides[key]
	return ok
}
