package resolve

import (
	"strings"
	"time"

	"famorg/internal/docgen/extract"
	"famorg/internal/docgen/template"
	"famorg/internal/entity"
)

// Tense sentences for absence letters.
const (
	AbsenceFuture = "sera absent(e)"
	AbsencePast   = "a été absent(e)"
)

// AttestationNote invites the user to refine a generated declaration.
const AttestationNote = "Vous pouvez préciser cette attestation en modifiant la tâche associée."

var domicileKeywords = []string{"domicile", "adresse", "résidence", "residence", "logement", "hébergement", "hebergement", "habite"}

func (r *Resolver) augment(tpl *template.Template, vs *VariableSet, task *entity.Task, profile *entity.Profile, overrides map[string]string) {
	switch tpl.Kind {
	case template.KindAbsence:
		r.augmentAbsence(vs, task, profile, overrides)
	case template.KindContestation:
		r.augmentContestation(vs, task, overrides)
	case template.KindAttestation:
		r.augmentAttestation(vs, task, profile, overrides)
	}
}

// augmentAbsence settles the absence date, the verb tense, the motive
// sentence and the identity of the absent child.
func (r *Resolver) augmentAbsence(vs *VariableSet, task *entity.Task, profile *entity.Profile, overrides map[string]string) {
	text := ""
	if task != nil {
		text = task.FreeText()
	}

	// Absence date: a single explicit date in the task text beats the
	// deadline-derived alias. Explicit past dates are preserved
	// verbatim; the date is never shifted or rejected for being old.
	if !pinned(overrides, "absenceDate") {
		if d := extract.ExplicitDate(text); d != "" {
			vs.Set("absenceDate", d)
		}
	}

	if !pinned(overrides, "absenceVerb") {
		verb := AbsenceFuture
		if d, err := time.Parse(DateLayout, vs.Value("absenceDate")); err == nil {
			today := r.now()
			today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
			if d.Before(today) {
				verb = AbsencePast
			}
		}
		vs.Set("absenceVerb", verb)
	}

	if !pinned(overrides, "absenceReason") {
		// No bucket match leaves the reason unresolved so the letter
		// renders a blank to fill in by hand.
		if motive := extract.AbsenceMotive(text); motive != "" {
			vs.Set("absenceReason", motive)
		}
	}

	r.resolveChild(vs, text, profile, overrides)
}

// resolveChild runs child disambiguation. On ambiguity the profile
// defaults are withdrawn: a letter about the wrong child is worse than
// a blank.
func (r *Resolver) resolveChild(vs *VariableSet, text string, profile *entity.Profile, overrides map[string]string) {
	if pinned(overrides, "childName") {
		return
	}
	var children []entity.Child
	if profile != nil {
		children = profile.Children
	}
	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.FirstName)
	}

	name := extract.ChildName(text, names)
	if name == "" {
		for _, key := range []string{"childName", "childBirthDate", "patientName"} {
			if !pinned(overrides, key) {
				vs.Delete(key)
			}
		}
		return
	}
	vs.Set("childName", name)
	if !pinned(overrides, "patientName") {
		vs.Set("patientName", name)
	}
	if !pinned(overrides, "childBirthDate") {
		vs.Delete("childBirthDate")
		for _, c := range children {
			if strings.EqualFold(c.FirstName, name) && !c.BirthDate.IsZero() {
				vs.Set("childBirthDate", c.BirthDate.Format(DateLayout))
				break
			}
		}
	}
}

// augmentContestation picks the dispute motive. The reason is always a
// bucket sentence, never the task's raw description.
func (r *Resolver) augmentContestation(vs *VariableSet, task *entity.Task, overrides map[string]string) {
	if pinned(overrides, "contestationReason") {
		return
	}
	text := ""
	if task != nil {
		text = task.FreeText()
	}
	vs.Set("contestationReason", extract.ContestationMotive(text))
}

// augmentAttestation builds the sworn-declaration sentence. Only a
// small set of safely-generalizable facts is detected; the raw task
// description is never copied into a sworn statement.
func (r *Resolver) augmentAttestation(vs *VariableSet, task *entity.Task, profile *entity.Profile, overrides map[string]string) {
	if !pinned(overrides, "attestationNote") {
		vs.Set("attestationNote", AttestationNote)
	}
	if pinned(overrides, "declarationSentence") {
		return
	}

	text := ""
	if task != nil {
		text = strings.ToLower(task.FreeText())
	}
	for _, kw := range domicileKeywords {
		if strings.Contains(text, kw) {
			addr := vs.Value("declarantAddress")
			if addr == "" {
				// No address fact to swear to: leave the sentence
				// unresolved so the letter renders a blank and the
				// preview reports it.
				return
			}
			sentence := "je réside à l'adresse suivante : " + addr
			if city := strings.TrimSpace(vs.Value("declarantPostalCode") + " " + vs.Value("declarantCity")); city != "" {
				sentence += ", " + city
			}
			vs.Set("declarationSentence", sentence)
			return
		}
	}
	vs.Set("declarationSentence", "les informations mentionnées dans la présente déclaration sont exactes")
}
