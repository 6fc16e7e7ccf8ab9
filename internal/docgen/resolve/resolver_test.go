package resolve

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famorg/internal/docgen/extract"
	"famorg/internal/docgen/template"
	"famorg/internal/entity"
)

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	r := NewResolver(slog.Default())
	r.now = func() time.Time { return testNow }
	return r
}

func testProfile(children ...entity.Child) *entity.Profile {
	return &entity.Profile{
		FirstName:  "Claire",
		LastName:   "Martin",
		Address:    "12 rue des Lilas",
		PostalCode: "69003",
		City:       "Lyon",
		Children:   children,
	}
}

func mustLookup(t *testing.T, id string) *template.Template {
	t.Helper()
	tpl, err := template.Lookup(id)
	require.NoError(t, err)
	return tpl
}

func TestResolvePrecedenceHigherNonEmptyWins(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "resiliation-abonnement")
	task := &entity.Task{
		Title:    "Résilier la salle de sport",
		Deadline: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	vs := r.Resolve(tpl, task, "", testProfile(), map[string]string{
		"customerName": "C. Martin (abonnée n° 7)",
	})

	// Override beats the profile-derived name.
	assert.Equal(t, "C. Martin (abonnée n° 7)", vs.Value("customerName"))
	// Task deadline feeds the date aliases over any profile default.
	assert.Equal(t, "01/04/2025", vs.Value("effectiveDate"))
}

func TestResolveEmptyNeverOverwritesLowerLayer(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "resiliation-abonnement")
	// Task with no contact fields and a zero deadline contributes
	// nothing, so profile values survive.
	vs := r.Resolve(tpl, &entity.Task{Title: "Résilier"}, "", testProfile(), nil)
	assert.Equal(t, "Claire Martin", vs.Value("customerName"))
	assert.Equal(t, "Lyon", vs.Value("customerCity"))
}

func TestResolveOverrideCanDeliberatelyBlank(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "resiliation-abonnement")
	vs := r.Resolve(tpl, nil, "", testProfile(), map[string]string{"customerCity": ""})

	v, present := vs.Get("customerCity")
	assert.True(t, present)
	assert.Equal(t, "", v)
}

func TestResolveProfileAliasesExpand(t *testing.T) {
	vars := ProfileVariables(testProfile(), testNow)
	for _, name := range []string{"parentAddress", "customerAddress", "tenantAddress", "declarantAddress", "senderAddress"} {
		assert.Equal(t, "12 rue des Lilas", vars[name])
	}
	assert.Equal(t, "10/03/2025", vars["todayDate"])
}

func TestResolveAbsenceFutureDateSingleChild(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{
		Title:    "Absence école Héloïse 15 décembre 2025",
		Deadline: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
	}
	profile := testProfile(entity.Child{
		FirstName: "Héloïse",
		BirthDate: time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC),
	})

	vs := r.Resolve(tpl, task, "", profile, nil)
	assert.Equal(t, "Héloïse", vs.Value("childName"))
	assert.Equal(t, "02/06/2018", vs.Value("childBirthDate"))
	assert.Equal(t, "15/12/2025", vs.Value("absenceDate"))
	assert.Equal(t, AbsenceFuture, vs.Value("absenceVerb"))
}

func TestResolveAbsencePastDateUsesPastTense(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école Héloïse 3 février 2025"}
	profile := testProfile(entity.Child{FirstName: "Héloïse"})

	vs := r.Resolve(tpl, task, "", profile, nil)
	assert.Equal(t, "03/02/2025", vs.Value("absenceDate"))
	assert.Equal(t, AbsencePast, vs.Value("absenceVerb"))
}

func TestResolveAbsenceAmbiguousChildWithdrawsDefaults(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école demain"}
	profile := testProfile(
		entity.Child{FirstName: "Héloïse", BirthDate: time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC)},
		entity.Child{FirstName: "Marius", BirthDate: time.Date(2020, time.October, 9, 0, 0, 0, 0, time.UTC)},
	)

	vs := r.Resolve(tpl, task, "", profile, nil)
	// The profile seeded child #1 as a default; ambiguity must remove
	// it entirely, not leave it stale.
	_, present := vs.Get("childName")
	assert.False(t, present)
	_, present = vs.Get("childBirthDate")
	assert.False(t, present)
	_, present = vs.Get("patientName")
	assert.False(t, present)
}

func TestResolveAbsenceMotiveBucket(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école Héloïse", Description: "rdv médical à 10h"}
	profile := testProfile(entity.Child{FirstName: "Héloïse"})

	vs := r.Resolve(tpl, task, "", profile, nil)
	assert.Equal(t, extract.AbsenceBuckets[0].Sentence, vs.Value("absenceReason"))
}

func TestResolveAbsenceNoMotiveLeavesBlank(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école Héloïse"}
	profile := testProfile(entity.Child{FirstName: "Héloïse"})

	vs := r.Resolve(tpl, task, "", profile, nil)
	_, present := vs.Get("absenceReason")
	assert.False(t, present)
}

func TestResolveContestationAttachmentIsAuthoritative(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "contestation-facture")
	task := &entity.Task{
		Title:       "Contester la facture Selfbox - 98,00€",
		Description: "montant incorrect",
	}
	attachment := "Facture n° CE25/3924\nDate de facture : 03/11/2025\nTOTAL TTC : 120,50 €"

	vs := r.Resolve(tpl, task, attachment, testProfile(), nil)
	assert.Equal(t, "CE25/3924", vs.Value("invoiceRef"))
	// The attachment total wins over the 98,00 € found in the title.
	assert.Equal(t, "120.50", vs.Value("invoiceAmount"))
	assert.Equal(t, "03/11/2025", vs.Value("invoiceDate"))
	// The reason is the bucket sentence, never the raw description.
	assert.Equal(t, extract.ContestationBuckets[1].Sentence, vs.Value("contestationReason"))
}

func TestResolveContestationWithoutAttachmentKeepsTaskValues(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "contestation-facture")
	task := &entity.Task{Title: "Contester la facture Selfbox - 98,00€"}

	vs := r.Resolve(tpl, task, "", testProfile(), nil)
	assert.Equal(t, "98.00", vs.Value("invoiceAmount"))
	assert.Equal(t, extract.GenericContestationSentence, vs.Value("contestationReason"))
}

func TestResolveAttestationDomicile(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "attestation-honneur")
	task := &entity.Task{Title: "Attestation de domicile pour l'école"}

	vs := r.Resolve(tpl, task, "", testProfile(), nil)
	assert.Contains(t, vs.Value("declarationSentence"), "12 rue des Lilas")
	assert.Equal(t, AttestationNote, vs.Value("attestationNote"))
}

func TestResolveAttestationGenericNeverCopiesDescription(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "attestation-honneur")
	task := &entity.Task{
		Title:       "Attestation pour l'assurance",
		Description: "le vélo a été volé devant la gare mardi soir",
	}

	vs := r.Resolve(tpl, task, "", testProfile(), nil)
	sentence := vs.Value("declarationSentence")
	assert.NotEmpty(t, sentence)
	assert.NotContains(t, sentence, "vélo")
}

func TestMissingVariables(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "contestation-facture")
	vs := r.Resolve(tpl, nil, "", testProfile(), nil)

	missing := MissingVariables(tpl, vs)
	assert.Contains(t, missing, "invoiceRef")
	assert.Contains(t, missing, "invoiceAmount")
	assert.Contains(t, missing, "invoiceDate")
	assert.NotContains(t, missing, "customerName")
	assert.NotContains(t, missing, "contestationReason")
}

func TestResolveAbsenceOverridesSurviveAmbiguousChild(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école demain"}
	profile := testProfile(
		entity.Child{FirstName: "Héloïse", BirthDate: time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC)},
		entity.Child{FirstName: "Marius", BirthDate: time.Date(2020, time.October, 9, 0, 0, 0, 0, time.UTC)},
	)

	vs := r.Resolve(tpl, task, "", profile, map[string]string{
		"childBirthDate": "01/01/2020",
		"patientName":    "Marius Martin",
	})

	// Ambiguity withdraws the profile-seeded child identity, but a
	// caller override always wins over augmentation.
	_, present := vs.Get("childName")
	assert.False(t, present)
	assert.Equal(t, "01/01/2020", vs.Value("childBirthDate"))
	assert.Equal(t, "Marius Martin", vs.Value("patientName"))
}

func TestResolveAbsenceResolvedChildKeepsPinnedFields(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "absence-ecole")
	task := &entity.Task{Title: "Absence école Héloïse"}
	profile := testProfile(
		entity.Child{FirstName: "Héloïse", BirthDate: time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC)},
	)

	vs := r.Resolve(tpl, task, "", profile, map[string]string{
		"patientName":    "H. Martin (dossier 12)",
		"childBirthDate": "02/06/2018 (acte n° 331)",
	})

	assert.Equal(t, "Héloïse", vs.Value("childName"))
	assert.Equal(t, "H. Martin (dossier 12)", vs.Value("patientName"))
	assert.Equal(t, "02/06/2018 (acte n° 331)", vs.Value("childBirthDate"))
}

func TestResolveAttestationDomicileWithoutAddressLeavesBlank(t *testing.T) {
	r := newTestResolver()
	tpl := mustLookup(t, "attestation-honneur")
	task := &entity.Task{Title: "Attestation de domicile pour l'école"}
	profile := &entity.Profile{FirstName: "Claire", LastName: "Martin"}

	vs := r.Resolve(tpl, task, "", profile, nil)
	// No address fact: a sworn sentence ending in nothing would be
	// worse than a blank to fill in by hand.
	_, present := vs.Get("declarationSentence")
	assert.False(t, present)
	assert.Contains(t, MissingVariables(tpl, vs), "declarationSentence")
}
