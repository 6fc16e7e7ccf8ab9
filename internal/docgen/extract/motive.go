package extract

import "strings"

// Bucket is one keyword-triggered motive category. Buckets are scanned
// top to bottom and the first match wins; motives are never combined.
type Bucket struct {
	Name     string
	Keywords []string
	Sentence string
}

// ContestationBuckets maps invoice-dispute wording to a canned motive
// sentence. Keywords carry their accentless OCR variants.
var ContestationBuckets = []Bucket{
	{
		Name:     "double-billing",
		Keywords: []string{"déjà payé", "deja paye", "déjà réglé", "deja regle", "déjà été réglé", "deja ete regle", "double prélèvement", "double prelevement", "prélevé deux fois", "preleve deux fois", "facturé deux fois", "facture deux fois", "double facturation"},
		Sentence: "cette facture a déjà été réglée et fait l'objet d'une double facturation",
	},
	{
		Name:     "amount-too-high",
		Keywords: []string{"montant incorrect", "montant erroné", "montant errone", "trop élevé", "trop eleve", "surfacturation", "amount too high"},
		Sentence: "le montant facturé est incorrect et supérieur à ce qui était convenu",
	},
	{
		Name:     "generic-error",
		Keywords: []string{"erreur"},
		Sentence: "cette facture comporte une erreur",
	},
	{
		Name:     "fraud-suspicion",
		Keywords: []string{"fraude", "suspicion", "jamais commandé", "jamais commande", "non commandé", "non commande"},
		Sentence: "je n'ai jamais souscrit ni commandé la prestation facturée",
	},
}

// GenericContestationSentence is used when no bucket matches: a
// fact-free dispute sentence rather than an invented reason.
const GenericContestationSentence = "je conteste cette facture"

// AbsenceBuckets maps absence wording to a motive clause.
var AbsenceBuckets = []Bucket{
	{
		Name:     "medical-appointment",
		Keywords: []string{"rendez-vous médical", "rendez-vous medical", "rdv médical", "rdv medical", "médecin", "medecin", "docteur", "orthodontiste", "dentiste"},
		Sentence: "en raison d'un rendez-vous médical",
	},
	{
		Name:     "fever",
		Keywords: []string{"fièvre", "fievre", "malade", "maladie"},
		Sentence: "pour raison de santé",
	},
}

// ContestationMotive returns the first matching contestation bucket
// sentence, or the generic sentence when nothing matches.
func ContestationMotive(text string) string {
	if s := firstBucket(ContestationBuckets, text); s != "" {
		return s
	}
	return GenericContestationSentence
}

// AbsenceMotive returns the first matching absence bucket sentence, or
// "" so the template renders an explicit blank to fill in.
func AbsenceMotive(text string) string {
	return firstBucket(AbsenceBuckets, text)
}

func firstBucket(buckets []Bucket, text string) string {
	lower := strings.ToLower(text)
	for _, b := range buckets {
		for _, kw := range b.Keywords {
			if strings.Contains(lower, kw) {
				return b.Sentence
			}
		}
	}
	return ""
}
