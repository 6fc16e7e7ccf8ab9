package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContestationMotiveBuckets(t *testing.T) {
	assert.Equal(t, ContestationBuckets[0].Sentence, ContestationMotive("cette facture a déjà été réglée le mois dernier"))
	assert.Equal(t, ContestationBuckets[1].Sentence, ContestationMotive("le montant incorrect ne correspond pas au devis"))
	assert.Equal(t, ContestationBuckets[3].Sentence, ContestationMotive("je n'ai jamais commandé cela, suspicion de fraude"))
}

func TestContestationMotiveFirstMatchWins(t *testing.T) {
	// Double billing outranks the amount bucket even when both match;
	// motives are never combined.
	text := "prélevé deux fois et montant incorrect"
	assert.Equal(t, ContestationBuckets[0].Sentence, ContestationMotive(text))
}

func TestContestationMotiveGenericFallback(t *testing.T) {
	got := ContestationMotive("je ne suis pas d'accord")
	assert.Equal(t, GenericContestationSentence, got)
	// The fallback is fact-free.
	assert.False(t, strings.Contains(got, "montant"))
}

func TestAbsenceMotive(t *testing.T) {
	assert.Equal(t, AbsenceBuckets[0].Sentence, AbsenceMotive("rdv médical à 10h"))
	assert.Equal(t, AbsenceBuckets[1].Sentence, AbsenceMotive("elle a de la fièvre"))
	// No bucket: explicit blank to fill, never an invented reason.
	assert.Equal(t, "", AbsenceMotive("absent demain"))
}
