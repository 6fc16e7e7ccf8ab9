package template

var catalogue = []*Template{
	{
		ID:    "absence-ecole",
		Title: "Justificatif d'absence scolaire",
		Kind:  KindAbsence,
		Required: []string{
			"parentName", "parentAddress", "parentPostalCode", "parentCity",
			"childName", "childBirthDate", "absenceVerb", "absenceDate",
			"absenceReason", "todayDate",
		},
		Body: `{{parentName}}
{{parentAddress}}
{{parentPostalCode}} {{parentCity}}

Objet : Justificatif d'absence

Madame, Monsieur,

Je soussigné(e) {{parentName}} vous informe que mon enfant {{childName}}, né(e) le {{childBirthDate}}, {{absenceVerb}} le {{absenceDate}} {{absenceReason}}.

Je vous prie de bien vouloir excuser cette absence et vous remercie de votre compréhension.

Fait à {{parentCity}}, le {{todayDate}}.

{{parentName}}`,
	},
	{
		ID:    "contestation-facture",
		Title: "Contestation de facture",
		Kind:  KindContestation,
		Required: []string{
			"customerName", "customerAddress", "customerPostalCode", "customerCity",
			"invoiceRef", "invoiceAmount", "invoiceDate", "contestationReason",
			"todayDate",
		},
		AttachmentFields: []string{"invoiceRef", "invoiceAmount", "invoiceDate"},
		Body: `{{customerName}}
{{customerAddress}}
{{customerPostalCode}} {{customerCity}}

Objet : Contestation de la facture n° {{invoiceRef}}

Madame, Monsieur,

Je conteste par la présente la facture n° {{invoiceRef}} du {{invoiceDate}}, d'un montant de {{invoiceAmount}} €, car {{contestationReason}}.

Je vous demande en conséquence de procéder à la rectification de cette facture et de suspendre son recouvrement dans l'attente de votre réponse.

Dans cette attente, je vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.

Fait à {{customerCity}}, le {{todayDate}}.

{{customerName}}`,
	},
	{
		ID:    "attestation-honneur",
		Title: "Attestation sur l'honneur",
		Kind:  KindAttestation,
		Required: []string{
			"declarantName", "declarantAddress", "declarantPostalCode", "declarantCity",
			"declarationSentence", "todayDate",
		},
		Body: `ATTESTATION SUR L'HONNEUR

Je soussigné(e) {{declarantName}}, demeurant {{declarantAddress}}, {{declarantPostalCode}} {{declarantCity}}, atteste sur l'honneur que {{declarationSentence}}.

{{attestationNote}}

J'ai connaissance des sanctions pénales encourues en cas de fausse déclaration.

Fait pour servir et valoir ce que de droit.

Fait à {{declarantCity}}, le {{todayDate}}.

{{declarantName}}`,
	},
	{
		ID:    "procuration",
		Title: "Procuration",
		Kind:  KindGeneric,
		Required: []string{
			"senderName", "senderAddress", "senderPostalCode", "senderCity",
			"proxyName", "effectiveDate", "todayDate",
		},
		Body: `PROCURATION

Je soussigné(e) {{senderName}}, demeurant {{senderAddress}}, {{senderPostalCode}} {{senderCity}}, donne par la présente procuration à {{proxyName}} afin d'agir en mon nom et pour mon compte à compter du {{effectiveDate}}.

La présente procuration est consentie pour la démarche suivante : {{procurationScope}}

Fait à {{senderCity}}, le {{todayDate}}.

Signature du mandant :                    Signature du mandataire :

{{senderName}}                            {{proxyName}}`,
	},
	{
		ID:    "resiliation-abonnement",
		Title: "Résiliation d'abonnement",
		Kind:  KindGeneric,
		Required: []string{
			"customerName", "customerAddress", "customerPostalCode", "customerCity",
			"contractRef", "effectiveDate", "todayDate",
		},
		Body: `{{customerName}}
{{customerAddress}}
{{customerPostalCode}} {{customerCity}}

Objet : Résiliation du contrat n° {{contractRef}}

Madame, Monsieur,

Je vous informe par la présente de ma décision de résilier le contrat référencé n° {{contractRef}} à compter du {{effectiveDate}}.

Je vous remercie de bien vouloir m'adresser une confirmation écrite de cette résiliation ainsi que, le cas échéant, le solde de tout compte.

Fait à {{customerCity}}, le {{todayDate}}.

{{customerName}}`,
	},
	{
		ID:    "autorisation-sortie",
		Title: "Autorisation de sortie scolaire",
		Kind:  KindAbsence,
		Required: []string{
			"parentName", "childName", "eventDate", "todayDate",
		},
		Body: `AUTORISATION DE SORTIE

Je soussigné(e) {{parentName}}, responsable légal(e) de l'enfant {{childName}}, autorise mon enfant à participer à la sortie scolaire organisée le {{eventDate}}.

Personne à contacter en cas d'urgence : {{parentName}}, {{parentPhone}}

Fait à {{parentCity}}, le {{todayDate}}.

{{parentName}}`,
	},
}
