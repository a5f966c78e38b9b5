package domain

import "time"

// SessionMetadata is the idempotence ledger of a session: one named optional
// timestamp per notification that must be sent at most once. A nil field
// means the corresponding action has not happened yet.
type SessionMetadata struct {
	DateDemande              *time.Time `json:"date_demande,omitempty"`
	DateEnvoiInscription     *time.Time `json:"date_envoi_inscription,omitempty"`
	DateEnvoiConvention      *time.Time `json:"date_envoi_convention,omitempty"`
	DateEnvoiConvocation     *time.Time `json:"date_envoi_convocation,omitempty"`
	DateEnvoiCertificat      *time.Time `json:"date_envoi_certificat,omitempty"`
	QuestionnairesPrealables *time.Time `json:"questionnaires_prealables_envoyes,omitempty"`
	Rappel2Jours             *time.Time `json:"rappel_2_jours_envoye,omitempty"`
	NotificationFormateur    *time.Time `json:"notification_formateur_envoyee,omitempty"`
	EvaluationsAChaud        *time.Time `json:"evaluations_a_chaud_envoyees,omitempty"`
	BilanFormateur           *time.Time `json:"bilan_formateur_envoye,omitempty"`
	EvaluationsAFroid        *time.Time `json:"evaluations_a_froid_envoyees,omitempty"`
	DocumentsEnvoyes         []string   `json:"documents_envoyes,omitempty"`
}

// RecordDocumentSent appends a document type to the sent list, once.
func (m *SessionMetadata) RecordDocumentSent(t DocumentType) {
	for _, existing := range m.DocumentsEnvoyes {
		if existing == string(t) {
			return
		}
	}
	m.DocumentsEnvoyes = append(m.DocumentsEnvoyes, string(t))
}
