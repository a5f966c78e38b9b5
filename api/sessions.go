package api

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/workflow"
)

const dateLayout = "2006-01-02"

// CreateRequestBody is the intake payload. Dates are calendar dates in
// YYYY-MM-DD form.
type CreateRequestBody struct {
	EntrepriseID        string `json:"entreprise_id"`
	EntrepriseNom       string `json:"entreprise_nom"`
	EntrepriseEmail     string `json:"entreprise_email"`
	EntrepriseTelephone string `json:"entreprise_telephone"`
	EntrepriseAdresse   string `json:"entreprise_adresse"`
	EntrepriseSiret     string `json:"entreprise_siret"`

	FormationID    string  `json:"formation_id"`
	FormationTitre string  `json:"formation_titre"`
	DureeHeure     int     `json:"duree"`
	PrixHT         float64 `json:"prix_ht"`

	DateDebut          string                      `json:"date_debut"`
	DateFin            string                      `json:"date_fin"`
	Lieu               string                      `json:"lieu"`
	Horaires           string                      `json:"horaires"`
	NombreParticipants int                         `json:"nombre_participants"`
	BesoinDevis        bool                        `json:"besoin_devis"`
	Notes              string                      `json:"notes"`
	Participants       []workflow.ParticipantInput `json:"participants"`
}

// CreateRequest records a new training request.
// POST /v1/requests
func (h *Handler) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var body CreateRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.DateDebut == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date_debut is required"})
	}
	dateDebut, err := time.Parse(dateLayout, body.DateDebut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date_debut, expected YYYY-MM-DD"})
	}
	var dateFin time.Time
	if body.DateFin != "" {
		if dateFin, err = time.Parse(dateLayout, body.DateFin); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date_fin, expected YYYY-MM-DD"})
		}
	}

	session, err := h.steps.CreateRequest(ctx, workflow.RequestInput{
		EntrepriseID:        body.EntrepriseID,
		EntrepriseNom:       body.EntrepriseNom,
		EntrepriseEmail:     body.EntrepriseEmail,
		EntrepriseTelephone: body.EntrepriseTelephone,
		EntrepriseAdresse:   body.EntrepriseAdresse,
		EntrepriseSiret:     body.EntrepriseSiret,
		FormationID:         body.FormationID,
		FormationTitre:      body.FormationTitre,
		DureeHeure:          body.DureeHeure,
		PrixHT:              body.PrixHT,
		DateDebut:           dateDebut,
		DateFin:             dateFin,
		Lieu:                body.Lieu,
		Horaires:            body.Horaires,
		NombreParticipants:  body.NombreParticipants,
		BesoinDevis:         body.BesoinDevis,
		Notes:               body.Notes,
		Participants:        body.Participants,
	})
	if err != nil {
		log.Printf("ERROR: failed to create request: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, session)
}

// ListSessions lists sessions, filtered by statut and periode
// (upcoming | past).
// GET /v1/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	ctx := c.Request().Context()

	sessions, err := h.store.FindSessions(ctx, domain.SessionStatus(c.QueryParam("statut")))
	if err != nil {
		log.Printf("ERROR: failed to list sessions: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list sessions"})
	}

	periode := c.QueryParam("periode")
	if periode != "" && periode != "upcoming" && periode != "past" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid periode, expected upcoming or past"})
	}
	if periode != "" {
		now := h.clock.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		filtered := sessions[:0]
		for _, s := range sessions {
			switch periode {
			case "upcoming":
				if !s.DateDebut.Before(today) {
					filtered = append(filtered, s)
				}
			case "past":
				if s.DateFin.Before(today) {
					filtered = append(filtered, s)
				}
			}
		}
		sessions = filtered
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// GetSession returns one session.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.store.GetSession(ctx, c.Param("session_id"))
	if err != nil {
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, session)
}

// ListSessionDocuments lists a session's documents with signed URLs.
// GET /v1/sessions/:session_id/documents
func (h *Handler) ListSessionDocuments(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	session, err := h.store.GetSession(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	documents, err := h.store.ListDocuments(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to list documents: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list documents"})
	}

	list := make([]map[string]interface{}, len(documents))
	for i, d := range documents {
		entry := map[string]interface{}{
			"id":             d.ID,
			"type":           d.Type,
			"participant_id": d.ParticipantID,
			"nom_fichier":    d.NomFichier,
			"statut":         d.Statut,
			"date_envoi":     d.DateEnvoi,
		}
		url, err := h.store.GetDocumentURL(h.bucket, d.StoragePath)
		if err == nil {
			entry["url"] = url
		}
		list[i] = entry
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"documents": list})
}

// ConfirmSession is the commercial-acceptance signal: the convention is
// dispatched and the session moves to confirmee.
// POST /v1/sessions/:session_id/confirm
func (h *Handler) ConfirmSession(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.store.GetSession(ctx, c.Param("session_id"))
	if err != nil {
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	acted, err := h.steps.SendConvention(ctx, session)
	if err != nil {
		log.Printf("ERROR: failed to confirm session %s: %v", session.ID, err)
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if !acted {
		return c.JSON(http.StatusConflict, map[string]string{"error": "session changed status concurrently"})
	}
	return c.JSON(http.StatusOK, session)
}

// CancelSession is the administrative override moving a session to annulee.
// POST /v1/sessions/:session_id/cancel
func (h *Handler) CancelSession(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	if err := h.steps.Cancel(ctx, sessionID); err != nil {
		log.Printf("ERROR: failed to cancel session %s: %v", sessionID, err)
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "statut": domain.StatusAnnulee})
}

// GenerateMissingDocuments backfills the document types the archival policy
// still requires.
// POST /v1/sessions/:session_id/documents/missing
func (h *Handler) GenerateMissingDocuments(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	generated, err := h.steps.GenerateMissingDocuments(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to backfill session %s: %v", sessionID, err)
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":     err.Error(),
			"generated": generated,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"generated": generated})
}
