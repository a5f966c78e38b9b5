// Package api provides the operational HTTP surface of the orchestrator.
package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/automate-formation/orchestrator/orchestrator"
	"github.com/automate-formation/orchestrator/store"
	"github.com/automate-formation/orchestrator/workflow"
)

// URLVerifier checks signatures produced by the store's GetDocumentURL.
type URLVerifier interface {
	VerifySignedURL(bucket, path string, expires int64, sig string) bool
}

// Handler handles HTTP requests.
type Handler struct {
	store    store.Store
	steps    *workflow.Steps
	orch     *orchestrator.Orchestrator
	verifier URLVerifier
	clock    workflow.Clock
	bucket   string
}

// NewHandler creates a new handler. bucket is the storage bucket documents
// live in.
func NewHandler(st store.Store, steps *workflow.Steps, orch *orchestrator.Orchestrator, verifier URLVerifier, clock workflow.Clock, bucket string) *Handler {
	return &Handler{
		store:    st,
		steps:    steps,
		orch:     orch,
		verifier: verifier,
		clock:    clock,
		bucket:   bucket,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/requests", h.CreateRequest)

	e.GET("/v1/sessions", h.ListSessions)
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.GET("/v1/sessions/:session_id/documents", h.ListSessionDocuments)
	e.POST("/v1/sessions/:session_id/confirm", h.ConfirmSession)
	e.POST("/v1/sessions/:session_id/cancel", h.CancelSession)
	e.POST("/v1/sessions/:session_id/documents/missing", h.GenerateMissingDocuments)

	e.POST("/v1/tasks/:task", h.RunTask)

	e.GET("/storage/:bucket/*", h.ServeDocument)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// ServeDocument serves a stored artifact after checking the URL signature.
// GET /storage/:bucket/*?expires=...&sig=...
func (h *Handler) ServeDocument(c echo.Context) error {
	bucket := c.Param("bucket")
	path := c.Param("*")

	expires, err := strconv.ParseInt(c.QueryParam("expires"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid expires"})
	}
	if !h.verifier.VerifySignedURL(bucket, path, expires, c.QueryParam("sig")) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "invalid or expired signature"})
	}

	data, contentType, err := h.store.GetBinary(c.Request().Context(), bucket, path)
	if err != nil {
		log.Printf("ERROR: failed to read object %s/%s: %v", bucket, path, err)
		return c.JSON(http.StatusNotFound, map[string]string{"error": "object not found"})
	}
	return c.Blob(http.StatusOK, contentType, data)
}
