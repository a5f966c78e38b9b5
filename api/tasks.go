package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/automate-formation/orchestrator/orchestrator"
)

// RunTask executes one orchestrator phase (or all of them) and returns the
// aggregate outcome. Individual session failures are reported in the
// result, never as an HTTP error.
// POST /v1/tasks/:task
func (h *Handler) RunTask(c echo.Context) error {
	ctx := c.Request().Context()

	phase, err := orchestrator.ParsePhase(c.Param("task"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.orch.RunPhase(ctx, phase)
	if err != nil {
		log.Printf("ERROR: failed to run phase %s: %v", phase, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"phase":  phase,
		"result": result,
	})
}
