package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/service"
)

// Root handles GET /api/ as the liveness probe.
func (a *API) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

// CreateStatusCheck handles POST /api/status.
func (a *API) CreateStatusCheck(c *gin.Context) {
	var req struct {
		ClientName string `json:"client_name"`
	}
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	check, err := a.status.Record(c.Request.Context(), req.ClientName)
	if err != nil {
		if errors.Is(err, service.ErrClientNameMissing) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("record status check failed")
		respondError(c, http.StatusInternalServerError, "Failed to record status check")
		return
	}

	c.JSON(http.StatusOK, check)
}

// ListStatusChecks handles GET /api/status.
func (a *API) ListStatusChecks(c *gin.Context) {
	checks, err := a.status.List(c.Request.Context())
	if err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("list status checks failed")
		respondError(c, http.StatusInternalServerError, "Failed to list status checks")
		return
	}
	c.JSON(http.StatusOK, checks)
}
