package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/content"
	"github.com/risegum/internal/logging"
)

// GetContent handles GET /api/content. Storage problems degrade to the
// bundled model instead of failing the request.
func (a *API) GetContent(c *gin.Context) {
	model, stored, err := a.content.Get(c.Request.Context())
	if err != nil {
		logger := logging.FromContext(c)
		logger.Warn().Err(err).Msg("stored content unusable, serving bundled content")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    model,
		"stored":  stored,
	})
}

// ReplaceContent handles PUT /admin/api/content; the model is replaced whole.
func (a *API) ReplaceContent(c *gin.Context) {
	var model content.Model
	if !bindJSON(c, &model, "Invalid content payload") {
		return
	}

	saved, err := a.content.Save(c.Request.Context(), model)
	if err != nil {
		if errors.Is(err, content.ErrIncomplete) {
			respondErrorCode(c, http.StatusBadRequest, err.Error(), "content_incomplete", nil)
			return
		}
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("save content failed")
		respondError(c, http.StatusInternalServerError, "Failed to save content")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": saved})
}

// ResetContent handles DELETE /admin/api/content.
func (a *API) ResetContent(c *gin.Context) {
	if err := a.content.Reset(c.Request.Context()); err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("reset content failed")
		respondError(c, http.StatusInternalServerError, "Failed to reset content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": content.Default()})
}
