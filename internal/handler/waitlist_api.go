package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/gateway"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/service"
)

const (
	msgEntryJoined      = "Welcome to the Rise Gum waitlist! We'll notify you when we launch."
	msgEntryDuplicate   = "Email already registered for the waitlist"
	msgValidationFailed = "Validation failed"
)

type waitlistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

// CreateWaitlistEntry handles POST /api/waitlist.
func (a *API) CreateWaitlistEntry(c *gin.Context) {
	var req waitlistRequest
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	entry, err := a.waitlist.Join(c.Request.Context(), service.WaitlistInput{
		Name:  req.Name,
		Email: req.Email,
		City:  req.City,
	})

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondErrorCode(c, http.StatusBadRequest, msgValidationFailed, gateway.CodeValidationFailed, verr.Fields)
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		respondErrorCode(c, http.StatusConflict, msgEntryDuplicate, gateway.CodeDuplicateEmail, nil)
		return
	case err != nil:
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("join waitlist failed")
		respondError(c, http.StatusInternalServerError, "Failed to join waitlist")
		return
	}

	a.welcome.Send(*entry)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
		"message": msgEntryJoined,
	})
}

// ListWaitlistEntries handles GET /api/waitlist?skip=&limit= for admins.
func (a *API) ListWaitlistEntries(c *gin.Context) {
	skip, err := parseIntQuery(c, "skip", 0)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseIntQuery(c, "limit", service.DefaultWaitlistLimit)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, total, err := a.waitlist.List(c.Request.Context(), skip, limit)
	if err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("list waitlist failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch waitlist entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   total,
	})
}
