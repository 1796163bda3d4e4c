package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/risegum/internal/landing"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/view"
)

const (
	visitorCookieName   = "rg_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60

	msgRateLimited = "Too many requests. Please try again later."
)

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := a.secure || c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}

// ShowLanding renders the landing page. Content is fetched once per render
// and falls back to the bundled model.
func (a *API) ShowLanding(c *gin.Context) {
	a.ensureVisitorID(c)
	state := a.loader.Mount(c.Request.Context())
	renderNode(c, http.StatusOK, view.LandingPage(a.meta, state))
}

// SubmitWaitlist handles the form post. HTMX requests get only the form card
// back; plain posts get the full page.
func (a *API) SubmitWaitlist(c *gin.Context) {
	visitor := a.ensureVisitorID(c)

	var form landing.Form
	if err := c.ShouldBind(&form); err != nil {
		logger := logging.FromContext(c)
		logger.Debug().Err(err).Msg("waitlist form bind failed")
	}

	var (
		outcome  landing.Outcome
		inFlight bool
	)
	// 校验失败不会发起请求，也不占用限流额度
	if form.Validate() == "" && !a.limiter.Allow(c.ClientIP()) {
		outcome = landing.Outcome{Form: form, Status: landing.Status{Message: msgRateLimited}}
	} else {
		var err error
		outcome, err = a.flow.Submit(c.Request.Context(), visitor, form)
		inFlight = errors.Is(err, landing.ErrSubmissionInFlight)
	}

	if isHTMX(c) {
		renderNode(c, http.StatusOK, view.WaitlistCard(landing.PageState{
			Form:       outcome.Form,
			Status:     outcome.Status,
			Submitting: inFlight,
		}))
		return
	}

	state := a.loader.Mount(c.Request.Context())
	state.Form = outcome.Form
	state.Status = outcome.Status
	renderNode(c, http.StatusOK, view.LandingPage(a.meta, state))
}

// SocialCard serves the Open Graph image.
func (a *API) SocialCard(c *gin.Context) {
	var buf bytes.Buffer
	err := view.RenderSocialCard(&buf, view.SocialCardText{
		Title:    "Rise Gum",
		Tagline:  "Get Energy Anywhere",
		Subtitle: "Sugar-free caffeine gum for students & professionals",
	})
	if err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("render social card failed")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
