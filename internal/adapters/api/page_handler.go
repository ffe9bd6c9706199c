package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getPage handles GET / and renders the caller's lookup view
func (s *HTTPServerAdapter) getPage(c *gin.Context) {
	view, err := s.controller.State(c.Request.Context(), s.sessionID(c))
	if err != nil {
		slog.Error("Error loading lookup view", "error", err)
		s.handleError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, pageTemplate, newPageView(view))
}

// postLookup handles the form submission. Blank input changes nothing.
func (s *HTTPServerAdapter) postLookup(c *gin.Context) {
	sessionID := s.sessionID(c)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.setSessionCookie(c, sessionID)

	submitted, err := s.controller.Submit(c.Request.Context(), sessionID, c.PostForm("city"))
	if err != nil {
		slog.Error("Error submitting lookup", "error", err)
		s.handleError(c, err)
		return
	}
	if !submitted {
		slog.Debug("Ignoring blank lookup submission")
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// sessionID returns the caller's session id, or "" when the cookie is
// missing or was not issued by this server.
func (s *HTTPServerAdapter) sessionID(c *gin.Context) string {
	raw, err := c.Cookie(s.config.CookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

func (s *HTTPServerAdapter) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.CookieName, sessionID, int(s.config.SessionTTL.Seconds()), "/", "", false, true)
}
