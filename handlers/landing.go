// File: handlers/landing.go
package handlers

import (
	"net/http"
	"time"

	"bookview/models"
	"bookview/services/geocode"
	"bookview/services/landing"
	"bookview/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LandingHandler exposes the search-and-map panel over the gateway surface.
type LandingHandler struct {
	catalog     landing.Catalog
	geocoder    geocode.Geocoder
	defaultView models.Viewport
	logger      *zap.Logger
	sessions    *sessionStore[*landingSession]
}

type landingSession struct {
	panel *landing.Panel
	nav   *navRecorder
}

func NewLandingHandler(catalog landing.Catalog, geocoder geocode.Geocoder, defaultView models.Viewport, sessionTTL time.Duration, logger *zap.Logger) *LandingHandler {
	return &LandingHandler{
		catalog:     catalog,
		geocoder:    geocoder,
		defaultView: defaultView,
		logger:      logger,
		sessions:    newSessionStore[*landingSession](sessionTTL),
	}
}

func (h *LandingHandler) session(c *gin.Context) (*landingSession, bool) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Landing session not found", "")
		return nil, false
	}
	return sess, true
}

// CreateSession mounts a panel and runs the initial catalog load.
func (h *LandingHandler) CreateSession(c *gin.Context) {
	nav := &navRecorder{}
	panel := landing.NewPanel(h.catalog, h.geocoder, h.defaultView, nav.Navigate, h.logger)
	panel.Load(c.Request.Context())

	id := h.sessions.Put(&landingSession{panel: panel, nav: nav})
	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"view":       panel.View(),
	})
}

// GetSession returns the render-ready view snapshot.
func (h *LandingHandler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":       sess.panel.View(),
		"navigation": sess.nav.Last(),
	})
}

// SelectCategory toggles the category filter.
func (h *LandingHandler) SelectCategory(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	sess.panel.SelectCategory(req.Name)
	c.JSON(http.StatusOK, gin.H{"view": sess.panel.View()})
}

// Search runs the free-text search. A blank query is valid and resets the
// filter without touching the backend.
func (h *LandingHandler) Search(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	sess.panel.Search(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, gin.H{"view": sess.panel.View()})
}

// SelectPin opens the detail overlay for a visible business.
func (h *LandingHandler) SelectPin(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		BusinessID string `json:"business_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if !sess.panel.SelectPin(req.BusinessID) {
		utils.JSONError(c, http.StatusNotFound, "Business is not currently visible", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": sess.panel.View()})
}

// ClearSelection closes the detail overlay.
func (h *LandingHandler) ClearSelection(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.panel.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"view": sess.panel.View()})
}

// ViewDetails records navigation to the business detail page.
func (h *LandingHandler) ViewDetails(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		BusinessID string `json:"business_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	sess.panel.ViewDetails(req.BusinessID)
	c.JSON(http.StatusOK, gin.H{"navigation": sess.nav.Last()})
}

// DeleteSession unmounts the panel and discards its state.
func (h *LandingHandler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
