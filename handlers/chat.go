// File: handlers/chat.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"bookview/middleware"
	"bookview/services/chat"
	"bookview/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the chat widget over the gateway surface. One session
// per mounted widget; remounting is a new session.
type ChatHandler struct {
	backend  chat.Backend
	logger   *zap.Logger
	sessions *sessionStore[*chatSession]
}

type chatSession struct {
	widget *chat.Widget
	nav    *navRecorder
}

func NewChatHandler(backend chat.Backend, sessionTTL time.Duration, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		backend:  backend,
		logger:   logger,
		sessions: newSessionStore[*chatSession](sessionTTL),
	}
}

func (h *ChatHandler) session(c *gin.Context) (*chatSession, bool) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Chat session not found", "")
		return nil, false
	}
	return sess, true
}

// CreateSession mounts a chat widget for one business.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req struct {
		BusinessID string `json:"business_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	nav := &navRecorder{}
	widget := chat.NewWidget(req.BusinessID, h.backend, nav.Navigate, h.logger)
	id := h.sessions.Put(&chatSession{widget: widget, nav: nav})
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// GetSession returns the transcript, the pending flag, and the last
// navigation requested by the widget.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":   sess.widget.Messages(),
		"pending":    sess.widget.Pending(),
		"navigation": sess.nav.Last(),
	})
}

// SendMessage forwards one user turn and returns the updated transcript.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	err := sess.widget.SendMessage(c.Request.Context(), middleware.TokenFromContext(c), req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, "Message must not be empty", "")
		return
	case errors.Is(err, chat.ErrSendPending):
		utils.JSONError(c, http.StatusConflict, "A message is already being processed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": sess.widget.Messages(),
		"pending":  sess.widget.Pending(),
	})
}

// DownloadDocument fetches the appointment document with the caller's
// credential and hands back a short-lived handle for the viewing context.
func (h *ChatHandler) DownloadDocument(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	id, doc, err := sess.widget.DownloadDocument(c.Request.Context(), middleware.TokenFromContext(c), req.URL)
	switch {
	case errors.Is(err, chat.ErrMissingCredential):
		utils.JSONError(c, http.StatusUnauthorized, "Sign in to download your appointment document", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusBadGateway, "Could not download the document", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id":  id,
		"content_type": doc.ContentType,
	})
}

// ViewDocument streams a downloaded document while its handle is live.
func (h *ChatHandler) ViewDocument(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	doc, ok := sess.widget.Document(c.Param("docID"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Document is no longer available", "")
		return
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// OpenAppointments records navigation to the caller's booking list.
func (h *ChatHandler) OpenAppointments(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.widget.OpenBookings()
	c.JSON(http.StatusOK, gin.H{"navigation": sess.nav.Last()})
}

// DeleteSession unmounts the widget and discards its state.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
