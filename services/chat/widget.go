// File: services/chat/widget.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bookview/models"
	"bookview/services/backend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the slice of the REST client the widget needs.
type Backend interface {
	SendChat(ctx context.Context, token string, req models.ChatRequest) (*models.ChatReply, error)
	FetchDocument(ctx context.Context, token, docURL string) (*backend.Document, error)
}

// User-facing failure text, rendered inline as assistant turns.
const (
	msgServiceUnavailable = "The assistant is unavailable right now. Please try again in a moment."
	msgGenericError       = "Something went wrong while sending your message. Please try again."
)

// documentReleaseDelay is how long a fetched document handle stays live so
// the viewing context has time to load it.
const documentReleaseDelay = 3 * time.Second

// Widget holds the conversation state of one mounted chat widget. The
// transcript is append-only and discarded with the widget; at most one send
// is in flight at a time.
type Widget struct {
	backend    Backend
	logger     *zap.Logger
	navigate   models.NavigateFunc
	businessID string

	mu       sync.Mutex
	messages []models.ChatMessage
	pending  bool

	docMu        sync.Mutex
	docs         map[string]*backend.Document
	releaseDelay time.Duration
}

func NewWidget(businessID string, b Backend, navigate models.NavigateFunc, logger *zap.Logger) *Widget {
	return &Widget{
		backend:      b,
		logger:       logger,
		navigate:     navigate,
		businessID:   businessID,
		docs:         make(map[string]*backend.Document),
		releaseDelay: documentReleaseDelay,
	}
}

// Messages returns a copy of the transcript in send order.
func (w *Widget) Messages() []models.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

// Pending reports whether a send is outstanding.
func (w *Widget) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// SendMessage appends the user turn, forwards it with the conversation
// history, and appends the assistant reply. Backend failures degrade to
// user-facing assistant text and are never returned; the only errors are
// the preconditions (blank text, send already in flight), which leave the
// transcript untouched.
func (w *Widget) SendMessage(ctx context.Context, token, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return ErrSendPending
	}
	w.pending = true
	history := make([]models.WireMessage, 0, len(w.messages))
	for _, m := range w.messages {
		history = append(history, m.Wire())
	}
	w.messages = append(w.messages, models.ChatMessage{Role: models.RoleUser, Text: trimmed})
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.pending = false
		w.mu.Unlock()
	}()

	reply := w.exchange(ctx, token, trimmed, history)

	w.mu.Lock()
	w.messages = append(w.messages, reply)
	w.mu.Unlock()
	return nil
}

// exchange performs the network round trip and always yields an assistant
// turn, mapping failures to the taxonomy messages.
func (w *Widget) exchange(ctx context.Context, token, text string, history []models.WireMessage) models.ChatMessage {
	req := models.ChatRequest{
		BusinessID: w.businessID,
		History:    history,
		Message:    text,
	}
	reply, err := w.backend.SendChat(ctx, token, req)
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			w.logger.Warn("Chatbot returned non-success status",
				zap.String("businessId", w.businessID), zap.Int("status", statusErr.Status))
			return models.ChatMessage{Role: models.RoleAssistant, Text: msgServiceUnavailable}
		}
		w.logger.Error("Chatbot request failed",
			zap.String("businessId", w.businessID), zap.Error(err))
		return models.ChatMessage{Role: models.RoleAssistant, Text: msgGenericError}
	}
	return models.ChatMessage{
		Role:        models.RoleAssistant,
		Text:        reply.Response,
		Action:      reply.Action,
		DocumentURL: reply.PDFURL,
	}
}

// DownloadDocument fetches a generated document with the bearer credential
// attached and registers it under a fresh handle for the viewing context.
// The handle is released after a fixed delay.
func (w *Widget) DownloadDocument(ctx context.Context, token, docURL string) (string, *backend.Document, error) {
	if strings.TrimSpace(token) == "" {
		return "", nil, ErrMissingCredential
	}

	doc, err := w.backend.FetchDocument(ctx, token, docURL)
	if err != nil {
		w.logger.Warn("Document download failed", zap.String("url", docURL), zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	id := uuid.NewString()
	w.docMu.Lock()
	w.docs[id] = doc
	w.docMu.Unlock()

	time.AfterFunc(w.releaseDelay, func() {
		w.docMu.Lock()
		delete(w.docs, id)
		w.docMu.Unlock()
	})

	return id, doc, nil
}

// Document returns a previously downloaded document while its handle is
// still live.
func (w *Widget) Document(id string) (*backend.Document, bool) {
	w.docMu.Lock()
	defer w.docMu.Unlock()
	doc, ok := w.docs[id]
	return doc, ok
}

// OpenBookings navigates the host application to the appointment list.
func (w *Widget) OpenBookings() {
	if w.navigate != nil {
		w.navigate(models.PageMyAppointments, "")
	}
}
