package models

// Transcript roles as rendered by the chat widget.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ActionBookingSuccess is attached by the backend to the assistant reply
// that confirms a booked appointment.
const ActionBookingSuccess = "BOOKING_SUCCESS"

// ChatMessage is one transcript entry. The transcript is append-only within
// a session and discarded on teardown.
type ChatMessage struct {
	Role        string `json:"role"`
	Text        string `json:"text"`
	Action      string `json:"action,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
}

// WireMessage is the history entry shape the chatbot endpoint expects.
// Assistant turns travel under the "model" role.
type WireMessage struct {
	Role  string   `json:"role"`
	Parts []string `json:"parts"`
}

// Wire converts a transcript entry to its request-body form.
func (m ChatMessage) Wire() WireMessage {
	role := m.Role
	if role == RoleAssistant {
		role = "model"
	}
	return WireMessage{Role: role, Parts: []string{m.Text}}
}

// ChatRequest is the body of POST /chatbot/chat.
type ChatRequest struct {
	BusinessID string        `json:"business_id"`
	History    []WireMessage `json:"history"`
	Message    string        `json:"message"`
}

// ChatReply is the chatbot endpoint's response body.
type ChatReply struct {
	Response string `json:"response"`
	Action   string `json:"action,omitempty"`
	PDFURL   string `json:"pdf_url,omitempty"`
}
