package pitch

import (
	"time"
)

// Status lifecycle of a pitch message.
const (
	StatusSent      = "sent"
	StatusViewed    = "viewed"
	StatusResponded = "responded"
	StatusArchived  = "archived"
)

// Message is a pitch sent from a founder to an investor (or a reply back).
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	DeckURL    string    `json:"deck_url,omitempty"`
	Status     string    `json:"status,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}

// Acknowledgement sent to the sender when a pitch is processed.
type Acknowledgement struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"` // "sent", "queued" or "error"
	Error     string `json:"error,omitempty"`
}

// ErrorResponse sent to a client on validation or delivery errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusUpdate sent by the receiver to advance pitch statuses
// (e.g. mark pitches as viewed or responded).
type StatusUpdate struct {
	EventType  string   `json:"event_type"` // "pitch_status"
	Status     string   `json:"status"`
	MessageIDs []string `json:"message_ids"`
}

// StatusNotification sent to the original sender when their pitches advance.
type StatusNotification struct {
	EventType  string   `json:"event_type"` // "pitch_status"
	Status     string   `json:"status"`
	MessageIDs []string `json:"message_ids"`
	UpdatedBy  string   `json:"updated_by"` // UUID of the user who advanced them
}

// ThreadItem is one message in a pitch thread (REST history endpoint).
type ThreadItem struct {
	SenderID   string `json:"sender_id"`   // UUID
	ReceiverID string `json:"receiver_id"` // UUID
	Content    string `json:"content"`
	DeckURL    string `json:"deck_url,omitempty"`
	Status     string `json:"status"`
	SentAt     int64  `json:"sent_at"` // epoch seconds
}

func validStatusTransition(status string) bool {
	switch status {
	case StatusViewed, StatusResponded, StatusArchived:
		return true
	default:
		return false
	}
}
