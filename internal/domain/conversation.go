package domain

import "time"

type InvoiceStatus string

const (
	InvoiceCollecting InvoiceStatus = "collecting"
	InvoiceReady      InvoiceStatus = "ready"
	InvoiceCreated    InvoiceStatus = "created"
)

type ConversationStatus string

const (
	ConversationActive    ConversationStatus = "active"
	ConversationCompleted ConversationStatus = "completed"
	ConversationExpired   ConversationStatus = "expired"
)

// ConversationSession is one user's collection workflow. The record is
// owned exclusively by its session; the session store serializes turns so
// the core never sees concurrent merges on the same record.
type ConversationSession struct {
	ID        string
	UserID    string
	Record    Invoice
	Status    ConversationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch updates the last-modified timestamp.
func (s *ConversationSession) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
