package service

import (
	"context"
	"time"

	"invoiceflow/internal/agent"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/pricing"
)

// TurnResult is the outcome of one conversation turn, ready for a
// transport layer to render.
type TurnResult struct {
	SessionID    string
	Response     agent.TurnResponse
	Preview      string
	SessionUsage pricing.SessionUsage
}

// ApprovalResult reports a created invoice.
type ApprovalResult struct {
	Invoice *domain.CreatedInvoice
	Message string
}

// EditResult reports which fields an edit changed.
type EditResult struct {
	UpdatedFields []string
	Record        domain.Invoice
	InvoiceStatus domain.InvoiceStatus
}

// SessionInfo is a read-only session snapshot.
type SessionInfo struct {
	SessionID     string
	Status        domain.ConversationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	InvoiceStatus domain.InvoiceStatus
	MissingFields []string
	Usage         pricing.SessionUsage
}

type ConversationService interface {
	// HandleTurn processes one user turn against a session, creating the
	// session when sessionID is empty.
	HandleTurn(ctx context.Context, userInput, sessionID, userID string) (*TurnResult, error)
}

type InvoiceService interface {
	// Approve creates the invoice from a complete session record.
	Approve(ctx context.Context, sessionID string) (*ApprovalResult, error)

	// Edit overwrites specific record fields after validation. This is
	// the only path that may change an already-filled field.
	Edit(ctx context.Context, sessionID string, updates map[string]any) (*EditResult, error)
}

type SessionService interface {
	Info(ctx context.Context, sessionID string) (*SessionInfo, error)
	Reset(ctx context.Context, sessionID string) error
}
