// Package repository holds the in-memory stores for sessions and created
// invoices. Durable persistence is deliberately out of scope; every store
// here lives for the process lifetime only.
package repository

import (
	"context"
	"errors"

	"invoiceflow/internal/domain"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

type SessionStore interface {
	Create(ctx context.Context, userID string) (*domain.ConversationSession, error)
	Get(ctx context.Context, id string) (*domain.ConversationSession, error)
	Update(ctx context.Context, session *domain.ConversationSession) error
	Delete(ctx context.Context, id string) error
}

type InvoiceStore interface {
	Create(ctx context.Context, record domain.Invoice, userID string) (*domain.CreatedInvoice, error)
	Get(ctx context.Context, id string) (*domain.CreatedInvoice, error)
}
