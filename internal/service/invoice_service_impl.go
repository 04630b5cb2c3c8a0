package service

import (
	"context"
	"fmt"
	"strings"

	"invoiceflow/internal/collect"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/repository"
)

type invoiceService struct {
	sessions repository.SessionStore
	invoices repository.InvoiceStore
	agents   *AgentRegistry
}

// NewInvoiceService wires approval and editing to the stores and the
// agent registry.
func NewInvoiceService(sessions repository.SessionStore, invoices repository.InvoiceStore, agents *AgentRegistry) InvoiceService {
	return &invoiceService{sessions: sessions, invoices: invoices, agents: agents}
}

func (s *invoiceService) Approve(ctx context.Context, sessionID string) (*ApprovalResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	entry := s.agents.Entry(session.ID, session.UserID)
	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	record := entry.Agent.Record()
	if missing := record.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteInvoice, strings.Join(missing, ", "))
	}

	invoice, err := s.invoices.Create(ctx, record, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	session.Record = record
	session.Status = domain.ConversationCompleted
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}

	return &ApprovalResult{
		Invoice: invoice,
		Message: fmt.Sprintf("Invoice %s created successfully!", invoice.Number),
	}, nil
}

func (s *invoiceService) Edit(ctx context.Context, sessionID string, updates map[string]any) (*EditResult, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no field updates given", ErrInvalidFieldUpdate)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	entry := s.agents.Entry(session.ID, session.UserID)
	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	record := entry.Agent.Record()
	updated := make([]string, 0, len(updates))
	for field, value := range updates {
		if err := applyFieldUpdate(&record, field, value); err != nil {
			return nil, err
		}
		updated = append(updated, field)
	}

	entry.Agent.SetRecord(record)
	session.Record = record
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}

	return &EditResult{
		UpdatedFields: updated,
		Record:        record,
		InvoiceStatus: record.Status(),
	}, nil
}

// applyFieldUpdate validates one explicit overwrite. Unlike the merge
// path, an already-filled field may change here.
func applyFieldUpdate(record *domain.Invoice, field string, value any) error {
	switch field {
	case domain.FieldCustomerName:
		v, err := stringUpdate(field, value)
		if err != nil {
			return err
		}
		record.CustomerName = v
	case domain.FieldCustomerEmail:
		v, err := stringUpdate(field, value)
		if err != nil {
			return err
		}
		if !domain.ValidEmail(v) {
			return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidFieldUpdate, v)
		}
		record.CustomerEmail = v
	case domain.FieldDescription:
		v, err := stringUpdate(field, value)
		if err != nil {
			return err
		}
		record.Description = collect.FormatDescription(v)
	case domain.FieldTotalAmount:
		v, ok := value.(float64)
		if !ok || v <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", ErrInvalidFieldUpdate, field)
		}
		record.TotalAmount = domain.RoundAmount(v)
	case domain.FieldDueDate:
		v, err := stringUpdate(field, value)
		if err != nil {
			return err
		}
		date, ok := (collect.Normalizer{}).Normalize(v)
		if !ok {
			return fmt.Errorf("%w: could not parse date %q", ErrInvalidFieldUpdate, v)
		}
		record.DueDate = date
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidFieldUpdate, field)
	}
	return nil
}

func stringUpdate(field string, value any) (string, error) {
	v, ok := value.(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidFieldUpdate, field)
	}
	return strings.TrimSpace(v), nil
}
