// Package agent implements the conversation orchestrator: it routes each
// user turn to approval, edit, or extraction handling, merges extracted
// fields into the session's invoice record, and decides whether to ask
// for more information, show a preview, or confirm creation.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invoiceflow/internal/collect"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/extract"
	"invoiceflow/internal/pricing"
)

type Action string

const (
	ActionCollecting     Action = "collecting_information"
	ActionReady          Action = "ready_for_approval"
	ActionCreated        Action = "invoice_created"
	ActionCreationFailed Action = "invoice_creation_failed"
	ActionEditRequest    Action = "edit_request"
)

// TurnResponse is the structured outcome of one conversation turn.
type TurnResponse struct {
	Action        Action
	Message       string
	InvoiceStatus domain.InvoiceStatus
	MissingFields []string
	Record        domain.Invoice
	Extracted     domain.Extraction
	Notices       []collect.Notice
	Invoice       *domain.CreatedInvoice
	Usage         pricing.TurnUsage
}

// Creator turns a complete record into a created invoice. Invoice
// generation itself is stubbed behind this interface.
type Creator interface {
	Create(ctx context.Context, record domain.Invoice, userID string) (*domain.CreatedInvoice, error)
}

// Agent drives one session's collection workflow. It is not safe for
// concurrent use; the session layer serializes turns per session.
type Agent struct {
	extractor extract.Extractor
	creator   Creator
	merger    *collect.Merger
	now       func() time.Time

	userID  string
	record  domain.Invoice
	history []string
	usage   *pricing.SessionUsage
}

// New builds an Agent for one session. A nil now uses the system clock.
func New(extractor extract.Extractor, creator Creator, userID string, now func() time.Time) *Agent {
	if now == nil {
		now = time.Now
	}
	return &Agent{
		extractor: extractor,
		creator:   creator,
		merger:    collect.NewMerger(now),
		now:       now,
		userID:    userID,
		usage:     pricing.NewSessionUsage(now()),
	}
}

// ProcessTurn handles one user turn: APPROVE creates the invoice, EDIT
// asks for replacement field data, anything else goes through extraction
// and merge.
func (a *Agent) ProcessTurn(ctx context.Context, input string) TurnResponse {
	a.history = append(a.history, "User: "+input)

	command := strings.ToUpper(strings.TrimSpace(input))
	var resp TurnResponse
	switch {
	case command == "APPROVE":
		resp = a.handleApproval(ctx)
	case strings.HasPrefix(command, "EDIT"):
		resp = TurnResponse{
			Action:        ActionEditRequest,
			Message:       "Please provide the new information for the field you want to edit.",
			InvoiceStatus: a.record.Status(),
			MissingFields: a.record.MissingFields(),
			Record:        a.record,
		}
	default:
		resp = a.handleExtraction(ctx, input)
	}

	a.history = append(a.history, "Assistant: "+resp.Message)
	return resp
}

func (a *Agent) handleExtraction(ctx context.Context, input string) TurnResponse {
	result := a.extractor.Extract(ctx, input)
	a.usage.Add(result.Usage, a.now())

	notices := a.merger.Merge(&a.record, result.Fields)
	if result.Notice != "" {
		notices = append([]collect.Notice{{Message: result.Notice}}, notices...)
	}

	missing := a.record.MissingFields()
	if len(missing) > 0 {
		return TurnResponse{
			Action:        ActionCollecting,
			Message:       collect.RequestMessage(missing),
			InvoiceStatus: domain.InvoiceCollecting,
			MissingFields: missing,
			Record:        a.record,
			Extracted:     result.Fields,
			Notices:       notices,
			Usage:         result.Usage,
		}
	}

	return TurnResponse{
		Action:        ActionReady,
		Message:       "All information collected. Please review and approve the invoice.",
		InvoiceStatus: domain.InvoiceReady,
		MissingFields: []string{},
		Record:        a.record,
		Extracted:     result.Fields,
		Notices:       notices,
		Usage:         result.Usage,
	}
}

func (a *Agent) handleApproval(ctx context.Context) TurnResponse {
	if missing := a.record.MissingFields(); len(missing) > 0 {
		return TurnResponse{
			Action:        ActionCollecting,
			Message:       collect.RequestMessage(missing),
			InvoiceStatus: domain.InvoiceCollecting,
			MissingFields: missing,
			Record:        a.record,
		}
	}

	created, err := a.creator.Create(ctx, a.record, a.userID)
	if err != nil {
		return TurnResponse{
			Action:        ActionCreationFailed,
			Message:       "Sorry, there was an error creating the invoice. Please try again.",
			InvoiceStatus: domain.InvoiceReady,
			Record:        a.record,
		}
	}

	return TurnResponse{
		Action:        ActionCreated,
		Message:       fmt.Sprintf("Invoice %s created successfully", created.Number),
		InvoiceStatus: domain.InvoiceCreated,
		MissingFields: []string{},
		Record:        a.record,
		Invoice:       created,
	}
}

// Preview renders the collected record for review before approval.
func (a *Agent) Preview() string {
	rec := a.record
	description := rec.Description
	if strings.Contains(description, "\n") {
		description = "\n    " + strings.ReplaceAll(description, "\n", "\n    ")
	}

	var b strings.Builder
	b.WriteString("INVOICE PREVIEW\n\n")
	b.WriteString("Customer:\n")
	fmt.Fprintf(&b, "  Name:  %s\n", rec.CustomerName)
	fmt.Fprintf(&b, "  Email: %s\n\n", rec.CustomerEmail)
	b.WriteString("Details:\n")
	fmt.Fprintf(&b, "  Description: %s\n", description)
	fmt.Fprintf(&b, "  Amount:      $%.2f\n", rec.TotalAmount)
	fmt.Fprintf(&b, "  Due Date:    %s\n\n", rec.DueDate)
	b.WriteString("Reply \"APPROVE\" to create the invoice, or \"EDIT <field>\" to change a field.")
	return b.String()
}

// Record returns a copy of the accumulated invoice record.
func (a *Agent) Record() domain.Invoice { return a.record }

// SetRecord replaces the record wholesale. This is the explicit edit
// path; it bypasses the first-write-wins merge on purpose.
func (a *Agent) SetRecord(rec domain.Invoice) { a.record = rec }

// History returns the transcript so far.
func (a *Agent) History() []string { return a.history }

// Usage returns the cumulative session usage.
func (a *Agent) Usage() *pricing.SessionUsage { return a.usage }

// Reset clears the record and transcript for a new invoice while keeping
// cumulative usage.
func (a *Agent) Reset() {
	a.record = domain.Invoice{}
	a.history = nil
}

// ResetSession clears everything including usage totals.
func (a *Agent) ResetSession() {
	a.Reset()
	a.usage = pricing.NewSessionUsage(a.now())
}
