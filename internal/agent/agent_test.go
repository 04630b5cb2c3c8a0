package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/extract"
)

func fixedClock() time.Time {
	return time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
}

type stubCreator struct {
	created *domain.CreatedInvoice
	err     error
	gotUser string
}

func (c *stubCreator) Create(_ context.Context, record domain.Invoice, userID string) (*domain.CreatedInvoice, error) {
	c.gotUser = userID
	if c.err != nil {
		return nil, c.err
	}
	if c.created == nil {
		c.created = &domain.CreatedInvoice{
			ID:         "inv-1",
			Number:     "INV-001000",
			PreviewURL: "https://x/preview",
			PDFURL:     "https://x/pdf",
		}
	}
	return c.created, nil
}

func strPtr(s string) *string { return &s }

func numPtr(v float64) *float64 { return &v }

func fullExtraction() domain.Extraction {
	return domain.Extraction{
		CustomerName:  strPtr("Acme Corp"),
		CustomerEmail: strPtr("billing@acme.com"),
		Description:   strPtr("Logo design, business cards"),
		TotalAmount:   numPtr(1500),
		DueDate:       strPtr("net 30"),
	}
}

func TestProcessTurn_CollectsThenReady(t *testing.T) {
	extractor := extract.NewStatic(
		domain.Extraction{CustomerName: strPtr("Acme Corp")},
		fullExtraction(),
	)
	a := New(extractor, &stubCreator{}, "user-1", fixedClock)

	first := a.ProcessTurn(context.Background(), "invoice for Acme Corp")
	assert.Equal(t, ActionCollecting, first.Action)
	assert.Equal(t, domain.InvoiceCollecting, first.InvoiceStatus)
	assert.Contains(t, first.MissingFields, domain.FieldCustomerEmail)
	assert.NotContains(t, first.MissingFields, domain.FieldCustomerName)
	assert.Contains(t, first.Message, "I need the following information")

	second := a.ProcessTurn(context.Background(), "email billing@acme.com, logo design and cards, $1500, net 30")
	assert.Equal(t, ActionReady, second.Action)
	assert.Equal(t, domain.InvoiceReady, second.InvoiceStatus)
	assert.Empty(t, second.MissingFields)
	assert.Equal(t, "2025-01-31", second.Record.DueDate)
	assert.Equal(t, 1500.0, second.Record.TotalAmount)
}

func TestProcessTurn_ApproveCreatesInvoice(t *testing.T) {
	creator := &stubCreator{}
	a := New(extract.NewStatic(fullExtraction()), creator, "user-1", fixedClock)

	a.ProcessTurn(context.Background(), "everything at once")
	resp := a.ProcessTurn(context.Background(), "approve")

	assert.Equal(t, ActionCreated, resp.Action)
	assert.Equal(t, domain.InvoiceCreated, resp.InvoiceStatus)
	require.NotNil(t, resp.Invoice)
	assert.Equal(t, "INV-001000", resp.Invoice.Number)
	assert.Contains(t, resp.Message, "INV-001000")
	assert.Equal(t, "user-1", creator.gotUser)
}

func TestProcessTurn_ApproveIncompleteAsksForFields(t *testing.T) {
	a := New(extract.NewStatic(), &stubCreator{}, "user-1", fixedClock)

	resp := a.ProcessTurn(context.Background(), "APPROVE")

	assert.Equal(t, ActionCollecting, resp.Action)
	assert.Nil(t, resp.Invoice)
	assert.Len(t, resp.MissingFields, len(domain.RequiredFields))
}

func TestProcessTurn_CreationFailure(t *testing.T) {
	creator := &stubCreator{err: errors.New("downstream is down")}
	a := New(extract.NewStatic(fullExtraction()), creator, "user-1", fixedClock)

	a.ProcessTurn(context.Background(), "everything at once")
	resp := a.ProcessTurn(context.Background(), "approve")

	assert.Equal(t, ActionCreationFailed, resp.Action)
	assert.Equal(t, domain.InvoiceReady, resp.InvoiceStatus)
	assert.Contains(t, resp.Message, "error creating the invoice")
}

func TestProcessTurn_EditRequest(t *testing.T) {
	a := New(extract.NewStatic(fullExtraction()), &stubCreator{}, "user-1", fixedClock)

	a.ProcessTurn(context.Background(), "everything at once")
	resp := a.ProcessTurn(context.Background(), "EDIT due_date")

	assert.Equal(t, ActionEditRequest, resp.Action)
	assert.Equal(t, domain.InvoiceReady, resp.InvoiceStatus)
	assert.Contains(t, resp.Message, "new information")
}

func TestProcessTurn_RecordsHistory(t *testing.T) {
	a := New(extract.NewStatic(), &stubCreator{}, "user-1", fixedClock)

	a.ProcessTurn(context.Background(), "hello there")

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, "User: hello there", history[0])
	assert.Contains(t, history[1], "Assistant: ")
}

func TestProcessTurn_CountsUsageEveryExtractionTurn(t *testing.T) {
	a := New(extract.NewStatic(), &stubCreator{}, "user-1", fixedClock)

	a.ProcessTurn(context.Background(), "one")
	a.ProcessTurn(context.Background(), "two")

	assert.Equal(t, 2, a.Usage().TotalCalls)
}

func TestPreview_RendersRecord(t *testing.T) {
	a := New(extract.NewStatic(fullExtraction()), &stubCreator{}, "user-1", fixedClock)
	a.ProcessTurn(context.Background(), "everything at once")

	preview := a.Preview()

	assert.Contains(t, preview, "INVOICE PREVIEW")
	assert.Contains(t, preview, "Acme Corp")
	assert.Contains(t, preview, "billing@acme.com")
	assert.Contains(t, preview, "$1500.00")
	assert.Contains(t, preview, "2025-01-31")
	// Multi-line descriptions are indented under their label.
	assert.Contains(t, preview, "\n    1. Logo design")
}

func TestReset_KeepsUsage(t *testing.T) {
	a := New(extract.NewStatic(fullExtraction()), &stubCreator{}, "user-1", fixedClock)
	a.ProcessTurn(context.Background(), "everything at once")

	a.Reset()

	assert.Equal(t, domain.Invoice{}, a.Record())
	assert.Empty(t, a.History())
	assert.Equal(t, 1, a.Usage().TotalCalls)
}

func TestResetSession_ClearsUsage(t *testing.T) {
	a := New(extract.NewStatic(fullExtraction()), &stubCreator{}, "user-1", fixedClock)
	a.ProcessTurn(context.Background(), "everything at once")

	a.ResetSession()

	assert.Zero(t, a.Usage().TotalCalls)
}
