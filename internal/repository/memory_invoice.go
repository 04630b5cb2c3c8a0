package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"invoiceflow/internal/domain"
)

// firstInvoiceNumber is where invoice numbering starts.
const firstInvoiceNumber = 1000

// MemoryInvoiceStore assigns sequential invoice numbers and keeps created
// invoices in a mutex-guarded map. PDF generation is stubbed: the
// preview and pdf URLs point at routes under baseURL that a real billing
// backend would serve.
type MemoryInvoiceStore struct {
	mu       sync.Mutex
	invoices map[string]*domain.CreatedInvoice
	next     int
	baseURL  string
}

func NewMemoryInvoiceStore(baseURL string) *MemoryInvoiceStore {
	return &MemoryInvoiceStore{
		invoices: make(map[string]*domain.CreatedInvoice),
		next:     firstInvoiceNumber,
		baseURL:  baseURL,
	}
}

func (s *MemoryInvoiceStore) Create(_ context.Context, record domain.Invoice, _ string) (*domain.CreatedInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	number := fmt.Sprintf("INV-%06d", s.next)
	s.next++

	invoice := &domain.CreatedInvoice{
		ID:            id,
		Number:        number,
		CustomerName:  record.CustomerName,
		CustomerEmail: record.CustomerEmail,
		Description:   record.Description,
		Amount:        record.TotalAmount,
		DueDate:       record.DueDate,
		Status:        "pending",
		CreatedAt:     time.Now().UTC(),
		PreviewURL:    fmt.Sprintf("%s/invoice/%s/preview", s.baseURL, id),
		PDFURL:        fmt.Sprintf("%s/invoice/%s/pdf", s.baseURL, id),
	}

	s.invoices[id] = invoice
	copied := *invoice
	return &copied, nil
}

func (s *MemoryInvoiceStore) Get(_ context.Context, id string) (*domain.CreatedInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.invoices[id]
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	copied := *invoice
	return &copied, nil
}
