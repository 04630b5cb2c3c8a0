package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceflow/internal/domain"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, domain.ConversationActive, session.Status)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	got.Status = domain.ConversationCompleted
	require.NoError(t, store.Update(ctx, got))

	updated, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationCompleted, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(session.UpdatedAt))

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = store.Update(ctx, &domain.ConversationSession{ID: "nope"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrSessionNotFound)
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	got.Record.CustomerName = "mutated"

	again, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Record.CustomerName)
}

func TestInvoiceStore_SequentialNumbers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInvoiceStore("https://billing.example.com")

	record := domain.Invoice{
		CustomerName:  "Acme Corp",
		CustomerEmail: "billing@acme.com",
		Description:   "Logo design",
		TotalAmount:   500,
		DueDate:       "2025-01-31",
	}

	first, err := store.Create(ctx, record, "user-1")
	require.NoError(t, err)
	second, err := store.Create(ctx, record, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "INV-001000", first.Number)
	assert.Equal(t, "INV-001001", second.Number)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, "https://billing.example.com/invoice/"+first.ID+"/preview", first.PreviewURL)
	assert.Equal(t, "https://billing.example.com/invoice/"+first.ID+"/pdf", first.PDFURL)
	assert.Equal(t, "Acme Corp", first.CustomerName)
	assert.Equal(t, 500.0, first.Amount)
}

func TestInvoiceStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInvoiceStore("https://billing.example.com")

	created, err := store.Create(ctx, domain.Invoice{CustomerName: "Acme Corp"}, "user-1")
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
