package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func numPtr(v float64) *float64 { return &v }

func testMerger() *Merger {
	return NewMerger(fixedClock(2025, time.January, 1))
}

func TestMerge_FillsEmptyFields(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{}

	notices := m.Merge(&rec, domain.Extraction{
		CustomerName:  strPtr("Acme Corp"),
		CustomerEmail: strPtr("billing@acme.com"),
		Description:   strPtr("Logo design, business cards"),
		TotalAmount:   numPtr(1250.506),
		DueDate:       strPtr("net 30"),
	})

	assert.Empty(t, notices)
	assert.Equal(t, "Acme Corp", rec.CustomerName)
	assert.Equal(t, "billing@acme.com", rec.CustomerEmail)
	assert.Equal(t, "1. Logo design\n2. business cards", rec.Description)
	assert.Equal(t, 1250.51, rec.TotalAmount)
	assert.Equal(t, "2025-01-31", rec.DueDate)
	assert.True(t, rec.IsComplete())
}

func TestMerge_FirstWriteWins(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{
		CustomerName: "Acme Corp",
		TotalAmount:  500,
	}

	notices := m.Merge(&rec, domain.Extraction{
		CustomerName: strPtr("Globex"),
		TotalAmount:  numPtr(900),
	})

	assert.Empty(t, notices)
	assert.Equal(t, "Acme Corp", rec.CustomerName)
	assert.Equal(t, 500.0, rec.TotalAmount)
}

func TestMerge_InvalidEmailRejectedOthersApply(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{}

	notices := m.Merge(&rec, domain.Extraction{
		CustomerName:  strPtr("Acme Corp"),
		CustomerEmail: strPtr("not-an-email"),
	})

	require.Len(t, notices, 1)
	assert.Equal(t, domain.FieldCustomerEmail, notices[0].Field)
	assert.Contains(t, notices[0].Message, "not-an-email")
	assert.Empty(t, rec.CustomerEmail)
	assert.Equal(t, "Acme Corp", rec.CustomerName)
}

func TestMerge_UnparseableDateNotice(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{}

	notices := m.Merge(&rec, domain.Extraction{DueDate: strPtr("whenever works")})

	require.Len(t, notices, 1)
	assert.Equal(t, domain.FieldDueDate, notices[0].Field)
	assert.Empty(t, rec.DueDate)
}

func TestMerge_NonPositiveAmountNotice(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{}

	notices := m.Merge(&rec, domain.Extraction{TotalAmount: numPtr(-10)})

	require.Len(t, notices, 1)
	assert.Equal(t, domain.FieldTotalAmount, notices[0].Field)
	assert.Zero(t, rec.TotalAmount)
}

func TestMerge_EmptyExtractionNoOp(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{CustomerName: "Acme Corp"}

	notices := m.Merge(&rec, domain.Extraction{})

	assert.Empty(t, notices)
	assert.Equal(t, domain.Invoice{CustomerName: "Acme Corp"}, rec)
}

func TestMerge_WhitespaceOnlyIgnored(t *testing.T) {
	m := testMerger()
	rec := domain.Invoice{}

	notices := m.Merge(&rec, domain.Extraction{CustomerName: strPtr("   ")})

	assert.Empty(t, notices)
	assert.Empty(t, rec.CustomerName)
}

func TestRequestMessage_Grouping(t *testing.T) {
	one := RequestMessage([]string{domain.FieldCustomerName})
	assert.Equal(t, "I need the customer name to complete your invoice. Could you please provide this information?", one)

	two := RequestMessage([]string{domain.FieldCustomerName, domain.FieldCustomerEmail})
	assert.Equal(t, "I need the customer name and customer email address to complete your invoice.", two)

	many := RequestMessage([]string{domain.FieldCustomerName, domain.FieldCustomerEmail, domain.FieldTotalAmount})
	assert.Equal(t, "I need the following information: customer name, customer email address, and total amount.", many)

	assert.Empty(t, RequestMessage(nil))
}

func TestMissingFields_FixedOrder(t *testing.T) {
	rec := domain.Invoice{CustomerEmail: "a@b.co", TotalAmount: 10}
	assert.Equal(t, []string{
		domain.FieldCustomerName,
		domain.FieldDescription,
		domain.FieldDueDate,
	}, rec.MissingFields())
}
