package domain

import (
	"math"
	"regexp"
	"time"
)

// Canonical field names. Every caller constructing an extraction or an
// edit request must use exactly these keys.
const (
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldDescription   = "invoice_description"
	FieldTotalAmount   = "total_amount"
	FieldDueDate       = "due_date"
)

// RequiredFields lists the five invoice fields in their fixed priority
// order. MissingFields output always follows this order regardless of the
// order in which fields were filled.
var RequiredFields = []string{
	FieldCustomerName,
	FieldCustomerEmail,
	FieldDescription,
	FieldTotalAmount,
	FieldDueDate,
}

// FieldLabels maps field names to the human-readable phrasing used when
// asking the user for missing information.
var FieldLabels = map[string]string{
	FieldCustomerName:  "customer name",
	FieldCustomerEmail: "customer email address",
	FieldDescription:   "description of services/products",
	FieldTotalAmount:   "total amount",
	FieldDueDate:       "due date (e.g., '30 days', 'April 12', 'next week', 'net 30')",
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Invoice is the mutable accumulator filled over a conversation. Zero
// values mean "not yet collected". Once a field is non-empty it is never
// overwritten by a later extraction; the only overwrite path is an
// explicit edit.
type Invoice struct {
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	Description   string  `json:"invoice_description,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	DueDate       string  `json:"due_date,omitempty"`
}

// MissingFields returns the required fields that are still empty, in the
// fixed priority order.
func (inv *Invoice) MissingFields() []string {
	missing := []string{}
	if inv.CustomerName == "" {
		missing = append(missing, FieldCustomerName)
	}
	if inv.CustomerEmail == "" {
		missing = append(missing, FieldCustomerEmail)
	}
	if inv.Description == "" {
		missing = append(missing, FieldDescription)
	}
	if inv.TotalAmount == 0 {
		missing = append(missing, FieldTotalAmount)
	}
	if inv.DueDate == "" {
		missing = append(missing, FieldDueDate)
	}
	return missing
}

// IsComplete reports whether all five required fields are present.
func (inv *Invoice) IsComplete() bool {
	return len(inv.MissingFields()) == 0
}

// Status derives the collection state from the record contents.
func (inv *Invoice) Status() InvoiceStatus {
	if inv.IsComplete() {
		return InvoiceReady
	}
	return InvoiceCollecting
}

// ValidEmail checks the standard local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// RoundAmount rounds a monetary amount to 2 decimal places.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidDueDate checks for a YYYY-MM-DD calendar date.
func ValidDueDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// CreatedInvoice is the result of an approved creation. PDF generation is
// stubbed: the URLs point at placeholder routes.
type CreatedInvoice struct {
	ID            string    `json:"invoice_id"`
	Number        string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	DueDate       string    `json:"due_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	PreviewURL    string    `json:"preview_url"`
	PDFURL        string    `json:"pdf_url"`
}
