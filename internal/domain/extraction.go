package domain

// Extraction is the per-turn structured guess at invoice field values
// produced by the model. Nil pointers mean the field was not mentioned in
// the turn. An all-nil extraction is a legitimate "nothing extracted"
// result, not an error.
type Extraction struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerEmail *string  `json:"customer_email"`
	Description   *string  `json:"invoice_description"`
	TotalAmount   *float64 `json:"total_amount"`
	DueDate       *string  `json:"due_date"`
}

// Empty reports whether nothing was extracted this turn.
func (e Extraction) Empty() bool {
	return e.CustomerName == nil && e.CustomerEmail == nil &&
		e.Description == nil && e.TotalAmount == nil && e.DueDate == nil
}
