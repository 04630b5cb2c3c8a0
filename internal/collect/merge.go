package collect

import (
	"fmt"
	"strings"
	"time"

	"invoiceflow/internal/domain"
)

// Notice is a non-fatal, user-facing message about one field whose update
// was rejected during a merge. Notices never abort the merge; every other
// field in the same extraction still applies.
type Notice struct {
	Field   string
	Message string
}

// Merger applies per-turn extractions onto an accumulating invoice record
// under the first-write-wins policy: once a field holds a non-empty value
// a later extraction never changes it. The only overwrite path is an
// explicit edit, which bypasses the merger entirely.
type Merger struct {
	dates Normalizer
}

// NewMerger builds a Merger whose date normalizer resolves relative
// phrases against now. A nil now uses the system clock.
func NewMerger(now func() time.Time) *Merger {
	return &Merger{dates: Normalizer{Now: now}}
}

// Merge applies ext to rec field by field and returns any validation
// notices. Empty extractions are a no-op.
func (m *Merger) Merge(rec *domain.Invoice, ext domain.Extraction) []Notice {
	var notices []Notice

	if v := stringValue(ext.CustomerName); v != "" && rec.CustomerName == "" {
		rec.CustomerName = v
	}

	if v := stringValue(ext.CustomerEmail); v != "" && rec.CustomerEmail == "" {
		if domain.ValidEmail(v) {
			rec.CustomerEmail = v
		} else {
			notices = append(notices, Notice{
				Field:   domain.FieldCustomerEmail,
				Message: fmt.Sprintf("%q is not a valid email address", v),
			})
		}
	}

	if v := stringValue(ext.Description); v != "" && rec.Description == "" {
		rec.Description = FormatDescription(v)
	}

	if ext.TotalAmount != nil && rec.TotalAmount == 0 {
		if amount := *ext.TotalAmount; amount > 0 {
			rec.TotalAmount = domain.RoundAmount(amount)
		} else {
			notices = append(notices, Notice{
				Field:   domain.FieldTotalAmount,
				Message: fmt.Sprintf("amount must be greater than 0, got %v", *ext.TotalAmount),
			})
		}
	}

	if v := stringValue(ext.DueDate); v != "" && rec.DueDate == "" {
		if date, ok := m.dates.Normalize(v); ok {
			rec.DueDate = date
		} else {
			notices = append(notices, Notice{
				Field:   domain.FieldDueDate,
				Message: fmt.Sprintf("could not parse date %q, please provide a clearer date format", v),
			})
		}
	}

	return notices
}

// RequestMessage phrases a prompt for the given missing fields. The
// grouping rule is fixed: one field gets a single-field sentence, two get
// an "X and Y" sentence, three or more a comma list with a final "and Z".
func RequestMessage(missing []string) string {
	labels := make([]string, len(missing))
	for i, f := range missing {
		labels[i] = domain.FieldLabels[f]
	}

	switch len(labels) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("I need the %s to complete your invoice. Could you please provide this information?", labels[0])
	case 2:
		return fmt.Sprintf("I need the %s and %s to complete your invoice.", labels[0], labels[1])
	default:
		head := strings.Join(labels[:len(labels)-1], ", ")
		return fmt.Sprintf("I need the following information: %s, and %s.", head, labels[len(labels)-1])
	}
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
