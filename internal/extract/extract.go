// Package extract is the gateway between free-text user turns and
// structured invoice field extractions. The production implementation
// calls the model API; the static implementation serves tests and
// offline runs. Which one a session uses is decided at construction
// time, never probed at runtime.
package extract

import (
	"context"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/pricing"
)

// Result is the outcome of one extraction turn. A failed model call
// yields empty Fields and a user-facing Notice; the collection workflow
// treats that as "nothing extracted this turn", never as an error.
type Result struct {
	Fields domain.Extraction
	Usage  pricing.TurnUsage
	Notice string
}

// Extractor produces a structured field extraction from one user turn.
type Extractor interface {
	Extract(ctx context.Context, userText string) Result
}
