package extract

import (
	"context"
	"fmt"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/llm"
	"invoiceflow/internal/pricing"
)

const extractionSystemPrompt = `You are an expert at extracting invoice information from text.
Analyze the user input and extract any invoice-related information.

Return ONLY a JSON object with the following fields (use null for missing information):
{
    "customer_name": "extracted customer name",
    "customer_email": "extracted email address",
    "invoice_description": "extracted description/service details",
    "total_amount": extracted_amount_as_number,
    "due_date": "extracted date text as provided by the user"
}

Important guidelines:
- For amounts, extract only the numeric value (e.g., from "$500" extract 500)
- For dates, extract the raw date text as provided by the user (e.g., "30 days", "April 12 2025", "next week", "net 30")
- For descriptions, capture ALL services/products mentioned, including multiple items separated by commas, semicolons, or line breaks
- Do NOT convert dates to YYYY-MM-DD format - return the original text
- Return null for any field that cannot be confidently extracted
- Do not include any text outside the JSON object
- Response must be valid JSON only`

// ModelExtractor is the production Extractor backed by the model API.
type ModelExtractor struct {
	client llm.Client
	prices pricing.Table
}

// NewModelExtractor wires the model client to a price table. The table is
// passed in explicitly; the extractor holds no global pricing state.
func NewModelExtractor(client llm.Client, prices pricing.Table) *ModelExtractor {
	return &ModelExtractor{client: client, prices: prices}
}

func (e *ModelExtractor) Extract(ctx context.Context, userText string) Result {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: extractionSystemPrompt,
		UserPrompt:   fmt.Sprintf("User Input: %q", userText),
	})
	if err != nil {
		// A failed call is a turn with nothing extracted, not an error.
		return Result{Notice: llm.FriendlyMessage(err)}
	}

	usage := pricing.TurnUsage{
		Model:          resp.Model,
		InputTokens:    resp.Usage.InputTokens,
		OutputTokens:   resp.Usage.OutputTokens,
		CachedTokens:   resp.Usage.CachedTokens,
		CostUSD:        e.prices.Cost(resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens),
		ResponseTimeMs: resp.LatencyMs,
	}

	fields, err := llm.ExtractJSON[domain.Extraction](resp.Text, nil)
	if err != nil {
		// Malformed output still consumed tokens; report usage with an
		// empty extraction.
		return Result{Usage: usage}
	}

	return Result{Fields: fields, Usage: usage}
}
