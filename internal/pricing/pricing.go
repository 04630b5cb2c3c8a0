// Package pricing tracks model token usage and API cost, per turn and
// cumulatively per session. The price table is explicit configuration
// handed to whoever records usage; there is no process-wide table.
package pricing

import "time"

// ModelPrice is the USD price per one million tokens.
type ModelPrice struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Table maps model identifiers to their token prices. Unknown models
// cost zero rather than failing; usage is still counted.
type Table map[string]ModelPrice

// DefaultTable returns the published per-model prices.
func DefaultTable() Table {
	return Table{
		"claude-opus-4-1-20250805": {InputPerMTok: 15.00, OutputPerMTok: 75.00},
		"claude-3-sonnet-20240229": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
		"claude-3-haiku-20240307":  {InputPerMTok: 0.25, OutputPerMTok: 1.25},
	}
}

// Cost computes the USD cost of a call.
func (t Table) Cost(model string, inputTokens, outputTokens int) float64 {
	price, ok := t[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000*price.InputPerMTok +
		float64(outputTokens)/1_000_000*price.OutputPerMTok
}

// TurnUsage records one model call.
type TurnUsage struct {
	Model          string  `json:"model"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	CachedTokens   int     `json:"cached_tokens"`
	CostUSD        float64 `json:"cost_usd"`
	ResponseTimeMs int64   `json:"response_time_ms"`
}

// SessionUsage accumulates usage across a whole conversation.
type SessionUsage struct {
	TotalCalls          int        `json:"total_api_calls"`
	TotalInputTokens    int        `json:"total_input_tokens"`
	TotalOutputTokens   int        `json:"total_output_tokens"`
	TotalCachedTokens   int        `json:"total_cached_tokens"`
	TotalCostUSD        float64    `json:"total_cost_usd"`
	TotalResponseTimeMs int64      `json:"total_response_time_ms"`
	SessionStart        time.Time  `json:"session_start_time"`
	LastCall            *time.Time `json:"last_call_time"`
}

// NewSessionUsage starts an empty accumulator.
func NewSessionUsage(start time.Time) *SessionUsage {
	return &SessionUsage{SessionStart: start}
}

// Add folds one turn into the session totals.
func (s *SessionUsage) Add(turn TurnUsage, at time.Time) {
	s.TotalCalls++
	s.TotalInputTokens += turn.InputTokens
	s.TotalOutputTokens += turn.OutputTokens
	s.TotalCachedTokens += turn.CachedTokens
	s.TotalCostUSD += turn.CostUSD
	s.TotalResponseTimeMs += turn.ResponseTimeMs
	s.LastCall = &at
}

// AvgCostPerCall returns the mean USD cost of a call so far.
func (s *SessionUsage) AvgCostPerCall() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return s.TotalCostUSD / float64(s.TotalCalls)
}

// AvgResponseTimeMs returns the mean call latency so far.
func (s *SessionUsage) AvgResponseTimeMs() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.TotalResponseTimeMs) / float64(s.TotalCalls)
}
