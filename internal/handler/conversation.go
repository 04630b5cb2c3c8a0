package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"invoiceflow/internal/agent"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/pricing"
	"invoiceflow/internal/repository"
	"invoiceflow/internal/service"
)

type conversationRequest struct {
	UserInput string `json:"user_input"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type conversationResponse struct {
	Success       bool                   `json:"success"`
	Action        string                 `json:"action"`
	Message       string                 `json:"message"`
	SessionID     string                 `json:"session_id"`
	InvoiceStatus string                 `json:"invoice_status"`
	MissingFields []string               `json:"missing_fields,omitempty"`
	CurrentData   *domain.Invoice        `json:"current_data,omitempty"`
	InvoiceData   *domain.Invoice        `json:"invoice_data,omitempty"`
	Preview       *domain.Invoice        `json:"preview,omitempty"`
	ExtractedData *domain.Extraction     `json:"extracted_data,omitempty"`
	Notices       []string               `json:"notices,omitempty"`
	Invoice       *domain.CreatedInvoice `json:"invoice,omitempty"`
	SessionUsage  pricing.SessionUsage   `json:"session_metadata"`
}

// ConversationHandler handles POST /api/conversation.
func ConversationHandler(conversations service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.UserInput) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "user_input is required")
			return
		}

		result, err := conversations.HandleTurn(r.Context(), req.UserInput, req.SessionID, req.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				writeError(w, http.StatusNotFound, "not_found", err.Error())
				return
			}
			log.Error("conversation turn failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
			return
		}

		writeJSON(w, http.StatusOK, buildConversationResponse(result))
	}
}

func buildConversationResponse(result *service.TurnResult) conversationResponse {
	resp := result.Response
	record := resp.Record

	out := conversationResponse{
		Success:       resp.Action != agent.ActionCreationFailed,
		Action:        string(resp.Action),
		Message:       resp.Message,
		SessionID:     result.SessionID,
		InvoiceStatus: string(resp.InvoiceStatus),
		SessionUsage:  result.SessionUsage,
	}
	for _, n := range resp.Notices {
		out.Notices = append(out.Notices, n.Message)
	}

	switch resp.Action {
	case agent.ActionCollecting:
		out.MissingFields = resp.MissingFields
		out.CurrentData = &record
		out.ExtractedData = &resp.Extracted
	case agent.ActionReady:
		out.MissingFields = []string{}
		out.InvoiceData = &record
		out.Preview = &record
	case agent.ActionCreated:
		out.Invoice = resp.Invoice
	case agent.ActionEditRequest:
		out.CurrentData = &record
	}
	return out
}
