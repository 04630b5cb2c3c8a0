package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"invoiceflow/internal/repository"
	"invoiceflow/internal/service"
)

type approvalRequest struct {
	SessionID    string         `json:"session_id"`
	Action       string         `json:"action"`
	FieldUpdates map[string]any `json:"field_updates"`
}

type approvalResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	InvoiceID     string   `json:"invoice_id,omitempty"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	PreviewURL    string   `json:"preview_url,omitempty"`
	PDFURL        string   `json:"pdf_url,omitempty"`
	UpdatedFields []string `json:"updated_fields,omitempty"`
	InvoiceStatus string   `json:"invoice_status,omitempty"`
}

// ApproveInvoiceHandler handles POST /api/invoice/approve. The "approve"
// action creates the invoice; "edit" overwrites fields with validated
// values.
func ApproveInvoiceHandler(invoices service.InvoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approvalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
			return
		}
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "session_id is required")
			return
		}
		if req.Action == "" {
			req.Action = "approve"
		}

		switch req.Action {
		case "approve":
			result, err := invoices.Approve(r.Context(), req.SessionID)
			if err != nil {
				respondInvoiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, approvalResponse{
				Success:       true,
				Message:       result.Message,
				InvoiceID:     result.Invoice.ID,
				InvoiceNumber: result.Invoice.Number,
				PreviewURL:    result.Invoice.PreviewURL,
				PDFURL:        result.Invoice.PDFURL,
			})
		case "edit":
			result, err := invoices.Edit(r.Context(), req.SessionID, req.FieldUpdates)
			if err != nil {
				respondInvoiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, approvalResponse{
				Success:       true,
				Message:       "Invoice fields updated successfully",
				UpdatedFields: result.UpdatedFields,
				InvoiceStatus: string(result.InvoiceStatus),
			})
		default:
			writeError(w, http.StatusBadRequest, "bad_request", "unsupported action: "+req.Action)
		}
	}
}

func respondInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrIncompleteInvoice), errors.Is(err, service.ErrInvalidFieldUpdate):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		log.Error("invoice operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
