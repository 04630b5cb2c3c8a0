package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"invoiceflow/internal/pricing"
	"invoiceflow/internal/repository"
	"invoiceflow/internal/service"
)

type sessionInfoResponse struct {
	SessionID     string               `json:"session_id"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	InvoiceStatus string               `json:"invoice_status"`
	MissingFields []string             `json:"missing_fields"`
	Usage         pricing.SessionUsage `json:"metadata"`
}

type sessionResetResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// SessionInfoHandler handles GET /api/session/{sessionID}.
func SessionInfoHandler(sessions service.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		info, err := sessions.Info(r.Context(), sessionID)
		if err != nil {
			respondSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sessionInfoResponse{
			SessionID:     info.SessionID,
			Status:        string(info.Status),
			CreatedAt:     info.CreatedAt,
			UpdatedAt:     info.UpdatedAt,
			InvoiceStatus: string(info.InvoiceStatus),
			MissingFields: info.MissingFields,
			Usage:         info.Usage,
		})
	}
}

// ResetSessionHandler handles POST /api/session/{sessionID}/reset.
func ResetSessionHandler(sessions service.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		if err := sessions.Reset(r.Context(), sessionID); err != nil {
			respondSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sessionResetResponse{
			Success:   true,
			Message:   "Session reset successfully",
			SessionID: sessionID,
		})
	}
}

func respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	log.Error("session operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}
