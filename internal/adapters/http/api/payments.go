// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shiftsync/shiftsync/internal/adapters/payments"
)

// PaymentDependencies defines the interface for payment simulation.
type PaymentDependencies interface {
	SimulatePayment(ctx context.Context, req payments.Request) (payments.Receipt, error)
}

// PaymentsHandler handles payment simulation requests.
type PaymentsHandler struct {
	deps PaymentDependencies
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(deps PaymentDependencies) *PaymentsHandler {
	return &PaymentsHandler{deps: deps}
}

// paymentRequest mirrors the OpenAPI schema for POST /payments/simulate.
type paymentRequest struct {
	ShiftID        string `json:"shiftId"`
	AmountCents    int64  `json:"amountCents"`
	IdempotencyKey string `json:"idempotencyKey"`
}

type paymentResponse struct {
	PaymentID   string `json:"paymentId"`
	ShiftID     string `json:"shiftId"`
	AmountCents int64  `json:"amountCents"`
	Status      string `json:"status"`
	ProcessedAt string `json:"processedAt"`
	Replayed    bool   `json:"replayed"`
}

// HandleSimulate handles POST /payments/simulate requests.
func (h *PaymentsHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}
	receipt, err := h.deps.SimulatePayment(r.Context(), payments.Request{
		ShiftID:        req.ShiftID,
		AmountCents:    req.AmountCents,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{
		PaymentID:   receipt.PaymentID,
		ShiftID:     receipt.ShiftID,
		AmountCents: receipt.AmountCents,
		Status:      receipt.Status,
		ProcessedAt: receipt.ProcessedAt.Format(time.RFC3339),
		Replayed:    receipt.Replayed,
	})
}
