package payment

import (
	"fmt"
	"strings"
)

// SubmitPaymentRequest attaches the requester's gateway transaction reference
// to a pending payment. The transition to paid stays server-driven.
type SubmitPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,min=1,max=100"`
}

func (r SubmitPaymentRequest) Validate() error {
	if strings.TrimSpace(r.TransactionID) == "" {
		return fmt.Errorf("transaction_id is required")
	}
	return nil
}
