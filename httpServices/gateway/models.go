package gateway

// VerifyTransactionRequest asks the gateway whether a transaction settles a
// control number.
type VerifyTransactionRequest struct {
	ControlNumber string  `json:"control_number"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// VerifyTransactionResponse is the gateway's settlement answer.
type VerifyTransactionResponse struct {
	Status        string  `json:"status"` // success | failed
	Settled       bool    `json:"settled"`
	AmountPaid    float64 `json:"amount_paid"`
	TransactionID string  `json:"transaction_id"`
	Message       string  `json:"message"`
}
