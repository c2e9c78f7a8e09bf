package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// GatewayClient talks to the external payment gateway that holds the
// authoritative settlement state for control numbers.
type GatewayClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// VerifyTransaction asks the gateway whether the given transaction settles
// the control number for the given amount.
func (c *GatewayClient) VerifyTransaction(req VerifyTransactionRequest) (*VerifyTransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/gateway/verify-transaction/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("gateway API returned non-OK status: " + resp.Status)
	}

	var apiResp VerifyTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}
