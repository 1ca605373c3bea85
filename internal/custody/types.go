package custody

import (
	"fmt"

	"github.com/coinvault/transfer-gateway/internal/model"
)

// CreateTransferResult is the decoded body of POST /transfer.
type CreateTransferResult struct {
	TransferID              string `json:"_id"`
	RequiresOTPVerification bool   `json:"requiresOTPVerification"`
	OtpSent                 bool   `json:"otpSent"`
}

// APIError is a backend-rejected request (4xx/5xx with a message payload).
// The message is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("custody api error (status %d): %s", e.StatusCode, e.Message)
}

type createTransferRequest struct {
	Asset     model.Asset `json:"asset"`
	ToAddress string      `json:"toAddress"`
	Amount    float64     `json:"amount"`
	Notes     string      `json:"notes,omitempty"`
}

type createTransferResponse struct {
	Data CreateTransferResult `json:"data"`
}

type verifyOTPRequest struct {
	TransferID string `json:"transferId"`
	OTP        string `json:"otp"`
}

type verifyOTPResponse struct {
	Success bool                  `json:"success"`
	Data    *model.TransferRecord `json:"data"`
	Message string                `json:"message"`
}

type resendOTPRequest struct {
	TransferID string `json:"transferId"`
}

type resendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type getTransferResponse struct {
	Data *model.TransferRecord `json:"data"`
}

type walletBalancesResponse struct {
	Data struct {
		WalletBalances map[model.Asset]float64 `json:"walletBalances"`
	} `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
