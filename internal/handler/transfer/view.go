package transfer

import (
	"github.com/coinvault/transfer-gateway/internal/flow"
	"github.com/coinvault/transfer-gateway/internal/model"
)

// CreateTransferResponse routes the caller: when RequiresOTPVerification is
// true the next step is the OTP endpoints, otherwise the receipt endpoint.
type CreateTransferResponse struct {
	TransferID              string `json:"transfer_id"`
	RequiresOTPVerification bool   `json:"requires_otp_verification"`
	OtpSent                 bool   `json:"otp_sent"`
}

// OtpStatusResponse reports the verifier state and the resend countdown in
// whole seconds, which is what a countdown display wants.
type OtpStatusResponse struct {
	TransferID             string `json:"transfer_id"`
	State                  string `json:"state"`
	ResendRemainingSeconds int    `json:"resend_remaining_seconds"`
}

// ReceiptResponse is the render-ready receipt. While the transfer is live it
// carries the confirmation slots and a progress caption; once terminal those
// are dropped in favor of a single outcome banner.
type ReceiptResponse struct {
	TransferID    string      `json:"transfer_id"`
	Asset         model.Asset `json:"asset"`
	Symbol        string      `json:"symbol"`
	ToAddress     string      `json:"to_address"`
	Amount        float64     `json:"amount"`
	USDAmount     float64     `json:"usd_amount"`
	Status        string      `json:"status"`
	Confirmations []bool      `json:"confirmations,omitempty"`
	Progress      string      `json:"progress,omitempty"`
	Banner        string      `json:"banner,omitempty"`
	FromCache     bool        `json:"from_cache,omitempty"`
}

func toReceiptResponse(record *model.TransferRecord, fromCache bool) ReceiptResponse {
	resp := ReceiptResponse{
		TransferID: record.ID,
		Asset:      record.Asset,
		Symbol:     record.Asset.Symbol(),
		ToAddress:  record.ToAddress,
		Amount:     record.Amount,
		USDAmount:  record.USDAmount,
		Status:     string(record.Status),
		FromCache:  fromCache,
	}

	if record.Status.Terminal() {
		if record.Status == model.TransferStatusCompleted {
			resp.Banner = "Approved"
		} else {
			resp.Banner = "Rejected"
		}
		return resp
	}

	resp.Confirmations = record.Confirmations
	resp.Progress = record.ProgressCaption()
	return resp
}

func receiptFromFlow(receipt *flow.Receipt) ReceiptResponse {
	return toReceiptResponse(receipt.Record, receipt.FromCache)
}
