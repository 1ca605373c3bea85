package flow

import (
	"time"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/otp"
)

// InitiateResult mirrors the backend's answer to a transfer creation.
type InitiateResult struct {
	TransferID              string
	RequiresOTPVerification bool
	OtpSent                 bool
}

// Receipt is a transfer record plus whether it came from the local snapshot
// cache instead of a live upstream fetch.
type Receipt struct {
	Record    *model.TransferRecord
	FromCache bool
}

// OtpStatus reports where the verifier state machine stands for a transfer.
type OtpStatus struct {
	State           otp.State
	ResendRemaining time.Duration
}

// IController drives the transfer/withdrawal flow end to end: validation,
// initiation, the OTP gate, and receipt tracking. It owns no authoritative
// state; everything it holds is re-derivable from the backend.
type IController interface {
	// Initiate validates the intent and submits it upstream. Exactly one
	// creation request fires per call; concurrent re-submission of the same
	// intent is refused while the first is in flight.
	Initiate(actx *auth.Context, intent *model.TransferIntent) (*InitiateResult, error)

	// VerifyOTP submits a code for a transfer awaiting OTP. On success the
	// transfer moves on to receipt tracking.
	VerifyOTP(actx *auth.Context, transferID, code string) (*model.TransferRecord, error)

	// ResendOTP requests a fresh code, subject to the cooldown.
	ResendOTP(actx *auth.Context, transferID string) error

	// OtpStatus reports the verifier state for a transfer with an
	// outstanding challenge.
	OtpStatus(transferID string) (*OtpStatus, error)

	// GetReceipt fetches the current record, falling back to the last
	// persisted snapshot when the upstream fetch fails.
	GetReceipt(actx *auth.Context, transferID string) (*Receipt, error)

	// Shutdown tears down every active poller and waits for them to exit.
	Shutdown()
}
