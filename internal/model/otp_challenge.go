package model

import (
	"time"

	"github.com/coinvault/transfer-gateway/internal/consts"
)

// OtpChallenge tracks the outstanding one-time passcode for a transfer.
// At most one challenge exists per transfer; a resend invalidates the prior
// code upstream.
type OtpChallenge struct {
	TransferID     string
	ExpectedLength int
	IssuedAt       time.Time
	ResendCooldown time.Duration
}

func NewOtpChallenge(transferID string, issuedAt time.Time) *OtpChallenge {
	return &OtpChallenge{
		TransferID:     transferID,
		ExpectedLength: consts.OTP_LENGTH,
		IssuedAt:       issuedAt,
		ResendCooldown: consts.OTP_RESEND_COOLDOWN,
	}
}
