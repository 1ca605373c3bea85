package consts

import "time"

const (
	// OTP_LENGTH is the exact number of digits in a one-time passcode.
	OTP_LENGTH = 6

	// OTP_RESEND_COOLDOWN is the window during which a resend request is refused.
	OTP_RESEND_COOLDOWN = 30 * time.Second

	// RECEIPT_POLL_INTERVAL is the fixed cadence for refreshing a transfer record
	// until it reaches a terminal status.
	RECEIPT_POLL_INTERVAL = 5 * time.Second

	// CONFIRMATION_SLOTS is the fixed length of the confirmations array mirrored
	// from the custody backend.
	CONFIRMATION_SLOTS = 4
)
