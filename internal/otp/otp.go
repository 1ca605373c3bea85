package otp

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

type State string

const (
	StateAwaitingInput   State = "awaiting_input"
	StateSubmitting      State = "submitting"
	StateVerifiedSuccess State = "verified_success"
	StateVerifiedFailure State = "verified_failure"
)

var (
	// ErrInvalidCode rejects a submission client-side before any network
	// call: the code must be exactly 6 digits.
	ErrInvalidCode = errors.New("code must be exactly 6 digits")

	// ErrNotAwaitingInput rejects a submit while one is already in flight or
	// after the challenge resolved.
	ErrNotAwaitingInput = errors.New("verifier is not awaiting input")

	// ErrResendCooldown rejects a resend while the countdown is active.
	ErrResendCooldown = errors.New("resend is still cooling down")
)

// Verifier drives the OTP challenge for one transfer:
//
//	AwaitingInput --submit(6 digits)--> Submitting
//	Submitting --backend accepts--> VerifiedSuccess (terminal)
//	Submitting --backend rejects--> VerifiedFailure --dismiss--> AwaitingInput
//
// A transport failure during submit returns to AwaitingInput so the user can
// re-trigger; nothing is retried automatically.
type Verifier struct {
	mu sync.Mutex

	state     State
	input     *Input
	challenge *model.OtpChallenge
	record    *model.TransferRecord
	lastSent  time.Time

	custodyAPI custody.ICustodyAPI
	logger     *logger.Logger
	now        func() time.Time
}

type VerifierOption func(*Verifier)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// WithCooldown overrides the default resend cooldown.
func WithCooldown(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.challenge.ResendCooldown = d }
}

// NewVerifier starts a verifier for a transfer whose challenge was just
// issued (otpSent true on creation), so the resend countdown starts
// immediately.
func NewVerifier(custodyAPI custody.ICustodyAPI, logger *logger.Logger, transferID string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		state:      StateAwaitingInput,
		input:      NewInput(),
		custodyAPI: custodyAPI,
		logger:     logger,
		now:        time.Now,
	}
	v.challenge = model.NewOtpChallenge(transferID, v.now())
	for _, opt := range opts {
		opt(v)
	}
	v.challenge.IssuedAt = v.now()
	v.lastSent = v.challenge.IssuedAt
	return v
}

func (v *Verifier) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Verifier) TransferID() string {
	return v.challenge.TransferID
}

// Input exposes the slot buffer for keystroke/paste handling.
func (v *Verifier) Input() *Input {
	return v.input
}

// Record returns the transfer record the backend handed back on a
// successful verification, nil before that.
func (v *Verifier) Record() *model.TransferRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.record
}

// Submit verifies the code against the backend. The 6-digit check happens
// before any network call.
func (v *Verifier) Submit(actx *auth.Context, code string) (*model.TransferRecord, error) {
	if !IsValidCode(code) {
		return nil, ErrInvalidCode
	}

	v.mu.Lock()
	if v.state != StateAwaitingInput {
		v.mu.Unlock()
		return nil, ErrNotAwaitingInput
	}
	v.state = StateSubmitting
	v.mu.Unlock()

	record, err := v.custodyAPI.VerifyOTP(actx, v.challenge.TransferID, code)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		if errors.Is(err, custody.ErrOTPRejected) {
			v.state = StateVerifiedFailure
			return nil, custody.ErrOTPRejected
		}
		// transport-level failure: surface it and let the user re-trigger
		v.logger.Error("[Submit][VerifyOTP]", map[string]string{
			"error":       err.Error(),
			"transfer_id": v.challenge.TransferID,
		})
		v.state = StateAwaitingInput
		return nil, err
	}

	v.state = StateVerifiedSuccess
	v.record = record
	return record, nil
}

// Dismiss acknowledges a failed verification: back to AwaitingInput with the
// slots cleared.
func (v *Verifier) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateVerifiedFailure {
		return
	}
	v.input.Clear()
	v.state = StateAwaitingInput
}

// ResendRemaining returns how long until resend becomes available, 0 when it
// already is.
func (v *Verifier) ResendRemaining() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resendRemainingLocked()
}

func (v *Verifier) resendRemainingLocked() time.Duration {
	elapsed := v.now().Sub(v.lastSent)
	if remaining := v.challenge.ResendCooldown - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// Resend asks the backend for a fresh code. Refused while the cooldown is
// active; a successful resend restarts the countdown at its full value and
// invalidates the previous code upstream.
func (v *Verifier) Resend(actx *auth.Context) error {
	v.mu.Lock()
	if remaining := v.resendRemainingLocked(); remaining > 0 {
		v.mu.Unlock()
		return ErrResendCooldown
	}
	v.mu.Unlock()

	if err := v.custodyAPI.ResendOTP(actx, v.challenge.TransferID); err != nil {
		v.logger.Error("[Resend][ResendOTP]", map[string]string{
			"error":       err.Error(),
			"transfer_id": v.challenge.TransferID,
		})
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSent = v.now()
	v.challenge.IssuedAt = v.lastSent
	return nil
}
