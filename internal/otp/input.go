package otp

import "github.com/coinvault/transfer-gateway/internal/consts"

// Input models the 6-slot code entry field. Characters are filtered per
// keystroke so only digits ever land in a slot, and a pasted 6-digit string
// fills every slot atomically.
type Input struct {
	digits []rune
}

func NewInput() *Input {
	return &Input{digits: make([]rune, 0, consts.OTP_LENGTH)}
}

// TypeChar appends one character if it is a digit and a slot is free.
// Returns whether the character was accepted.
func (i *Input) TypeChar(ch rune) bool {
	if ch < '0' || ch > '9' {
		return false
	}
	if len(i.digits) >= consts.OTP_LENGTH {
		return false
	}
	i.digits = append(i.digits, ch)
	return true
}

// Backspace removes the last filled slot.
func (i *Input) Backspace() {
	if len(i.digits) > 0 {
		i.digits = i.digits[:len(i.digits)-1]
	}
}

// Paste fills all slots from a pasted string. Anything other than exactly
// 6 digits is ignored and leaves the slots untouched.
func (i *Input) Paste(s string) bool {
	runes := []rune(s)
	if len(runes) != consts.OTP_LENGTH {
		return false
	}
	for _, ch := range runes {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	i.digits = append(i.digits[:0], runes...)
	return true
}

func (i *Input) Clear() {
	i.digits = i.digits[:0]
}

// Complete reports whether all slots are filled.
func (i *Input) Complete() bool {
	return len(i.digits) == consts.OTP_LENGTH
}

func (i *Input) Code() string {
	return string(i.digits)
}

// IsValidCode checks the client-side submission rule: exactly 6 numeric
// characters.
func IsValidCode(code string) bool {
	if len(code) != consts.OTP_LENGTH {
		return false
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
