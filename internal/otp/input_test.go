package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputTypeChar(t *testing.T) {
	in := NewInput()

	assert.True(t, in.TypeChar('1'))
	assert.True(t, in.TypeChar('2'))

	// non-digits are filtered per keystroke
	assert.False(t, in.TypeChar('a'))
	assert.False(t, in.TypeChar(' '))
	assert.False(t, in.TypeChar('-'))
	assert.Equal(t, "12", in.Code())

	assert.True(t, in.TypeChar('3'))
	assert.True(t, in.TypeChar('4'))
	assert.True(t, in.TypeChar('5'))
	assert.True(t, in.TypeChar('6'))
	assert.True(t, in.Complete())

	// full: further digits are dropped
	assert.False(t, in.TypeChar('7'))
	assert.Equal(t, "123456", in.Code())
}

func TestInputBackspace(t *testing.T) {
	in := NewInput()
	in.TypeChar('9')
	in.TypeChar('8')

	in.Backspace()
	assert.Equal(t, "9", in.Code())

	in.Backspace()
	in.Backspace() // empty: no-op
	assert.Equal(t, "", in.Code())
}

func TestInputPaste(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		paste    string
		accepted bool
		want     string
	}{
		{name: "six digits fill all slots", paste: "123456", accepted: true, want: "123456"},
		{name: "replaces existing digits atomically", initial: "99", paste: "654321", accepted: true, want: "654321"},
		{name: "too short is a no-op", initial: "12", paste: "123", want: "12"},
		{name: "too long is a no-op", paste: "1234567", want: ""},
		{name: "non-digit content is a no-op", paste: "12a456", want: ""},
		{name: "empty paste is a no-op", initial: "1", paste: "", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			for _, ch := range tt.initial {
				in.TypeChar(ch)
			}

			assert.Equal(t, tt.accepted, in.Paste(tt.paste))
			assert.Equal(t, tt.want, in.Code())
		})
	}
}

func TestIsValidCode(t *testing.T) {
	assert.True(t, IsValidCode("123456"))
	assert.True(t, IsValidCode("000000"))
	assert.False(t, IsValidCode("12345"))
	assert.False(t, IsValidCode("1234567"))
	assert.False(t, IsValidCode("12345a"))
	assert.False(t, IsValidCode(""))
}
