package custody

import (
	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/model"
)

// ICustodyAPI is the documented REST contract of the custodial backend.
// Every call is bearer-authorized through the supplied auth context.
// Mutating calls (create, verify, resend) are never retried here: a retry
// could double-submit a transfer. Reads retry a bounded number of times.
type ICustodyAPI interface {
	// CreateTransfer submits a transfer intent and returns the backend
	// transfer id plus the OTP routing flags.
	CreateTransfer(actx *auth.Context, intent *model.TransferIntent) (*CreateTransferResult, error)

	// VerifyOTP binds a 6-digit code to a transfer. The backend does not
	// distinguish wrong from expired codes.
	VerifyOTP(actx *auth.Context, transferID, code string) (*model.TransferRecord, error)

	// ResendOTP asks the backend to issue a fresh code, invalidating the
	// previous one.
	ResendOTP(actx *auth.Context, transferID string) error

	// GetTransfer fetches the current transfer record.
	GetTransfer(actx *auth.Context, transferID string) (*model.TransferRecord, error)

	// GetWalletBalances returns the caller's held balance per asset key.
	GetWalletBalances(actx *auth.Context) (map[model.Asset]float64, error)
}
