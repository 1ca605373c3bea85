package model

import (
	"fmt"
	"time"
)

type TransferStatus string

const (
	TransferStatusPending    TransferStatus = "pending"
	TransferStatusProcessing TransferStatus = "processing"
	TransferStatusCompleted  TransferStatus = "completed"
	TransferStatusFailed     TransferStatus = "failed"
)

// Terminal reports whether the status can no longer change. Once terminal,
// the confirmations array is frozen too.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusFailed
}

// TransferRecord mirrors the backend-owned transfer state. The gateway never
// mutates one except by replacing it wholesale with a re-fetched copy.
type TransferRecord struct {
	ID            string         `json:"_id"`
	Asset         Asset          `json:"asset"`
	ToAddress     string         `json:"toAddress"`
	Amount        float64        `json:"amount"`
	USDAmount     float64        `json:"usdAmount"`
	Status        TransferStatus `json:"status"`
	Confirmations []bool         `json:"confirmations"`
	CreatedAt     time.Time      `json:"createdAt"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
}

// ConfirmedCount returns how many confirmation slots are checked.
func (r *TransferRecord) ConfirmedCount() int {
	n := 0
	for _, c := range r.Confirmations {
		if c {
			n++
		}
	}
	return n
}

// ProgressCaption renders the fractional confirmation progress, e.g. "2/4".
func (r *TransferRecord) ProgressCaption() string {
	return fmt.Sprintf("%d/%d", r.ConfirmedCount(), len(r.Confirmations))
}
