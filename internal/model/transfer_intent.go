package model

import "github.com/google/uuid"

// TransferIntent is the client-side submission payload for a new transfer.
// It is immutable once submitted. The idempotency key is generated at
// creation and sent upstream so a duplicated submission of the same intent
// can be detected there; the in-flight guard in the flow controller remains
// the primary duplicate-submission defense.
type TransferIntent struct {
	Asset          Asset
	ToAddress      string
	FiatAmount     float64
	AssetAmount    float64
	Notes          string
	IdempotencyKey string
}

func NewTransferIntent(asset Asset, toAddress string, fiatAmount, assetAmount float64, notes string) *TransferIntent {
	return &TransferIntent{
		Asset:          asset,
		ToAddress:      toAddress,
		FiatAmount:     fiatAmount,
		AssetAmount:    assetAmount,
		Notes:          notes,
		IdempotencyKey: uuid.NewString(),
	}
}
