package model

import (
	"time"

	"gorm.io/gorm"
)

// ReceiptSnapshot is the persisted last-known copy of a TransferRecord.
// It is a fallback render value only, never a source of truth: every
// successful upstream fetch overwrites it wholesale.
type ReceiptSnapshot struct {
	gorm.Model
	TransferID        string         `gorm:"column:transfer_id;type:varchar(255);not null;uniqueIndex"`
	Asset             string         `gorm:"column:asset;type:varchar(50);not null"`
	ToAddress         string         `gorm:"column:to_address;type:varchar(255);not null"`
	Amount            float64        `gorm:"column:amount;not null"`
	USDAmount         float64        `gorm:"column:usd_amount;not null"`
	Status            TransferStatus `gorm:"column:status;type:varchar(50);not null"`
	Confirmations     []bool         `gorm:"column:confirmations;serializer:json"`
	TransferCreatedAt time.Time      `gorm:"column:transfer_created_at"`
	CompletedAt       *time.Time     `gorm:"column:completed_at"`
}

func (ReceiptSnapshot) TableName() string {
	return "receipt_snapshots"
}

// SnapshotFromRecord flattens a backend transfer record into its persisted
// mirror.
func SnapshotFromRecord(rec *TransferRecord) *ReceiptSnapshot {
	return &ReceiptSnapshot{
		TransferID:        rec.ID,
		Asset:             string(rec.Asset),
		ToAddress:         rec.ToAddress,
		Amount:            rec.Amount,
		USDAmount:         rec.USDAmount,
		Status:            rec.Status,
		Confirmations:     append([]bool(nil), rec.Confirmations...),
		TransferCreatedAt: rec.CreatedAt,
		CompletedAt:       rec.CompletedAt,
	}
}

// ToRecord rebuilds the transfer record shape from a snapshot for fallback
// rendering.
func (s *ReceiptSnapshot) ToRecord() *TransferRecord {
	return &TransferRecord{
		ID:            s.TransferID,
		Asset:         Asset(s.Asset),
		ToAddress:     s.ToAddress,
		Amount:        s.Amount,
		USDAmount:     s.USDAmount,
		Status:        s.Status,
		Confirmations: append([]bool(nil), s.Confirmations...),
		CreatedAt:     s.TransferCreatedAt,
		CompletedAt:   s.CompletedAt,
	}
}
