package receiptsnapshot

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coinvault/transfer-gateway/internal/model"
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

// Upsert overwrites the snapshot for a transfer wholesale; the upstream
// record is the only source of truth.
func (s *Store) Upsert(tx *gorm.DB, snapshot *model.ReceiptSnapshot) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "transfer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"asset", "to_address", "amount", "usd_amount",
			"status", "confirmations", "transfer_created_at", "completed_at", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (s *Store) GetByTransferID(tx *gorm.DB, transferID string) (*model.ReceiptSnapshot, error) {
	var snapshot model.ReceiptSnapshot
	err := tx.Where("transfer_id = ?", transferID).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// DeleteTerminalBefore prunes snapshots of completed/failed transfers last
// touched before the cutoff.
func (s *Store) DeleteTerminalBefore(tx *gorm.DB, cutoff time.Time) (int64, error) {
	res := tx.Where("status IN ? AND updated_at < ?",
		[]model.TransferStatus{model.TransferStatusCompleted, model.TransferStatusFailed},
		cutoff,
	).Delete(&model.ReceiptSnapshot{})
	return res.RowsAffected, res.Error
}
