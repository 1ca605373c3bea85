package receiptsnapshot

import (
	"time"

	"gorm.io/gorm"

	"github.com/coinvault/transfer-gateway/internal/model"
)

type IStore interface {
	Upsert(tx *gorm.DB, snapshot *model.ReceiptSnapshot) error
	GetByTransferID(tx *gorm.DB, transferID string) (*model.ReceiptSnapshot, error)
	DeleteTerminalBefore(tx *gorm.DB, cutoff time.Time) (int64, error)
}
