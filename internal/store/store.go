package store

import (
	"github.com/coinvault/transfer-gateway/internal/store/receiptsnapshot"
)

type Store struct {
	ReceiptSnapshot receiptsnapshot.IStore
}

func New() *Store {
	return &Store{
		ReceiptSnapshot: receiptsnapshot.New(),
	}
}
