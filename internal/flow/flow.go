package flow

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/otp"
	"github.com/coinvault/transfer-gateway/internal/poller"
	"github.com/coinvault/transfer-gateway/internal/store"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

var (
	ErrEmptyAddress        = errors.New("destination address is required")
	ErrInvalidAmount       = errors.New("transfer amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance for this transfer")
	ErrSubmissionInFlight  = errors.New("submission already in flight for this intent")
	ErrNoOTPChallenge      = errors.New("no outstanding OTP challenge for this transfer")
)

type Controller struct {
	custodyAPI custody.ICustodyAPI
	store      *store.Store
	db         *gorm.DB
	appConfig  *config.AppConfig
	logger     *logger.Logger

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu        sync.Mutex
	inFlight  map[string]bool
	verifiers map[string]*otp.Verifier
	pollers   map[string]*poller.Poller
}

func New(custodyAPI custody.ICustodyAPI, s *store.Store, db *gorm.DB, appConfig *config.AppConfig, logger *logger.Logger) IController {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		custodyAPI: custodyAPI,
		store:      s,
		db:         db,
		appConfig:  appConfig,
		logger:     logger,
		baseCtx:    ctx,
		baseCancel: cancel,
		inFlight:   map[string]bool{},
		verifiers:  map[string]*otp.Verifier{},
		pollers:    map[string]*poller.Poller{},
	}
}

func (c *Controller) Initiate(actx *auth.Context, intent *model.TransferIntent) (*InitiateResult, error) {
	// Validation errors never reach the network.
	if intent.ToAddress == "" {
		return nil, ErrEmptyAddress
	}
	if intent.AssetAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	balances, err := c.custodyAPI.GetWalletBalances(actx)
	if err != nil {
		c.logger.Error("[Initiate][GetWalletBalances]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}
	if intent.AssetAmount > balances[intent.Asset] {
		return nil, ErrInsufficientBalance
	}

	// One creation request per intent at a time; the analogue of disabling
	// the submit control while a request is in flight.
	c.mu.Lock()
	if c.inFlight[intent.IdempotencyKey] {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.inFlight[intent.IdempotencyKey] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, intent.IdempotencyKey)
		c.mu.Unlock()
	}()

	result, err := c.custodyAPI.CreateTransfer(actx, intent)
	if err != nil {
		// surfaced as-is; the user must explicitly re-trigger
		return nil, err
	}

	if result.RequiresOTPVerification {
		v := otp.NewVerifier(c.custodyAPI, c.logger, result.TransferID,
			otp.WithCooldown(c.appConfig.Flow.OtpResendCooldown))
		c.mu.Lock()
		c.verifiers[result.TransferID] = v
		c.mu.Unlock()
	} else {
		c.track(actx, result.TransferID)
	}

	return &InitiateResult{
		TransferID:              result.TransferID,
		RequiresOTPVerification: result.RequiresOTPVerification,
		OtpSent:                 result.OtpSent,
	}, nil
}

func (c *Controller) VerifyOTP(actx *auth.Context, transferID, code string) (*model.TransferRecord, error) {
	v := c.verifier(transferID)
	if v == nil {
		return nil, ErrNoOTPChallenge
	}

	record, err := v.Submit(actx, code)
	if err != nil {
		if errors.Is(err, custody.ErrOTPRejected) {
			// the error response is the failure banner; reset to awaiting
			// input so the caller can retry without a separate dismiss call
			v.Dismiss()
		}
		return nil, err
	}

	c.mu.Lock()
	delete(c.verifiers, transferID)
	c.mu.Unlock()

	c.persistSnapshot(record)
	c.track(actx, transferID)
	return record, nil
}

func (c *Controller) ResendOTP(actx *auth.Context, transferID string) error {
	v := c.verifier(transferID)
	if v == nil {
		return ErrNoOTPChallenge
	}
	return v.Resend(actx)
}

func (c *Controller) OtpStatus(transferID string) (*OtpStatus, error) {
	v := c.verifier(transferID)
	if v == nil {
		return nil, ErrNoOTPChallenge
	}
	return &OtpStatus{
		State:           v.State(),
		ResendRemaining: v.ResendRemaining(),
	}, nil
}

func (c *Controller) GetReceipt(actx *auth.Context, transferID string) (*Receipt, error) {
	record, err := c.custodyAPI.GetTransfer(actx, transferID)
	if err == nil {
		c.persistSnapshot(record)
		return &Receipt{Record: record}, nil
	}
	if errors.Is(err, auth.ErrUnauthenticated) {
		return nil, err
	}

	// last-known-state fallback, never a source of truth
	if c.db != nil {
		snapshot, snapErr := c.store.ReceiptSnapshot.GetByTransferID(c.db, transferID)
		if snapErr == nil {
			c.logger.Info("[GetReceipt] serving cached snapshot", map[string]string{
				"transfer_id": transferID,
			})
			return &Receipt{Record: snapshot.ToRecord(), FromCache: true}, nil
		}
	}

	return nil, err
}

func (c *Controller) Shutdown() {
	c.baseCancel()

	c.mu.Lock()
	active := make([]*poller.Poller, 0, len(c.pollers))
	for _, p := range c.pollers {
		active = append(active, p)
	}
	c.mu.Unlock()

	for _, p := range active {
		<-p.Done()
	}
}

func (c *Controller) verifier(transferID string) *otp.Verifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifiers[transferID]
}

// track starts (at most) one receipt poller per transfer, persisting each
// fetched record as the fallback snapshot.
func (c *Controller) track(actx *auth.Context, transferID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pollers[transferID]; ok {
		return
	}

	p := poller.New(c.custodyAPI, actx, c.logger, transferID,
		poller.WithInterval(c.appConfig.Flow.PollInterval),
		poller.WithOnUpdate(c.persistSnapshot),
	)
	c.pollers[transferID] = p
	p.Start(c.baseCtx)

	go func() {
		<-p.Done()
		c.mu.Lock()
		delete(c.pollers, transferID)
		c.mu.Unlock()
	}()
}

func (c *Controller) persistSnapshot(record *model.TransferRecord) {
	if c.db == nil {
		return
	}
	if err := c.store.ReceiptSnapshot.Upsert(c.db, model.SnapshotFromRecord(record)); err != nil {
		c.logger.Error("[persistSnapshot][Upsert]", map[string]string{
			"error":       err.Error(),
			"transfer_id": record.ID,
		})
	}
}
