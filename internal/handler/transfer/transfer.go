package transfer

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/flow"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/monitoring"
	"github.com/coinvault/transfer-gateway/internal/otp"
	"github.com/coinvault/transfer-gateway/internal/quote"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
	"github.com/coinvault/transfer-gateway/internal/view"
)

type handler struct {
	flowCtrl  flow.IController
	quoteSvc  quote.IQuote
	metrics   *monitoring.HTTPMetrics
	logger    *logger.Logger
	appConfig *config.AppConfig
}

func New(flowCtrl flow.IController, quoteSvc quote.IQuote, metrics *monitoring.HTTPMetrics, appConfig *config.AppConfig, logger *logger.Logger) IHandler {
	return &handler{
		flowCtrl:  flowCtrl,
		quoteSvc:  quoteSvc,
		metrics:   metrics,
		logger:    logger,
		appConfig: appConfig,
	}
}

// Create godoc
// @Summary Initiate a transfer
// @Description Quote the entered fiat amount and submit the transfer upstream
// @id createTransfer
// @Tags Transfer
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body CreateTransferRequest true "transfer intent"
// @Success 200 {object} CreateTransferResponse
// @Failure 400 {object} view.ErrorResponse
// @Failure 401 {object} view.ErrorResponse
// @Router /transfers [post]
func (h *handler) Create(c *gin.Context) {
	start := time.Now()

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, ""))
		return
	}

	asset, err := model.ParseAsset(req.Asset)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, ""))
		return
	}

	actx := authContext(c)
	q, err := h.quoteSvc.GetQuote(actx, asset, req.FiatAmount)
	if err != nil {
		h.logger.Error("[Create][GetQuote]", map[string]string{
			"asset": string(asset),
			"error": err.Error(),
		})
		h.respondError(c, err, req)
		return
	}

	intent := model.NewTransferIntent(asset, req.ToAddress, q.FiatAmount, q.AssetAmount, req.Notes)
	result, err := h.flowCtrl.Initiate(actx, intent)
	if err != nil {
		h.metrics.RecordFlowOperation("initiate", "error", time.Since(start).Seconds())
		h.respondError(c, err, req)
		return
	}

	h.metrics.RecordFlowOperation("initiate", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, view.CreateResponse(CreateTransferResponse{
		TransferID:              result.TransferID,
		RequiresOTPVerification: result.RequiresOTPVerification,
		OtpSent:                 result.OtpSent,
	}, nil, nil, ""))
}

// VerifyOTP godoc
// @Summary Verify the OTP for a pending transfer
// @Description Submit the 6-digit code; a rejected code leaves the challenge open for retry
// @id verifyTransferOtp
// @Tags Transfer
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "transfer id"
// @Param request body VerifyOTPRequest true "otp code"
// @Success 200 {object} ReceiptResponse
// @Failure 400 {object} view.ErrorResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /transfers/{id}/verify-otp [post]
func (h *handler) VerifyOTP(c *gin.Context) {
	start := time.Now()
	transferID := c.Param("id")

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, ""))
		return
	}

	record, err := h.flowCtrl.VerifyOTP(authContext(c), transferID, req.OTP)
	if err != nil {
		status := "error"
		if errors.Is(err, custody.ErrOTPRejected) {
			status = "rejected"
		}
		h.metrics.RecordFlowOperation("verify_otp", status, time.Since(start).Seconds())
		h.respondError(c, err, nil)
		return
	}

	h.metrics.RecordFlowOperation("verify_otp", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, view.CreateResponse(toReceiptResponse(record, false), nil, nil, ""))
}

// ResendOTP godoc
// @Summary Request a fresh OTP
// @Description Refused with 429 while the resend cooldown is active
// @id resendTransferOtp
// @Tags Transfer
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "transfer id"
// @Success 200 {object} view.MessageResponse
// @Failure 404 {object} view.ErrorResponse
// @Failure 429 {object} view.ErrorResponse
// @Router /transfers/{id}/resend-otp [post]
func (h *handler) ResendOTP(c *gin.Context) {
	start := time.Now()
	transferID := c.Param("id")

	if err := h.flowCtrl.ResendOTP(authContext(c), transferID); err != nil {
		h.metrics.RecordFlowOperation("resend_otp", "error", time.Since(start).Seconds())
		h.respondError(c, err, nil)
		return
	}

	h.metrics.RecordFlowOperation("resend_otp", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, view.CreateResponse[any](nil, nil, nil, "otp resent"))
}

// GetOtpStatus godoc
// @Summary Report the OTP challenge state
// @id getTransferOtpStatus
// @Tags Transfer
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "transfer id"
// @Success 200 {object} OtpStatusResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /transfers/{id}/otp [get]
func (h *handler) GetOtpStatus(c *gin.Context) {
	transferID := c.Param("id")

	status, err := h.flowCtrl.OtpStatus(transferID)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(OtpStatusResponse{
		TransferID:             transferID,
		State:                  string(status.State),
		ResendRemainingSeconds: int(status.ResendRemaining / time.Second),
	}, nil, nil, ""))
}

// GetReceipt godoc
// @Summary Fetch the current receipt for a transfer
// @Description Falls back to the last persisted snapshot when the upstream fetch fails
// @id getTransferReceipt
// @Tags Transfer
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "transfer id"
// @Success 200 {object} ReceiptResponse
// @Failure 401 {object} view.ErrorResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /transfers/{id} [get]
func (h *handler) GetReceipt(c *gin.Context) {
	transferID := c.Param("id")

	receipt, err := h.flowCtrl.GetReceipt(authContext(c), transferID)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(receiptFromFlow(receipt), nil, nil, ""))
}

// respondError maps domain errors onto HTTP statuses. Backend rejections keep
// their original status and message so the caller sees them verbatim.
func (h *handler) respondError(c *gin.Context, err error, req any) {
	var apiErr *custody.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, view.CreateResponse[any](nil, errors.New(apiErr.Message), req, ""))
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, flow.ErrEmptyAddress),
		errors.Is(err, flow.ErrInvalidAmount),
		errors.Is(err, flow.ErrInsufficientBalance),
		errors.Is(err, custody.ErrOTPRejected),
		errors.Is(err, otp.ErrInvalidCode):
		status = http.StatusBadRequest
	case errors.Is(err, flow.ErrNoOTPChallenge):
		status = http.StatusNotFound
	case errors.Is(err, flow.ErrSubmissionInFlight),
		errors.Is(err, otp.ErrNotAwaitingInput):
		status = http.StatusConflict
	case errors.Is(err, otp.ErrResendCooldown):
		status = http.StatusTooManyRequests
	}

	c.JSON(status, view.CreateResponse[any](nil, err, req, ""))
}

func authContext(c *gin.Context) *auth.Context {
	if v, ok := c.Get(auth.GinContextKey); ok {
		if actx, ok := v.(*auth.Context); ok {
			return actx
		}
	}
	return nil
}
