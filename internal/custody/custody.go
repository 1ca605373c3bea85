package custody

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

// ErrOTPRejected is returned whenever the backend refuses a code. The backend
// does not distinguish wrong from expired codes, so neither do we.
var ErrOTPRejected = errors.New("invalid or expired OTP")

type custodyAPI struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func New(cfg *config.AppConfig, logger *logger.Logger) ICustodyAPI {
	return &custodyAPI{
		baseURL: cfg.Custody.APIBaseURL,
		client:  &http.Client{Timeout: cfg.Custody.RequestTimeout},
		logger:  logger,
	}
}

func (c *custodyAPI) CreateTransfer(actx *auth.Context, intent *model.TransferIntent) (*CreateTransferResult, error) {
	payload := createTransferRequest{
		Asset:     intent.Asset,
		ToAddress: intent.ToAddress,
		Amount:    intent.AssetAmount,
		Notes:     intent.Notes,
	}

	// Exactly one request per call. Creation is a mutating call and must
	// never be retried here; the idempotency key lets the backend detect a
	// duplicate if the user re-triggers.
	body, err := c.doRequest(actx, http.MethodPost, "/transfer", payload, intent.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	var resp createTransferResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("[CreateTransfer][json.Unmarshal]", map[string]string{
			"error": err.Error(),
			"body":  string(body),
		})
		return nil, errors.Wrap(err, "failed to parse create transfer response")
	}
	if resp.Data.TransferID == "" {
		return nil, errors.New("create transfer response missing transfer id")
	}

	return &resp.Data, nil
}

func (c *custodyAPI) VerifyOTP(actx *auth.Context, transferID, code string) (*model.TransferRecord, error) {
	payload := verifyOTPRequest{TransferID: transferID, OTP: code}

	body, err := c.doRequest(actx, http.MethodPost, "/transfer/verify-otp", payload, "")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			// Backend refused the code; collapse to the generic rejection.
			c.logger.Debug("[VerifyOTP] rejected", map[string]string{
				"transfer_id": transferID,
				"status":      strconv.Itoa(apiErr.StatusCode),
			})
			return nil, ErrOTPRejected
		}
		return nil, err
	}

	var resp verifyOTPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("[VerifyOTP][json.Unmarshal]", map[string]string{
			"error": err.Error(),
			"body":  string(body),
		})
		return nil, errors.Wrap(err, "failed to parse verify OTP response")
	}
	if !resp.Success {
		return nil, ErrOTPRejected
	}
	if resp.Data == nil {
		return nil, errors.New("verify OTP response missing transfer record")
	}

	return resp.Data, nil
}

func (c *custodyAPI) ResendOTP(actx *auth.Context, transferID string) error {
	payload := resendOTPRequest{TransferID: transferID}

	body, err := c.doRequest(actx, http.MethodPost, "/transfer/resend-otp", payload, "")
	if err != nil {
		return err
	}

	var resp resendOTPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return errors.Wrap(err, "failed to parse resend OTP response")
	}
	if !resp.Success {
		return &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}

	return nil
}

func (c *custodyAPI) GetTransfer(actx *auth.Context, transferID string) (*model.TransferRecord, error) {
	var lastErr error
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, err := c.doRequest(actx, http.MethodGet, "/transfer/"+transferID, nil, "")
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return nil, err
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				// 4xx will not heal on retry
				return nil, err
			}
			lastErr = err
			c.logger.Error("[GetTransfer][doRequest]", map[string]string{
				"error":       err.Error(),
				"transfer_id": transferID,
				"attempt":     strconv.Itoa(attempt),
			})
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		var resp getTransferResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			lastErr = errors.Wrap(err, "failed to parse transfer response")
			c.logger.Error("[GetTransfer][json.Unmarshal]", map[string]string{
				"error":   err.Error(),
				"attempt": strconv.Itoa(attempt),
				"body":    string(body),
			})
			continue
		}
		if resp.Data == nil {
			return nil, errors.New("transfer response missing record")
		}

		return resp.Data, nil
	}

	return nil, lastErr
}

func (c *custodyAPI) GetWalletBalances(actx *auth.Context) (map[model.Asset]float64, error) {
	var lastErr error
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, err := c.doRequest(actx, http.MethodGet, "/transfer/balance", nil, "")
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return nil, err
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				return nil, err
			}
			lastErr = err
			c.logger.Error("[GetWalletBalances][doRequest]", map[string]string{
				"error":   err.Error(),
				"attempt": strconv.Itoa(attempt),
			})
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		var resp walletBalancesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			lastErr = errors.Wrap(err, "failed to parse wallet balances response")
			c.logger.Error("[GetWalletBalances][json.Unmarshal]", map[string]string{
				"error":   err.Error(),
				"attempt": strconv.Itoa(attempt),
				"body":    string(body),
			})
			continue
		}

		return resp.Data.WalletBalances, nil
	}

	return nil, lastErr
}

// doRequest performs one bearer-authorized request and returns the raw body.
// Non-2xx statuses come back as *APIError carrying the backend message
// verbatim, except 401 which maps to auth.ErrUnauthenticated.
func (c *custodyAPI) doRequest(actx *auth.Context, method, path string, payload any, idempotencyKey string) ([]byte, error) {
	token, err := actx.BearerToken()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request payload")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request %s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, auth.ErrUnauthenticated
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorResponse
		message := string(body)
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				message = errResp.Message
			} else if errResp.Error != "" {
				message = errResp.Error
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}
