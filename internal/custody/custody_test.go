package custody

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/types/environments"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (ICustodyAPI, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{
		Custody: config.CustodyConfig{APIBaseURL: server.URL},
	}
	return New(cfg, logger.New(environments.Test)), server
}

func TestCreateTransfer_SendsBearerAndIdempotencyKey(t *testing.T) {
	var gotAuth, gotIdemKey string
	var gotBody createTransferRequest

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transfer", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdemKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"_id":                     "tr-1",
				"requiresOTPVerification": true,
				"otpSent":                 true,
			},
		})
	}))

	intent := model.NewTransferIntent(model.AssetBTC, "bc1qaddr", 500, 0.01, "rent")
	result, err := client.CreateTransfer(auth.NewContext("tok-1"), intent)

	require.NoError(t, err)
	assert.Equal(t, "tr-1", result.TransferID)
	assert.True(t, result.RequiresOTPVerification)
	assert.True(t, result.OtpSent)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, intent.IdempotencyKey, gotIdemKey)
	assert.Equal(t, model.AssetBTC, gotBody.Asset)
	assert.Equal(t, "bc1qaddr", gotBody.ToAddress)
	assert.Equal(t, 0.01, gotBody.Amount)
}

func TestCreateTransfer_SurfacesBackendMessageVerbatim(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Withdrawal limit exceeded for today"})
	}))

	intent := model.NewTransferIntent(model.AssetETH, "0xabc", 100, 0.05, "")
	_, err := client.CreateTransfer(auth.NewContext("tok"), intent)

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Withdrawal limit exceeded for today", apiErr.Message)

	// mutating call: exactly one request, no retry
	assert.Equal(t, 1, requests)
}

func TestCreateTransfer_MissingTokenNeverHitsNetwork(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	intent := model.NewTransferIntent(model.AssetBTC, "bc1qaddr", 500, 0.01, "")
	_, err := client.CreateTransfer(auth.NewContext(""), intent)

	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, 0, requests)
}

func TestVerifyOTP(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantErr    error
		wantRecord bool
	}{
		{
			name:   "backend accepts",
			status: http.StatusOK,
			body: map[string]any{
				"success": true,
				"data": map[string]any{
					"_id": "tr-1", "asset": "btc", "status": "processing",
					"confirmations": []bool{false, false, false, false},
				},
			},
			wantRecord: true,
		},
		{
			name:    "backend rejects with success false",
			status:  http.StatusOK,
			body:    map[string]any{"success": false, "message": "OTP mismatch"},
			wantErr: ErrOTPRejected,
		},
		{
			name:    "backend rejects with 400",
			status:  http.StatusBadRequest,
			body:    map[string]string{"message": "expired"},
			wantErr: ErrOTPRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transfer/verify-otp", r.URL.Path)
				var req verifyOTPRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "tr-1", req.TransferID)
				assert.Equal(t, "123456", req.OTP)

				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(tt.body)
			}))

			record, err := client.VerifyOTP(auth.NewContext("tok"), "tr-1", "123456")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.wantRecord)
			assert.Equal(t, "tr-1", record.ID)
			assert.Equal(t, model.TransferStatusProcessing, record.Status)
		})
	}
}

func TestGetTransfer(t *testing.T) {
	completedAt := "2026-08-01T10:00:00Z"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/tr-9", r.URL.Path)
		w.Write([]byte(`{"data":{"_id":"tr-9","asset":"usdtTron","toAddress":"Txyz","amount":250,` +
			`"usdAmount":250,"status":"completed","confirmations":[true,true,true,true],` +
			`"createdAt":"2026-08-01T09:00:00Z","completedAt":"` + completedAt + `"}}`))
	}))

	record, err := client.GetTransfer(auth.NewContext("tok"), "tr-9")

	require.NoError(t, err)
	assert.Equal(t, model.AssetUSDTTron, record.Asset)
	assert.True(t, record.Status.Terminal())
	assert.Equal(t, 4, record.ConfirmedCount())
	require.NotNil(t, record.CompletedAt)
}

func TestGetTransfer_RetriesTransientServerError(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":{"_id":"tr-9","asset":"btc","status":"pending","confirmations":[false,false,false,false]}}`))
	}))

	record, err := client.GetTransfer(auth.NewContext("tok"), "tr-9")

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	assert.Equal(t, model.TransferStatusPending, record.Status)
}

func TestGetTransfer_UnauthorizedIsNotRetried(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetTransfer(auth.NewContext("stale-token"), "tr-9")

	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, 1, requests)
}

func TestGetWalletBalances(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/balance", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"walletBalances":{"btc":0.5,"usdtTron":1200}}}`))
	}))

	balances, err := client.GetWalletBalances(auth.NewContext("tok"))

	require.NoError(t, err)
	assert.Equal(t, 0.5, balances[model.AssetBTC])
	assert.Equal(t, float64(1200), balances[model.AssetUSDTTron])
}

func TestResendOTP_SuccessFalseIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/resend-otp", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "too many resends"})
	}))

	err := client.ResendOTP(auth.NewContext("tok"), "tr-1")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "too many resends", apiErr.Message)
}
