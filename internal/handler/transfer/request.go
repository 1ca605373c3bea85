package transfer

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/coinvault/transfer-gateway/internal/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("assetkey", func(fl validator.FieldLevel) bool {
			return model.Asset(fl.Field().String()).Valid()
		})
	}
}

type CreateTransferRequest struct {
	Asset      string `json:"asset" binding:"required,assetkey"`
	ToAddress  string `json:"to_address" binding:"required"`
	FiatAmount string `json:"fiat_amount" binding:"required"`
	Notes      string `json:"notes"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required,len=6,numeric"`
}
