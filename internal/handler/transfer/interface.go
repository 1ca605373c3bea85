package transfer

import "github.com/gin-gonic/gin"

type IHandler interface {
	Create(c *gin.Context)
	VerifyOTP(c *gin.Context)
	ResendOTP(c *gin.Context)
	GetOtpStatus(c *gin.Context)
	GetReceipt(c *gin.Context)
}
