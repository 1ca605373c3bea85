package quote

import "github.com/gin-gonic/gin"

type IHandler interface {
	GetQuote(c *gin.Context)
	GetWalletBalances(c *gin.Context)
}
