package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/view"
)

// requireBearerAuth parses the Authorization header once per request and
// hands the resulting auth context to the handlers. Requests without a
// usable token never reach a handler.
func requireBearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actx, err := auth.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, view.CreateResponse[any](nil, err, nil, ""))
			return
		}
		c.Set(auth.GinContextKey, actx)
		c.Next()
	}
}
