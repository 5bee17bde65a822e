package middleware

import (
	"net/http"
	"runtime/debug"

	"git.thinkinpower.net/bindb/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Recovery turns a panic in a handler into a 500 response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithField("requestId", c.GetString(RequestIDKey)).
					Errorf("panic: %v\n%s", err, string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "Internal server error"})
			}
		}()
		c.Next()
	}
}
