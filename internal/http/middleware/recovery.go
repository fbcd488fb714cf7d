package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

func Recovery(l zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error().
			Str("request_id", GetRequestID(c)).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("panic_recovered")

		Fail(c, apperr.Wrap(fmt.Errorf("panic: %v", recovered)))
	})
}
