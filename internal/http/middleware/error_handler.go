package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

// Fail records the error for ErrorHandler and aborts the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns recorded errors into {error: message} JSON responses.
// Validation failures carry a fields map; opaque 500s carry a debug_id.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		payload := gin.H{"error": publicMsg}
		if ae, ok := apperr.As(err); ok {
			if len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			if ae.DebugID != "" {
				payload["debug_id"] = ae.DebugID
			}
		}
		c.AbortWithStatusJSON(status, payload)
	}
}
