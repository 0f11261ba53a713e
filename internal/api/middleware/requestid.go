package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — заголовок, у якому повертається ідентифікатор запиту.
const RequestIDHeader = "X-Request-ID"

// RequestID помічає кожен запит унікальним UUID. Якщо клієнт надіслав
// власний ідентифікатор, він зберігається.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
