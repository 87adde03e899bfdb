package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

// CtxRequestID gin context key of the correlation id
const CtxRequestID = "request_id"

// requestIDMaxLen caps ids taken from the inbound header
const requestIDMaxLen = 64

// RequestID reads X-Request-ID or generates one, echoes it in the response
// and stores it in the request context so sibling calls forward it.
// The resolved client address travels the same way.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(CtxRequestID, rid)
		c.Header("X-Request-ID", rid)
		ctx := client.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(client.WithClientIP(ctx, c.ClientIP()))

		c.Next()
	}
}
