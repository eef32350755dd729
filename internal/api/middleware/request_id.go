package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxKeyRequestID リクエスト ID の Context キー
const CtxKeyRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID リクエスト毎に ID を採番するミドルウェア
// クライアントが X-Request-ID を指定した場合はそれを引き継ぐ
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
