package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/internal/model"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
	"github.com/Haru0022/oc-staff-app/pkg/redis"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// Context キー
const (
	CtxKeyUserID = "user_id"
	CtxKeyRole   = "role"
	CtxKeyClaims = "claims"
)

// エラーコード
const (
	CodeUnauthorized = 10002
	CodeForbidden    = 10003
)

// JWTAuth Bearer Token を検証する認証ミドルウェア
// redisClient が非 nil の場合はログアウト済み Token のブラックリストも確認する
func JWTAuth(jwtManager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, CodeUnauthorized, "認証情報がありません")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, CodeUnauthorized, "Authorization ヘッダーの形式が不正です")
			c.Abort()
			return
		}

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, CodeUnauthorized, "Token の有効期限が切れています")
			} else {
				response.Unauthorized(c, CodeUnauthorized, "Token が無効です")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, CodeUnauthorized, "Access Token を指定してください")
			c.Abort()
			return
		}

		if redisClient != nil {
			blacklisted, err := redisClient.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 障害時は認証を通す（ブラックリストはベストエフォート）
				logger.Warn("ブラックリスト確認に失敗", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, CodeUnauthorized, "Token は無効化されています")
				c.Abort()
				return
			}
		}

		c.Set(CtxKeyUserID, claims.UserID)
		c.Set(CtxKeyRole, claims.Role)
		c.Set(CtxKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin admin 権限のみ許可する認可ミドルウェア
// JWTAuth の後段に置くこと
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxKeyRole)
		if role != model.RoleAdmin {
			response.Forbidden(c, CodeForbidden, "この操作には admin 権限が必要です")
			c.Abort()
			return
		}
		c.Next()
	}
}
