package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Haru0022/oc-staff-app/internal/api/middleware"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
)

// currentUserID 認証ミドルウェアが格納したユーザー ID を取り出す
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxKeyUserID)
}

// currentClaims 認証ミドルウェアが格納した JWT クレームを取り出す
// 認証必須ルート以外で呼ぶと nil
func currentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.CtxKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
