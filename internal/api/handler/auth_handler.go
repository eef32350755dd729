package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/internal/api/middleware"
	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// 認証モジュールのエラーコード
const (
	CodeLoginFailed = 20001
)

// AuthHandler 認証ハンドラー
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login メールアドレスとパスワードでログインする
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "メールアドレスとパスワードを入力してください")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, CodeLoginFailed, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 現在の Access Token を無効化する
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Unauthorized(c, middleware.CodeUnauthorized, "認証情報がありません")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me ログイン中のユーザー情報を返す
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, middleware.CodeUnauthorized, "ユーザーが存在しません")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
