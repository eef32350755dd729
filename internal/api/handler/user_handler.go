package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// ユーザーモジュールのエラーコード
const (
	CodeUserNotFound    = 20101
	CodeUserEmailExists = 20102
	CodeUserInvalidItem = 20103
)

// UserHandler アカウント管理ハンドラー（admin 専用）
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler UserHandler を生成する
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// CreateUsers ユーザーを一括作成する。ペイロードは配列で受け取る
// POST /api/v1/users
func (h *UserHandler) CreateUsers(c *gin.Context) {
	var items []dto.CreateUserItem
	if err := c.ShouldBindJSON(&items); err != nil {
		response.BadRequest(c, CodeInvalidParams, "ユーザーの配列を指定してください")
		return
	}
	if len(items) == 0 {
		response.BadRequest(c, CodeInvalidParams, "作成するユーザーを 1 件以上指定してください")
		return
	}

	result, err := h.userService.CreateUsers(c.Request.Context(), items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserInvalidItem), errors.Is(err, service.ErrUserBadRole):
			response.BadRequest(c, CodeUserInvalidItem, err.Error())
		case errors.Is(err, service.ErrUserEmailExists):
			response.BadRequest(c, CodeUserEmailExists, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List ユーザー一覧を返す
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "ページングパラメータが不正です")
		return
	}

	list, total, err := h.userService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete ユーザーを削除する
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, CodeUserNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// UpdateRole ユーザーの権限を変更する
// PUT /api/v1/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "権限（role）は admin または user を指定してください")
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, CodeUserNotFound, err.Error())
		case errors.Is(err, service.ErrUserBadRole):
			response.BadRequest(c, CodeUserInvalidItem, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// ResetPassword ユーザーのパスワードを再設定する
// PUT /api/v1/users/:id/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "新しいパスワード（new_password）は 8 文字以上で指定してください")
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), c.Param("id"), req.NewPassword); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, CodeUserNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
