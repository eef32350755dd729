package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// CodeStaffNotFound スタッフが存在しない
const CodeStaffNotFound = 40101

// StaffHandler スタッフハンドラー
type StaffHandler struct {
	staffService service.StaffService
	logger       *zap.Logger
}

// NewStaffHandler StaffHandler を生成する
func NewStaffHandler(staffService service.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{staffService: staffService, logger: logger}
}

// List スタッフ一覧を返す。search で名前の前方一致検索
// GET /api/v1/staffs
func (h *StaffHandler) List(c *gin.Context) {
	var req dto.StaffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "検索パラメータが不正です")
		return
	}

	list, total, err := h.staffService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDetail スタッフ詳細（参加履歴付き）を返す
// GET /api/v1/staffs/:id
func (h *StaffHandler) GetDetail(c *gin.Context) {
	detail, err := h.staffService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, CodeStaffNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, detail)
}
