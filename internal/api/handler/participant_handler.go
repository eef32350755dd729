package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// 参加者モジュールのエラーコード
const (
	CodeParticipantNotFound      = 40001
	CodeParticipantEventNotFound = 40002
	CodeMemoIndexOutOfRange      = 40003
)

// ParticipantHandler 参加者ハンドラー
type ParticipantHandler struct {
	participantService service.ParticipantService
	logger             *zap.Logger
}

// NewParticipantHandler ParticipantHandler を生成する
func NewParticipantHandler(participantService service.ParticipantService, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, logger: logger}
}

// List 参加者一覧を返す。search で名前の前方一致検索
// GET /api/v1/participants
func (h *ParticipantHandler) List(c *gin.Context) {
	var req dto.ParticipantListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "検索パラメータが不正です")
		return
	}

	list, total, err := h.participantService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDetail 参加者詳細（参加履歴付き）を返す
// GET /api/v1/participants/:id
func (h *ParticipantHandler) GetDetail(c *gin.Context) {
	detail, err := h.participantService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.NotFound(c, CodeParticipantNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, detail)
}

// memoError メモ操作のエラーをレスポンスへ変換する
func memoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantEventNotFound):
		response.NotFound(c, CodeParticipantEventNotFound, err.Error())
	case errors.Is(err, service.ErrMemoIndexOutOfRange):
		response.NotFound(c, CodeMemoIndexOutOfRange, err.Error())
	default:
		response.InternalError(c)
	}
}

// AddMemo 参加履歴にメモを追記する
// POST /api/v1/participants/:id/events/:eventId/memos
func (h *ParticipantHandler) AddMemo(c *gin.Context) {
	var req dto.AddMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "メモ本文（memo）は必須です")
		return
	}

	memos, err := h.participantService.AddMemo(c.Request.Context(), c.Param("id"), c.Param("eventId"), req.Memo)
	if err != nil {
		memoError(c, err)
		return
	}

	response.Created(c, gin.H{"memos": memos})
}

// memoIndex パスパラメータのメモ添字を解析する
func memoIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		response.BadRequest(c, CodeInvalidParams, "メモ番号が不正です")
		return 0, false
	}
	return idx, true
}

// UpdateMemo 参加履歴のメモを添字指定で上書きする
// PUT /api/v1/participants/:id/events/:eventId/memos/:index
func (h *ParticipantHandler) UpdateMemo(c *gin.Context) {
	idx, ok := memoIndex(c)
	if !ok {
		return
	}

	var req dto.UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "メモ本文（memo）は必須です")
		return
	}

	memos, err := h.participantService.UpdateMemo(c.Request.Context(), c.Param("id"), c.Param("eventId"), idx, req.Memo)
	if err != nil {
		memoError(c, err)
		return
	}

	response.OK(c, gin.H{"memos": memos})
}

// DeleteMemo 参加履歴のメモを添字指定で削除する
// DELETE /api/v1/participants/:id/events/:eventId/memos/:index
func (h *ParticipantHandler) DeleteMemo(c *gin.Context) {
	idx, ok := memoIndex(c)
	if !ok {
		return
	}

	memos, err := h.participantService.DeleteMemo(c.Request.Context(), c.Param("id"), c.Param("eventId"), idx)
	if err != nil {
		memoError(c, err)
		return
	}

	response.OK(c, gin.H{"memos": memos})
}
