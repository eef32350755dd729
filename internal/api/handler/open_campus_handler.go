package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/response"
)

// オープンキャンパスモジュールのエラーコード
const (
	CodeOpenCampusNotFound = 30001
	CodeRosterFileRequired = 30002
	CodeRosterFileTooLarge = 30003
	CodeRosterBadFile      = 30004
	CodeRosterMissingSheet = 30005
	CodeRosterTooManyRows  = 30006
	CodeOpenCampusBadDate  = 30007
	CodeRegisterFailed     = 30008
)

// OpenCampusHandler オープンキャンパスハンドラー
type OpenCampusHandler struct {
	ocService     service.OpenCampusService
	rosterService service.RosterService
	rosterCfg     *config.RosterConfig
	logger        *zap.Logger
}

// NewOpenCampusHandler OpenCampusHandler を生成する
func NewOpenCampusHandler(ocService service.OpenCampusService, rosterService service.RosterService, rosterCfg *config.RosterConfig, logger *zap.Logger) *OpenCampusHandler {
	return &OpenCampusHandler{
		ocService:     ocService,
		rosterService: rosterService,
		rosterCfg:     rosterCfg,
		logger:        logger,
	}
}

// List イベント一覧を開催日降順で返す
// GET /api/v1/open-campuses
func (h *OpenCampusHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, CodeInvalidParams, "ページングパラメータが不正です")
		return
	}

	list, total, err := h.ocService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDetail イベント詳細（両名簿付き）を返す
// GET /api/v1/open-campuses/:id
func (h *OpenCampusHandler) GetDetail(c *gin.Context) {
	detail, err := h.ocService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOpenCampusNotFound) {
			response.NotFound(c, CodeOpenCampusNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, detail)
}

// openRosterFile multipart の名簿ファイルを検証して開く
func (h *OpenCampusHandler) openRosterFile(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, CodeRosterFileRequired, "名簿ファイル（file）を添付してください")
		return nil, false
	}
	if max := h.rosterCfg.MaxFileSize; max > 0 && fileHeader.Size > max {
		response.BadRequest(c, CodeRosterFileTooLarge, "ファイルサイズが上限を超えています")
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("アップロードファイルのオープンに失敗", zap.Error(err))
		response.InternalError(c)
		return nil, false
	}
	return f, true
}

// rosterErrorResponse 名簿解析エラーをレスポンスへ変換する
func rosterErrorResponse(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrRosterBadFile):
		response.BadRequest(c, CodeRosterBadFile, service.ErrRosterBadFile.Error())
	case errors.Is(err, service.ErrRosterMissingSheet):
		response.BadRequest(c, CodeRosterMissingSheet, service.ErrRosterMissingSheet.Error())
	case errors.Is(err, service.ErrRosterTooManyRows):
		response.BadRequest(c, CodeRosterTooManyRows, service.ErrRosterTooManyRows.Error())
	default:
		return false
	}
	return true
}

// Register 名簿ファイルからイベントを登録する
// POST /api/v1/open-campuses （multipart/form-data: file, title, memo, date）
func (h *OpenCampusHandler) Register(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		response.BadRequest(c, CodeInvalidParams, "タイトル（title）は必須です")
		return
	}

	f, ok := h.openRosterFile(c)
	if !ok {
		return
	}
	defer f.Close()

	participants, staffs, err := h.rosterService.Parse(f)
	if err != nil {
		if !rosterErrorResponse(c, err) {
			response.InternalError(c)
		}
		return
	}

	result, err := h.ocService.Register(c.Request.Context(), &service.RegisterInput{
		Title:        title,
		Memo:         c.PostForm("memo"),
		Date:         c.PostForm("date"),
		Participants: participants,
		Staffs:       staffs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOpenCampusBadDate):
			response.BadRequest(c, CodeOpenCampusBadDate, err.Error())
		case errors.Is(err, service.ErrRegisterFailed):
			response.Error(c, http.StatusInternalServerError, CodeRegisterFailed, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Preview 名簿ファイルを解析して登録前の内容確認用データを返す
// POST /api/v1/open-campuses/preview （multipart/form-data: file）
func (h *OpenCampusHandler) Preview(c *gin.Context) {
	f, ok := h.openRosterFile(c)
	if !ok {
		return
	}
	defer f.Close()

	participants, staffs, err := h.rosterService.Parse(f)
	if err != nil {
		if !rosterErrorResponse(c, err) {
			response.InternalError(c)
		}
		return
	}

	preview := &dto.RosterPreviewResponse{
		Participants: make([]map[string]string, 0, len(participants)),
		Staffs:       make([]map[string]string, 0, len(staffs)),
	}
	for _, row := range participants {
		preview.Participants = append(preview.Participants, map[string]string{
			"名前":   row.Name,
			"フリガナ": row.Furigana,
			"性別":   row.Gender,
			"高校名":  row.School,
			"学年":   row.Grade,
			"参加学科": row.Subject,
			"参加回数": row.Count,
		})
	}
	for _, row := range staffs {
		preview.Staffs = append(preview.Staffs, map[string]string{
			"学科名":  row.Department,
			"名前":   row.Name,
			"フリガナ": row.Furigana,
			"学年":   row.Grade,
			"性別":   row.Gender,
			"役割":   row.Role,
		})
	}

	response.OK(c, preview)
}

// Export イベント名簿を Excel としてダウンロードする
// GET /api/v1/open-campuses/:id/export
func (h *OpenCampusHandler) Export(c *gin.Context) {
	buf, filename, err := h.ocService.ExportRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOpenCampusNotFound) {
			response.NotFound(c, CodeOpenCampusNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	setAttachmentHeader(c, filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportICS イベントを iCalendar としてダウンロードする
// GET /api/v1/open-campuses/:id/ics
func (h *OpenCampusHandler) ExportICS(c *gin.Context) {
	data, filename, err := h.ocService.ExportICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOpenCampusNotFound) {
			response.NotFound(c, CodeOpenCampusNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	setAttachmentHeader(c, filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// setAttachmentHeader 日本語ファイル名に対応した Content-Disposition を設定する
func setAttachmentHeader(c *gin.Context, filename string) {
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
}
