package handler

import (
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/service"
)

// パラメータ検証エラーの共通コード
const CodeInvalidParams = 10001

// Handler 全ハンドラーの集約
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	OpenCampus  *OpenCampusHandler
	Participant *ParticipantHandler
	Staff       *StaffHandler
}

// NewHandler 全ハンドラーを初期化する
func NewHandler(svc *service.Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, logger),
		User:        NewUserHandler(svc.User, logger),
		OpenCampus:  NewOpenCampusHandler(svc.OpenCampus, svc.Roster, &cfg.Roster, logger),
		Participant: NewParticipantHandler(svc.Participant, logger),
		Staff:       NewStaffHandler(svc.Staff, logger),
	}
}
