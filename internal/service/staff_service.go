package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/model"
	"github.com/Haru0022/oc-staff-app/internal/repository"
)

// ErrStaffNotFound スタッフが存在しない
var ErrStaffNotFound = errors.New("スタッフが見つかりません")

// StaffService スタッフ業務インターフェース
// スタッフ側は閲覧のみで、書き込みはイベント登録経由に限られる
type StaffService interface {
	List(ctx context.Context, req *dto.StaffListRequest) ([]dto.StaffResponse, int64, error)
	GetDetail(ctx context.Context, id string) (*dto.StaffDetailResponse, error)
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService StaffService を生成する
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) List(ctx context.Context, req *dto.StaffListRequest) ([]dto.StaffResponse, int64, error) {
	list, total, err := s.repo.Staff.List(ctx, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("スタッフ一覧の取得に失敗", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StaffResponse, 0, len(list))
	for _, st := range list {
		result = append(result, toStaffResponse(&st))
	}
	return result, total, nil
}

func (s *staffService) GetDetail(ctx context.Context, id string) (*dto.StaffDetailResponse, error) {
	st, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("スタッフ取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Staff.ListEvents(ctx, id)
	if err != nil {
		s.logger.Error("スタッフ参加履歴の取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.StaffDetailResponse{
		StaffResponse: toStaffResponse(st),
		PastEvents:    make([]dto.StaffEventResponse, 0, len(events)),
	}
	for _, ev := range events {
		detail.PastEvents = append(detail.PastEvents, dto.StaffEventResponse{
			ID:           ev.StaffEventID,
			OpenCampusID: ev.OpenCampusID,
			Date:         ev.Date.Format(dateLayout),
			Role:         ev.Role,
		})
	}
	return detail, nil
}

func toStaffResponse(st *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:         st.StaffID,
		Name:       st.Name,
		Furigana:   st.Furigana,
		Gender:     st.Gender,
		Department: st.Department,
		Grade:      st.Grade,
	}
}
