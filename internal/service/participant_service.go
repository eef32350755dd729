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

// ── 参加者モジュールの業務エラー ──

var (
	ErrParticipantNotFound      = errors.New("参加者が見つかりません")
	ErrParticipantEventNotFound = errors.New("参加履歴が見つかりません")
	ErrMemoIndexOutOfRange      = errors.New("指定されたメモは存在しません")
)

// ParticipantService 参加者業務インターフェース
type ParticipantService interface {
	List(ctx context.Context, req *dto.ParticipantListRequest) ([]dto.ParticipantResponse, int64, error)
	GetDetail(ctx context.Context, id string) (*dto.ParticipantDetailResponse, error)

	// メモは参加履歴 1 件に紐づく文字列配列で、配列添字で更新・削除する
	AddMemo(ctx context.Context, participantID, eventID, memo string) ([]string, error)
	UpdateMemo(ctx context.Context, participantID, eventID string, index int, memo string) ([]string, error)
	DeleteMemo(ctx context.Context, participantID, eventID string, index int) ([]string, error)
}

type participantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParticipantService ParticipantService を生成する
func NewParticipantService(repo *repository.Repository, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, logger: logger}
}

func (s *participantService) List(ctx context.Context, req *dto.ParticipantListRequest) ([]dto.ParticipantResponse, int64, error) {
	list, total, err := s.repo.Participant.List(ctx, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("参加者一覧の取得に失敗", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ParticipantResponse, 0, len(list))
	for _, p := range list {
		result = append(result, toParticipantResponse(&p))
	}
	return result, total, nil
}

func (s *participantService) GetDetail(ctx context.Context, id string) (*dto.ParticipantDetailResponse, error) {
	p, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("参加者取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Participant.ListEvents(ctx, id)
	if err != nil {
		s.logger.Error("参加履歴の取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.ParticipantDetailResponse{
		ParticipantResponse: toParticipantResponse(p),
		PastEvents:          make([]dto.ParticipantEventResponse, 0, len(events)),
	}
	for _, ev := range events {
		detail.PastEvents = append(detail.PastEvents, dto.ParticipantEventResponse{
			ID:           ev.ParticipantEventID,
			OpenCampusID: ev.OpenCampusID,
			Date:         ev.Date.Format(dateLayout),
			Grade:        ev.Grade,
			Subject:      ev.Subject,
			Count:        ev.Count,
			Memos:        append([]string{}, ev.Memos...),
		})
	}
	return detail, nil
}

// getEvent 参加者 ID と履歴 ID の組で履歴を引く
// 他人の履歴 ID を指定しても取得できない
func (s *participantService) getEvent(ctx context.Context, participantID, eventID string) (*model.ParticipantEvent, error) {
	ev, err := s.repo.Participant.GetEvent(ctx, participantID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (s *participantService) AddMemo(ctx context.Context, participantID, eventID, memo string) ([]string, error) {
	ev, err := s.getEvent(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}

	memos := append(model.StringArray{}, ev.Memos...)
	memos = append(memos, memo)
	if err := s.repo.Participant.UpdateEventMemos(ctx, ev.ParticipantEventID, memos); err != nil {
		s.logger.Error("メモ追加に失敗", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return memos, nil
}

func (s *participantService) UpdateMemo(ctx context.Context, participantID, eventID string, index int, memo string) ([]string, error) {
	ev, err := s.getEvent(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ev.Memos) {
		return nil, ErrMemoIndexOutOfRange
	}

	memos := append(model.StringArray{}, ev.Memos...)
	memos[index] = memo
	if err := s.repo.Participant.UpdateEventMemos(ctx, ev.ParticipantEventID, memos); err != nil {
		s.logger.Error("メモ更新に失敗", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return memos, nil
}

func (s *participantService) DeleteMemo(ctx context.Context, participantID, eventID string, index int) ([]string, error) {
	ev, err := s.getEvent(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ev.Memos) {
		return nil, ErrMemoIndexOutOfRange
	}

	memos := append(model.StringArray{}, ev.Memos[:index]...)
	memos = append(memos, ev.Memos[index+1:]...)
	if err := s.repo.Participant.UpdateEventMemos(ctx, ev.ParticipantEventID, memos); err != nil {
		s.logger.Error("メモ削除に失敗", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return memos, nil
}

func toParticipantResponse(p *model.Participant) dto.ParticipantResponse {
	return dto.ParticipantResponse{
		ID:       p.ParticipantID,
		Name:     p.Name,
		Furigana: p.Furigana,
		Gender:   p.Gender,
		School:   p.School,
		Grade:    p.Grade,
		Subject:  p.Subject,
		Count:    p.Count,
	}
}
