package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/model"
)

// ParticipantRepository 参加者データアクセスインターフェース
type ParticipantRepository interface {
	Create(ctx context.Context, p *model.Participant) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	// FindByNameSchool は (name, school) の完全一致で既存参加者を検索する。
	// 空文字列も値として照合する。該当なしは gorm.ErrRecordNotFound
	FindByNameSchool(ctx context.Context, name, school string) (*model.Participant, error)
	// IncrementCount は count をデータベース側で 1 加算する（単文・行単位で原子的）
	IncrementCount(ctx context.Context, id string) error
	List(ctx context.Context, search string, offset, limit int) ([]model.Participant, int64, error)

	// 参加履歴（pastEvents サブコレクション相当）
	AddEvent(ctx context.Context, ev *model.ParticipantEvent) error
	ListEvents(ctx context.Context, participantID string) ([]model.ParticipantEvent, error)
	GetEvent(ctx context.Context, participantID, eventID string) (*model.ParticipantEvent, error)
	UpdateEventMemos(ctx context.Context, eventID string, memos model.StringArray) error
}

// participantRepo ParticipantRepository の GORM 実装
type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo ParticipantRepository を生成する
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) FindByNameSchool(ctx context.Context, name, school string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Where("name = ? AND school = ?", name, school).
		Order("created_at ASC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) IncrementCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("participant_id = ?", id).
		UpdateColumn("count", gorm.Expr("count + 1")).Error
}

func (r *participantRepo) List(ctx context.Context, search string, offset, limit int) ([]model.Participant, int64, error) {
	var list []model.Participant
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Participant{})

	// 名前の前方一致検索（範囲クエリ）
	if search != "" {
		db = db.Where("name >= ? AND name <= ?", search, search+"")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("furigana ASC, created_at ASC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *participantRepo) AddEvent(ctx context.Context, ev *model.ParticipantEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *participantRepo) ListEvents(ctx context.Context, participantID string) ([]model.ParticipantEvent, error) {
	var list []model.ParticipantEvent
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("date ASC, created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *participantRepo) GetEvent(ctx context.Context, participantID, eventID string) (*model.ParticipantEvent, error) {
	var ev model.ParticipantEvent
	err := r.db.WithContext(ctx).
		Where("participant_event_id = ? AND participant_id = ?", eventID, participantID).
		First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *participantRepo) UpdateEventMemos(ctx context.Context, eventID string, memos model.StringArray) error {
	return r.db.WithContext(ctx).
		Model(&model.ParticipantEvent{}).
		Where("participant_event_id = ?", eventID).
		UpdateColumn("memos", memos).Error
}
