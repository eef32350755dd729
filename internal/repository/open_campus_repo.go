package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/model"
)

// OpenCampusRepository オープンキャンパスデータアクセスインターフェース
type OpenCampusRepository interface {
	Create(ctx context.Context, oc *model.OpenCampus) error
	GetByID(ctx context.Context, id string) (*model.OpenCampus, error)
	List(ctx context.Context, offset, limit int) ([]model.OpenCampus, int64, error)

	// イベント名簿スナップショット（サブコレクション相当）
	AddParticipantSnapshot(ctx context.Context, snap *model.OpenCampusParticipant) error
	AddStaffSnapshot(ctx context.Context, snap *model.OpenCampusStaff) error
	ListParticipantSnapshots(ctx context.Context, openCampusID string) ([]model.OpenCampusParticipant, error)
	ListStaffSnapshots(ctx context.Context, openCampusID string) ([]model.OpenCampusStaff, error)
}

// openCampusRepo OpenCampusRepository の GORM 実装
type openCampusRepo struct {
	db *gorm.DB
}

// NewOpenCampusRepo OpenCampusRepository を生成する
func NewOpenCampusRepo(db *gorm.DB) OpenCampusRepository {
	return &openCampusRepo{db: db}
}

func (r *openCampusRepo) Create(ctx context.Context, oc *model.OpenCampus) error {
	return r.db.WithContext(ctx).Create(oc).Error
}

func (r *openCampusRepo) GetByID(ctx context.Context, id string) (*model.OpenCampus, error) {
	var oc model.OpenCampus
	err := r.db.WithContext(ctx).
		Where("open_campus_id = ?", id).
		First(&oc).Error
	if err != nil {
		return nil, err
	}
	return &oc, nil
}

func (r *openCampusRepo) List(ctx context.Context, offset, limit int) ([]model.OpenCampus, int64, error) {
	var list []model.OpenCampus
	var total int64

	db := r.db.WithContext(ctx).Model(&model.OpenCampus{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *openCampusRepo) AddParticipantSnapshot(ctx context.Context, snap *model.OpenCampusParticipant) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

func (r *openCampusRepo) AddStaffSnapshot(ctx context.Context, snap *model.OpenCampusStaff) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

func (r *openCampusRepo) ListParticipantSnapshots(ctx context.Context, openCampusID string) ([]model.OpenCampusParticipant, error) {
	var list []model.OpenCampusParticipant
	err := r.db.WithContext(ctx).
		Where("open_campus_id = ?", openCampusID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *openCampusRepo) ListStaffSnapshots(ctx context.Context, openCampusID string) ([]model.OpenCampusStaff, error) {
	var list []model.OpenCampusStaff
	err := r.db.WithContext(ctx).
		Where("open_campus_id = ?", openCampusID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
