package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/model"
)

// StaffRepository スタッフデータアクセスインターフェース
type StaffRepository interface {
	Create(ctx context.Context, st *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	// FindByName は名前のみの完全一致で既存スタッフを検索する。
	// 該当なしは gorm.ErrRecordNotFound
	FindByName(ctx context.Context, name string) (*model.Staff, error)
	List(ctx context.Context, search string, offset, limit int) ([]model.Staff, int64, error)

	AddEvent(ctx context.Context, ev *model.StaffEvent) error
	ListEvents(ctx context.Context, staffID string) ([]model.StaffEvent, error)
}

// staffRepo StaffRepository の GORM 実装
type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo StaffRepository を生成する
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, st *model.Staff) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var st model.Staff
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *staffRepo) FindByName(ctx context.Context, name string) (*model.Staff, error) {
	var st model.Staff
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *staffRepo) List(ctx context.Context, search string, offset, limit int) ([]model.Staff, int64, error) {
	var list []model.Staff
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Staff{})

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

func (r *staffRepo) AddEvent(ctx context.Context, ev *model.StaffEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *staffRepo) ListEvents(ctx context.Context, staffID string) ([]model.StaffEvent, error) {
	var list []model.StaffEvent
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("date ASC, created_at ASC").
		Find(&list).Error
	return list, err
}
