package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/model"
	"github.com/Haru0022/oc-staff-app/internal/repository"
)

// ── ユーザーモジュールの業務エラー ──

var (
	ErrUserNotFound    = errors.New("ユーザーが見つかりません")
	ErrUserEmailExists = errors.New("このメールアドレスは既に登録されています")
	ErrUserInvalidItem = errors.New("名前・メールアドレス・所属・権限・パスワードはすべて必須です")
	ErrUserBadRole     = errors.New("権限は admin または user を指定してください")
)

// UserService アカウント管理インターフェース（admin 専用操作を含む）
type UserService interface {
	// CreateUsers は複数ユーザーを一括作成する。いずれかの項目が欠けた
	// 要素が 1 つでもあれば全体を拒否し、1 件も作成しない
	CreateUsers(ctx context.Context, items []dto.CreateUserItem) (*dto.CreateUsersResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
	Delete(ctx context.Context, id string) error
	UpdateRole(ctx context.Context, id, role string) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService UserService を生成する
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) CreateUsers(ctx context.Context, items []dto.CreateUserItem) (*dto.CreateUsersResponse, error) {
	// 書き込み前に全要素を検証する
	for i, item := range items {
		if item.Name == "" || item.Email == "" || item.Affiliation == "" ||
			item.Role == "" || item.Password == "" {
			return nil, fmt.Errorf("%w（%d 件目）", ErrUserInvalidItem, i+1)
		}
		if item.Role != model.RoleAdmin && item.Role != model.RoleUser {
			return nil, fmt.Errorf("%w（%d 件目）", ErrUserBadRole, i+1)
		}
	}

	resp := &dto.CreateUsersResponse{Users: make([]dto.UserResponse, 0, len(items))}
	for _, item := range items {
		hash, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("パスワードハッシュ生成に失敗", zap.Error(err))
			return nil, err
		}

		user := &model.User{
			Name:         item.Name,
			Email:        item.Email,
			Affiliation:  item.Affiliation,
			Role:         item.Role,
			PasswordHash: string(hash),
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: %s", ErrUserEmailExists, item.Email)
			}
			s.logger.Error("ユーザー作成に失敗", zap.String("email", item.Email), zap.Error(err))
			return nil, err
		}

		s.logger.Info("ユーザーを作成", zap.String("user_id", user.UserID), zap.String("role", user.Role))
		resp.Users = append(resp.Users, toUserResponse(user))
	}

	resp.Created = len(resp.Users)
	return resp, nil
}

func (s *userService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("ユーザー一覧の取得に失敗", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(&u))
	}
	return result, total, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("ユーザー削除に失敗", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("ユーザーを削除", zap.String("user_id", id))
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, id, role string) (*dto.UserResponse, error) {
	if role != model.RoleAdmin && role != model.RoleUser {
		return nil, ErrUserBadRole
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("権限変更に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("権限を変更", zap.String("user_id", id), zap.String("role", role))
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) ResetPassword(ctx context.Context, id, newPassword string) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("パスワードハッシュ生成に失敗", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("パスワード再設定に失敗", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("パスワードを再設定", zap.String("user_id", id))
	return nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Affiliation: u.Affiliation,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
