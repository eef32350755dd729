package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/repository"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
	"github.com/Haru0022/oc-staff-app/pkg/redis"
)

// ── 認証モジュールの業務エラー ──

var (
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
)

// AuthService 認証業務インターフェース
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout は Access Token の JWT ID をブラックリストへ登録し、
	// 残存期間中の再利用を防ぐ
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo       *repository.Repository
	jwtManager *jwt.Manager
	redis      *redis.Client // nil の場合はブラックリスト機能を無効化
	cfg        *config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService AuthService を生成する
func NewAuthService(repo *repository.Repository, jwtManager *jwt.Manager, redisClient *redis.Client, cfg *config.AuthConfig, logger *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		jwtManager: jwtManager,
		redis:      redisClient,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// ユーザーの存在有無は応答から判別できないようにする
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("ユーザー取得に失敗", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("Access Token の発行に失敗", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("Refresh Token の発行に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("ログイン成功", zap.String("user_id", user.UserID), zap.String("role", user.Role))

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redis == nil {
		s.logger.Warn("Redis 未接続のためブラックリスト登録をスキップ",
			zap.String("user_id", claims.UserID))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("ブラックリスト登録に失敗", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}

	s.logger.Info("ログアウト", zap.String("user_id", claims.UserID))
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}
