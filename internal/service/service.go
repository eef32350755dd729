package service

import (
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/repository"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
	"github.com/Haru0022/oc-staff-app/pkg/redis"
)

// Service 全業務サービスの集約
type Service struct {
	Auth        AuthService
	User        UserService
	OpenCampus  OpenCampusService
	Participant ParticipantService
	Staff       StaffService
	Roster      RosterService
}

// NewService 全サービスを初期化する。redisClient は nil を許容する
func NewService(
	repo *repository.Repository,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtManager, redisClient, &cfg.Auth, logger),
		User:        NewUserService(repo, logger),
		OpenCampus:  NewOpenCampusService(repo, logger),
		Participant: NewParticipantService(repo, logger),
		Staff:       NewStaffService(repo, logger),
		Roster:      NewRosterService(&cfg.Roster),
	}
}
