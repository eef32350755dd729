package repository

import "gorm.io/gorm"

// Repository 全 Repository の集約エントリ
type Repository struct {
	OpenCampus  OpenCampusRepository
	Participant ParticipantRepository
	Staff       StaffRepository
	User        UserRepository
}

// NewRepository Repository 集約を生成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		OpenCampus:  NewOpenCampusRepo(db),
		Participant: NewParticipantRepo(db),
		Staff:       NewStaffRepo(db),
		User:        NewUserRepo(db),
	}
}
