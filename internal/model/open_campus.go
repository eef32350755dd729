package model

import "time"

// OpenCampus オープンキャンパス開催記録 — open_campuses
// ParticipantsCount / StaffCount は登録時点のスナップショットで、以後再計算しない
type OpenCampus struct {
	OpenCampusID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"open_campus_id"`
	Title             string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Memo              string    `gorm:"type:text;not null;default:''"                  json:"memo"`
	Date              time.Time `gorm:"not null"                                       json:"date"`
	ParticipantsCount int       `gorm:"not null;default:0"                             json:"participants_count"`
	StaffCount        int       `gorm:"not null;default:0"                             json:"staff_count"`
	BaseModel
}

// TableName テーブル名を指定
func (OpenCampus) TableName() string { return "open_campuses" }

// OpenCampusParticipant イベント時点の参加者スナップショット — open_campus_participants
// 作成後は一切更新しない（本人レコードが変わっても追従しない）
type OpenCampusParticipant struct {
	ID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OpenCampusID  string `gorm:"type:uuid;not null"                             json:"open_campus_id"`
	ParticipantID string `gorm:"type:uuid;not null"                             json:"participant_id"`
	Name          string `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	Furigana      string `gorm:"type:varchar(100);not null;default:''"          json:"furigana"`
	Gender        string `gorm:"type:varchar(20);not null;default:''"           json:"gender"`
	School        string `gorm:"type:varchar(200);not null;default:''"          json:"school"`
	Grade         string `gorm:"type:varchar(20);not null;default:''"           json:"grade"`
	Subject       string `gorm:"type:varchar(100);not null;default:''"          json:"subject"`
	Count         int    `gorm:"not null;default:1"                             json:"count"`
}

// TableName テーブル名を指定
func (OpenCampusParticipant) TableName() string { return "open_campus_participants" }

// OpenCampusStaff イベント時点のスタッフスナップショット — open_campus_staffs
type OpenCampusStaff struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OpenCampusID string `gorm:"type:uuid;not null"                             json:"open_campus_id"`
	StaffID      string `gorm:"type:uuid;not null"                             json:"staff_id"`
	Name         string `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	Furigana     string `gorm:"type:varchar(100);not null;default:''"          json:"furigana"`
	Gender       string `gorm:"type:varchar(20);not null;default:''"           json:"gender"`
	Department   string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Grade        string `gorm:"type:varchar(20);not null;default:''"           json:"grade"`
	Role         string `gorm:"type:varchar(100);not null;default:''"          json:"role"`
}

// TableName テーブル名を指定
func (OpenCampusStaff) TableName() string { return "open_campus_staffs" }
