package model

import "time"

// Staff スタッフマスタ — staffs
// 名前のみを自然キーとして照合する（参加者と異なり累計カウンタは持たない）
type Staff struct {
	StaffID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	OpenCampusID string `gorm:"type:uuid"                                      json:"open_campus_id"` // 初回登録イベント
	Name         string `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	Furigana     string `gorm:"type:varchar(100);not null;default:''"          json:"furigana"`
	Gender       string `gorm:"type:varchar(20);not null;default:''"           json:"gender"`
	Department   string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Grade        string `gorm:"type:varchar(20);not null;default:''"           json:"grade"`
	BaseModel
}

// TableName テーブル名を指定
func (Staff) TableName() string { return "staffs" }

// StaffEvent スタッフの参加履歴 — staff_events
type StaffEvent struct {
	StaffEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_event_id"`
	StaffID      string    `gorm:"type:uuid;not null"                             json:"staff_id"`
	OpenCampusID string    `gorm:"type:uuid;not null"                             json:"open_campus_id"`
	Date         time.Time `gorm:"not null"                                       json:"date"`
	Role         string    `gorm:"type:varchar(100);not null;default:''"          json:"role"`
	BaseModel
}

// TableName テーブル名を指定
func (StaffEvent) TableName() string { return "staff_events" }
