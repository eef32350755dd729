package model

import "time"

// Participant 参加者マスタ — participants
// (name, school) を自然キーとして同一人物を照合する。
// Count は参加回数の累計で、登録処理だけがインクリメントする
type Participant struct {
	ParticipantID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"participant_id"`
	OpenCampusID  string `gorm:"type:uuid"                                      json:"open_campus_id"` // 初回登録イベント
	Name          string `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	Furigana      string `gorm:"type:varchar(100);not null;default:''"          json:"furigana"`
	Gender        string `gorm:"type:varchar(20);not null;default:''"           json:"gender"`
	School        string `gorm:"type:varchar(200);not null;default:''"          json:"school"`
	Grade         string `gorm:"type:varchar(20);not null;default:''"           json:"grade"`
	Subject       string `gorm:"type:varchar(100);not null;default:''"          json:"subject"`
	Count         int    `gorm:"not null;default:1"                             json:"count"`
	BaseModel
}

// TableName テーブル名を指定
func (Participant) TableName() string { return "participants" }

// ParticipantEvent 参加者の参加履歴 — participant_events
// イベント毎に 1 件追記する。Memos 以外は作成後変更しない
type ParticipantEvent struct {
	ParticipantEventID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"participant_event_id"`
	ParticipantID      string      `gorm:"type:uuid;not null"                             json:"participant_id"`
	OpenCampusID       string      `gorm:"type:uuid;not null"                             json:"open_campus_id"`
	Date               time.Time   `gorm:"not null"                                       json:"date"`
	Grade              string      `gorm:"type:varchar(20);not null;default:''"           json:"grade"`
	Subject            string      `gorm:"type:varchar(100);not null;default:''"          json:"subject"`
	Count              int         `gorm:"not null;default:1"                             json:"count"`
	Memos              StringArray `gorm:"type:text[];not null;default:'{}'"              json:"memos"`
	BaseModel
}

// TableName テーブル名を指定
func (ParticipantEvent) TableName() string { return "participant_events" }
