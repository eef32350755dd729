package model

// アカウント権限
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 管理コンソールのアカウント — users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Affiliation  string `gorm:"type:varchar(100);not null;default:''"          json:"affiliation"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"       json:"role"` // admin | user
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName テーブル名を指定
func (User) TableName() string { return "users" }
