package dto

// ── ユーザーモジュール DTO ──

// CreateUserItem 一括作成の 1 ユーザー分
// 配列で受け取り、全フィールド必須
type CreateUserItem struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

// CreateUsersResponse 一括作成レスポンス
type CreateUsersResponse struct {
	Created int            `json:"created"`
	Users   []UserResponse `json:"users"`
}

// UpdateRoleRequest 権限変更リクエスト
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

// ResetPasswordRequest パスワード再設定リクエスト
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
