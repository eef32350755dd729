package dto

// ── 認証モジュール DTO ──

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
