package dto

// ── 認証モジュール レスポンス ──

// TokenResponse Token ペアのレスポンス
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token の有効期間（秒）
	User         UserResponse `json:"user"`
}

// ── ユーザーモジュール レスポンス ──

// UserResponse ユーザー情報レスポンス（ハッシュ等は含めない）
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ── ページング ──

// PaginationRequest 共通ページングパラメータ
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage ページ番号（デフォルト値込み）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 1 ページあたりの件数（デフォルト値込み）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset オフセットを計算する
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
