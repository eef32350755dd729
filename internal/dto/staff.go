package dto

// ── スタッフモジュール DTO ──

// StaffListRequest スタッフ一覧クエリ
type StaffListRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=100"`
}

// StaffResponse スタッフマスタ情報
type StaffResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Furigana   string `json:"furigana"`
	Gender     string `json:"gender"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

// StaffDetailResponse スタッフ詳細（参加履歴付き）
type StaffDetailResponse struct {
	StaffResponse
	PastEvents []StaffEventResponse `json:"past_events"`
}

// StaffEventResponse スタッフ参加履歴 1 件分
type StaffEventResponse struct {
	ID           string `json:"id"`
	OpenCampusID string `json:"open_campus_id"`
	Date         string `json:"date"` // YYYY-MM-DD
	Role         string `json:"role"`
}
