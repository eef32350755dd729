package dto

// ── 参加者モジュール DTO ──

// ParticipantListRequest 参加者一覧クエリ
type ParticipantListRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=100"`
}

// ParticipantResponse 参加者マスタ情報
type ParticipantResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Furigana string `json:"furigana"`
	Gender   string `json:"gender"`
	School   string `json:"school"`
	Grade    string `json:"grade"`
	Subject  string `json:"subject"`
	Count    int    `json:"count"`
}

// ParticipantDetailResponse 参加者詳細（参加履歴付き）
type ParticipantDetailResponse struct {
	ParticipantResponse
	PastEvents []ParticipantEventResponse `json:"past_events"`
}

// ParticipantEventResponse 参加履歴 1 件分
type ParticipantEventResponse struct {
	ID           string   `json:"id"`
	OpenCampusID string   `json:"open_campus_id"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Grade        string   `json:"grade"`
	Subject      string   `json:"subject"`
	Count        int      `json:"count"`
	Memos        []string `json:"memos"`
}

// AddMemoRequest メモ追加リクエスト
type AddMemoRequest struct {
	Memo string `json:"memo" binding:"required,max=2000"`
}

// UpdateMemoRequest メモ更新リクエスト
type UpdateMemoRequest struct {
	Memo string `json:"memo" binding:"required,max=2000"`
}
