package dto

// ── オープンキャンパスモジュール DTO ──

// OpenCampusResponse 一覧・詳細共通のイベント情報
type OpenCampusResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Memo              string `json:"memo"`
	Date              string `json:"date"` // YYYY-MM-DD
	ParticipantsCount int    `json:"participants_count"`
	StaffCount        int    `json:"staff_count"`
}

// OpenCampusDetailResponse イベント詳細（両名簿スナップショット付き）
type OpenCampusDetailResponse struct {
	OpenCampusResponse
	Participants []RosterParticipantResponse `json:"participants"`
	Staffs       []RosterStaffResponse       `json:"staffs"`
}

// RosterParticipantResponse イベント名簿上の参加者スナップショット
type RosterParticipantResponse struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Furigana      string `json:"furigana"`
	Gender        string `json:"gender"`
	School        string `json:"school"`
	Grade         string `json:"grade"`
	Subject       string `json:"subject"`
	Count         int    `json:"count"`
}

// RosterStaffResponse イベント名簿上のスタッフスナップショット
type RosterStaffResponse struct {
	StaffID    string `json:"staff_id"`
	Name       string `json:"name"`
	Furigana   string `json:"furigana"`
	Gender     string `json:"gender"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Role       string `json:"role"`
}

// RegisterOpenCampusResponse 登録レスポンス
type RegisterOpenCampusResponse struct {
	ID                string `json:"id"`
	ParticipantsCount int    `json:"participants_count"`
	StaffCount        int    `json:"staff_count"`
}

// RosterPreviewResponse インポートファイルのプレビュー
type RosterPreviewResponse struct {
	Participants []map[string]string `json:"participants"`
	Staffs       []map[string]string `json:"staffs"`
}
