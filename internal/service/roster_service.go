package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Haru0022/oc-staff-app/config"
)

// ── 名簿インポートの業務エラー ──

var (
	ErrRosterBadFile      = errors.New("Excel ファイルとして読み込めません")
	ErrRosterMissingSheet = errors.New("参加者シートとスタッフシートの 2 枚が必要です")
	ErrRosterTooManyRows  = errors.New("名簿の行数が上限を超えています")
)

// ParticipantRow 参加者シートの 1 行
// 値はすべてセルの文字列のまま保持する
type ParticipantRow struct {
	Name     string // 名前
	Furigana string // フリガナ
	Gender   string // 性別
	School   string // 高校名
	Grade    string // 学年
	Subject  string // 参加学科
	Count    string // 参加回数
}

// StaffRow スタッフシートの 1 行
type StaffRow struct {
	Department string // 学科名
	Name       string // 名前
	Furigana   string // フリガナ
	Grade      string // 学年
	Gender     string // 性別
	Role       string // 役割
}

// RosterService 名簿ファイル解析インターフェース
// 解析はすべてメモリ上で完結し、ストアへの書き込みは行わない
type RosterService interface {
	// Parse はワークブックの 1 枚目を参加者表、2 枚目をスタッフ表として読み込む。
	// 各シートの先頭行をヘッダとして列を特定し、行はファイル順のまま返す
	Parse(r io.Reader) ([]ParticipantRow, []StaffRow, error)
}

type rosterService struct {
	cfg *config.RosterConfig
}

// NewRosterService RosterService を生成する
func NewRosterService(cfg *config.RosterConfig) RosterService {
	return &rosterService{cfg: cfg}
}

// ── 参加者シートの列名 ──

const (
	colName     = "名前"
	colFurigana = "フリガナ"
	colGender   = "性別"
	colSchool   = "高校名"
	colGrade    = "学年"
	colSubject  = "参加学科"
	colCount    = "参加回数"

	// スタッフシート固有
	colDepartment = "学科名"
	colRole       = "役割"
)

func (s *rosterService) Parse(r io.Reader) ([]ParticipantRow, []StaffRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRosterBadFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return nil, nil, ErrRosterMissingSheet
	}

	participantRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("参加者シートの読み込みに失敗: %w", err)
	}
	staffRows, err := f.GetRows(sheets[1])
	if err != nil {
		return nil, nil, fmt.Errorf("スタッフシートの読み込みに失敗: %w", err)
	}

	participants := parseParticipantSheet(participantRows)
	staffs := parseStaffSheet(staffRows)

	if max := s.cfg.MaxRows; max > 0 && len(participants)+len(staffs) > max {
		return nil, nil, ErrRosterTooManyRows
	}

	return participants, staffs, nil
}

// parseHeaderIndex シートの先頭行から 列名 → 列番号 のマップを作る
// 列の並び順は固定しない
func parseHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return idx
}

// cellAt 行の idx 列目の値を返す。列が存在しない場合は空文字列
func cellAt(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseParticipantSheet(rows [][]string) []ParticipantRow {
	if len(rows) < 2 {
		return nil
	}
	idx := parseHeaderIndex(rows[0])

	var result []ParticipantRow
	for _, row := range rows[1:] {
		item := ParticipantRow{
			Name:     cellAt(row, idx, colName),
			Furigana: cellAt(row, idx, colFurigana),
			Gender:   cellAt(row, idx, colGender),
			School:   cellAt(row, idx, colSchool),
			Grade:    cellAt(row, idx, colGrade),
			Subject:  cellAt(row, idx, colSubject),
			Count:    cellAt(row, idx, colCount),
		}
		if item == (ParticipantRow{}) {
			continue // 全列が空の行は読み飛ばす
		}
		result = append(result, item)
	}
	return result
}

func parseStaffSheet(rows [][]string) []StaffRow {
	if len(rows) < 2 {
		return nil
	}
	idx := parseHeaderIndex(rows[0])

	var result []StaffRow
	for _, row := range rows[1:] {
		item := StaffRow{
			Department: cellAt(row, idx, colDepartment),
			Name:       cellAt(row, idx, colName),
			Furigana:   cellAt(row, idx, colFurigana),
			Grade:      cellAt(row, idx, colGrade),
			Gender:     cellAt(row, idx, colGender),
			Role:       cellAt(row, idx, colRole),
		}
		if item == (StaffRow{}) {
			continue
		}
		result = append(result, item)
	}
	return result
}
