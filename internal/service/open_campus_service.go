package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/dto"
	"github.com/Haru0022/oc-staff-app/internal/model"
	"github.com/Haru0022/oc-staff-app/internal/repository"
)

// ── オープンキャンパスモジュールの業務エラー ──

var (
	ErrOpenCampusNotFound = errors.New("オープンキャンパスが見つかりません")
	ErrOpenCampusBadDate  = errors.New("開催日の形式が不正です（YYYY-MM-DD）")
	ErrRegisterFailed     = errors.New("オープンキャンパスの登録に失敗しました")
)

// fallbackEventDate 開催日未入力時に使用する固定日付
const fallbackEventDate = "2024-08-10"

const dateLayout = "2006-01-02"

// RegisterInput イベント登録の入力
type RegisterInput struct {
	Title        string
	Memo         string
	Date         string // YYYY-MM-DD、空なら fallbackEventDate
	Participants []ParticipantRow
	Staffs       []StaffRow
}

// OpenCampusService オープンキャンパス業務インターフェース
type OpenCampusService interface {
	// Register はイベントを作成し、名簿の各行を既存の参加者・スタッフへ照合して
	// 参加記録を書き込む。行単位の書き込みは逐次実行され、途中で失敗しても
	// 書き込み済みの行は取り消さない
	Register(ctx context.Context, input *RegisterInput) (*dto.RegisterOpenCampusResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.OpenCampusResponse, int64, error)
	GetDetail(ctx context.Context, id string) (*dto.OpenCampusDetailResponse, error)
	ExportRoster(ctx context.Context, id string) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, id string) ([]byte, string, error)
}

type openCampusService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOpenCampusService OpenCampusService を生成する
func NewOpenCampusService(repo *repository.Repository, logger *zap.Logger) OpenCampusService {
	return &openCampusService{repo: repo, logger: logger}
}

// ────────────────────── Register ──────────────────────
//
// 書き込み順序（トランザクションでは包まない）：
//  1. open_campuses に 1 件作成。参加者数・スタッフ数は入力行数で確定
//  2. 参加者行ごとに (name, school) で照合
//     一致 → count を加算し、参加履歴とイベント名簿スナップショットを追記
//     不一致 → 新規参加者を作成して同様に追記
//  3. スタッフ行ごとに名前のみで照合し、履歴とスナップショットを追記
//
// 各書き込みはストア側で文単位に原子的だが、行をまたぐ一連の書き込みは
// 原子的でない。失敗時は残りを中断し、登録失敗として 1 つのエラーを返す

func (s *openCampusService) Register(ctx context.Context, input *RegisterInput) (*dto.RegisterOpenCampusResponse, error) {
	date, err := resolveEventDate(input.Date)
	if err != nil {
		return nil, err
	}

	// 1. イベント本体の作成
	oc := &model.OpenCampus{
		Title:             input.Title,
		Memo:              input.Memo,
		Date:              date,
		ParticipantsCount: len(input.Participants),
		StaffCount:        len(input.Staffs),
	}
	if err := s.repo.OpenCampus.Create(ctx, oc); err != nil {
		s.logger.Error("イベント作成に失敗", zap.Error(err))
		return nil, ErrRegisterFailed
	}

	// 2. 参加者行の照合・書き込み
	for i, row := range input.Participants {
		if err := s.registerParticipantRow(ctx, oc.OpenCampusID, date, row); err != nil {
			s.logger.Error("参加者行の登録に失敗（書き込み済みの行は残る）",
				zap.Int("row", i),
				zap.String("name", row.Name),
				zap.Error(err),
			)
			return nil, ErrRegisterFailed
		}
	}

	// 3. スタッフ行の照合・書き込み
	for i, row := range input.Staffs {
		if err := s.registerStaffRow(ctx, oc.OpenCampusID, date, row); err != nil {
			s.logger.Error("スタッフ行の登録に失敗（書き込み済みの行は残る）",
				zap.Int("row", i),
				zap.String("name", row.Name),
				zap.Error(err),
			)
			return nil, ErrRegisterFailed
		}
	}

	s.logger.Info("オープンキャンパスを登録",
		zap.String("open_campus_id", oc.OpenCampusID),
		zap.Int("participants", len(input.Participants)),
		zap.Int("staffs", len(input.Staffs)),
	)

	return &dto.RegisterOpenCampusResponse{
		ID:                oc.OpenCampusID,
		ParticipantsCount: oc.ParticipantsCount,
		StaffCount:        oc.StaffCount,
	}, nil
}

// registerParticipantRow 参加者 1 行分の照合と書き込み
func (s *openCampusService) registerParticipantRow(ctx context.Context, openCampusID string, date time.Time, row ParticipantRow) error {
	// 空文字列も値として照合する（空同士は一致）
	existing, err := s.repo.Participant.FindByNameSchool(ctx, row.Name, row.School)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		// 既存参加者：累計カウンタを加算
		if err := s.repo.Participant.IncrementCount(ctx, existing.ParticipantID); err != nil {
			return err
		}

		if err := s.repo.Participant.AddEvent(ctx, &model.ParticipantEvent{
			ParticipantID: existing.ParticipantID,
			OpenCampusID:  openCampusID,
			Date:          date,
			Grade:         row.Grade,
			Subject:       row.Subject,
			Count:         1,
			Memos:         model.StringArray{},
		}); err != nil {
			return err
		}

		// スナップショットの count はストアの値ではなく提出された行の
		// 参加回数 + 1 を使う
		return s.repo.OpenCampus.AddParticipantSnapshot(ctx, &model.OpenCampusParticipant{
			OpenCampusID:  openCampusID,
			ParticipantID: existing.ParticipantID,
			Name:          row.Name,
			Furigana:      row.Furigana,
			Gender:        row.Gender,
			School:        row.School,
			Grade:         row.Grade,
			Subject:       row.Subject,
			Count:         rowCount(row.Count) + 1,
		})
	}

	// 新規参加者
	p := &model.Participant{
		OpenCampusID: openCampusID,
		Name:         row.Name,
		Furigana:     row.Furigana,
		Gender:       row.Gender,
		School:       row.School,
		Grade:        row.Grade,
		Subject:      row.Subject,
		Count:        1,
	}
	if err := s.repo.Participant.Create(ctx, p); err != nil {
		return err
	}

	if err := s.repo.Participant.AddEvent(ctx, &model.ParticipantEvent{
		ParticipantID: p.ParticipantID,
		OpenCampusID:  openCampusID,
		Date:          date,
		Grade:         row.Grade,
		Subject:       row.Subject,
		Count:         1,
		Memos:         model.StringArray{},
	}); err != nil {
		return err
	}

	return s.repo.OpenCampus.AddParticipantSnapshot(ctx, &model.OpenCampusParticipant{
		OpenCampusID:  openCampusID,
		ParticipantID: p.ParticipantID,
		Name:          row.Name,
		Furigana:      row.Furigana,
		Gender:        row.Gender,
		School:        row.School,
		Grade:         row.Grade,
		Subject:       row.Subject,
		Count:         1,
	})
}

// registerStaffRow スタッフ 1 行分の照合と書き込み
// スタッフは名前のみで照合し、累計カウンタは持たない
func (s *openCampusService) registerStaffRow(ctx context.Context, openCampusID string, date time.Time, row StaffRow) error {
	existing, err := s.repo.Staff.FindByName(ctx, row.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	staffID := ""
	if existing != nil {
		staffID = existing.StaffID
	} else {
		st := &model.Staff{
			OpenCampusID: openCampusID,
			Name:         row.Name,
			Furigana:     row.Furigana,
			Gender:       row.Gender,
			Department:   row.Department,
			Grade:        row.Grade,
		}
		if err := s.repo.Staff.Create(ctx, st); err != nil {
			return err
		}
		staffID = st.StaffID
	}

	if err := s.repo.Staff.AddEvent(ctx, &model.StaffEvent{
		StaffID:      staffID,
		OpenCampusID: openCampusID,
		Date:         date,
		Role:         row.Role,
	}); err != nil {
		return err
	}

	return s.repo.OpenCampus.AddStaffSnapshot(ctx, &model.OpenCampusStaff{
		OpenCampusID: openCampusID,
		StaffID:      staffID,
		Name:         row.Name,
		Furigana:     row.Furigana,
		Gender:       row.Gender,
		Department:   row.Department,
		Grade:        row.Grade,
		Role:         row.Role,
	})
}

// resolveEventDate 開催日文字列を解決する。未入力は固定の既定日
func resolveEventDate(date string) (time.Time, error) {
	if date == "" {
		date = fallbackEventDate
	}
	t, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrOpenCampusBadDate
	}
	return t, nil
}

// rowCount 行の参加回数セルを数値化する。数値でなければ 0 扱い
func rowCount(cell string) int {
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0
	}
	return n
}

// ────────────────────── List ──────────────────────

func (s *openCampusService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.OpenCampusResponse, int64, error) {
	list, total, err := s.repo.OpenCampus.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("イベント一覧の取得に失敗", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.OpenCampusResponse, 0, len(list))
	for _, oc := range list {
		result = append(result, toOpenCampusResponse(&oc))
	}
	return result, total, nil
}

// ────────────────────── GetDetail ──────────────────────

func (s *openCampusService) GetDetail(ctx context.Context, id string) (*dto.OpenCampusDetailResponse, error) {
	oc, err := s.repo.OpenCampus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpenCampusNotFound
		}
		s.logger.Error("イベント取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	participants, err := s.repo.OpenCampus.ListParticipantSnapshots(ctx, id)
	if err != nil {
		s.logger.Error("参加者名簿の取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	staffs, err := s.repo.OpenCampus.ListStaffSnapshots(ctx, id)
	if err != nil {
		s.logger.Error("スタッフ名簿の取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.OpenCampusDetailResponse{
		OpenCampusResponse: toOpenCampusResponse(oc),
		Participants:       make([]dto.RosterParticipantResponse, 0, len(participants)),
		Staffs:             make([]dto.RosterStaffResponse, 0, len(staffs)),
	}
	for _, p := range participants {
		detail.Participants = append(detail.Participants, dto.RosterParticipantResponse{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			Furigana:      p.Furigana,
			Gender:        p.Gender,
			School:        p.School,
			Grade:         p.Grade,
			Subject:       p.Subject,
			Count:         p.Count,
		})
	}
	for _, st := range staffs {
		detail.Staffs = append(detail.Staffs, dto.RosterStaffResponse{
			StaffID:    st.StaffID,
			Name:       st.Name,
			Furigana:   st.Furigana,
			Gender:     st.Gender,
			Department: st.Department,
			Grade:      st.Grade,
			Role:       st.Role,
		})
	}
	return detail, nil
}

// ────────────────────── ExportRoster ──────────────────────
//
// イベント名簿スナップショットをインポート時と同じ 2 シート構成の
// Excel (.xlsx) として書き出す

func (s *openCampusService) ExportRoster(ctx context.Context, id string) (*bytes.Buffer, string, error) {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const participantSheet = "参加者"
	const staffSheet = "スタッフ"

	f.SetSheetName("Sheet1", participantSheet)
	if _, err := f.NewSheet(staffSheet); err != nil {
		return nil, "", fmt.Errorf("シート作成に失敗: %w", err)
	}

	pHeader := []interface{}{colName, colFurigana, colGender, colSchool, colGrade, colSubject, colCount}
	if err := f.SetSheetRow(participantSheet, "A1", &pHeader); err != nil {
		return nil, "", fmt.Errorf("Excel 書き込みに失敗: %w", err)
	}
	for i, p := range detail.Participants {
		row := []interface{}{p.Name, p.Furigana, p.Gender, p.School, p.Grade, p.Subject, p.Count}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(participantSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("Excel 書き込みに失敗: %w", err)
		}
	}

	sHeader := []interface{}{colDepartment, colName, colFurigana, colGrade, colGender, colRole}
	if err := f.SetSheetRow(staffSheet, "A1", &sHeader); err != nil {
		return nil, "", fmt.Errorf("Excel 書き込みに失敗: %w", err)
	}
	for i, st := range detail.Staffs {
		row := []interface{}{st.Department, st.Name, st.Furigana, st.Grade, st.Gender, st.Role}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(staffSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("Excel 書き込みに失敗: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Excel 生成に失敗", zap.String("id", id), zap.Error(err))
		return nil, "", fmt.Errorf("Excel 生成に失敗: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", detail.Title, detail.Date)
	return buf, filename, nil
}

// ────────────────────── ExportICS ──────────────────────
//
// モバイル利用者がカレンダーに取り込めるよう、イベントを
// iCalendar (RFC 5545) 形式で書き出す

func (s *openCampusService) ExportICS(ctx context.Context, id string) ([]byte, string, error) {
	oc, err := s.repo.OpenCampus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOpenCampusNotFound
		}
		s.logger.Error("イベント取得に失敗", zap.String("id", id), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//oc-staff-app//JP")

	ev := cal.AddEvent(oc.OpenCampusID + "@oc-staff-app")
	ev.SetCreatedTime(oc.CreatedAt)
	ev.SetDtStampTime(oc.CreatedAt)
	ev.SetAllDayStartAt(oc.Date)
	ev.SetAllDayEndAt(oc.Date.AddDate(0, 0, 1))
	ev.SetSummary(oc.Title)
	if oc.Memo != "" {
		ev.SetDescription(oc.Memo)
	}

	filename := fmt.Sprintf("%s.ics", oc.Title)
	return []byte(cal.Serialize()), filename, nil
}

// toOpenCampusResponse モデルをレスポンス DTO に変換する
func toOpenCampusResponse(oc *model.OpenCampus) dto.OpenCampusResponse {
	return dto.OpenCampusResponse{
		ID:                oc.OpenCampusID,
		Title:             oc.Title,
		Memo:              oc.Memo,
		Date:              oc.Date.Format(dateLayout),
		ParticipantsCount: oc.ParticipantsCount,
		StaffCount:        oc.StaffCount,
	}
}
