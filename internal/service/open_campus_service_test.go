package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestOpenCampusService() (OpenCampusService, *mockOpenCampusRepo, *mockParticipantRepo, *mockStaffRepo) {
	repo, oc, p, st, _ := newMockRepository()
	svc := NewOpenCampusService(repo, zap.NewNop())
	return svc, oc, p, st
}

func TestRegister_NewParticipant(t *testing.T) {
	svc, ocRepo, pRepo, _ := newTestOpenCampusService()

	result, err := svc.Register(context.Background(), &RegisterInput{
		Title: "夏のオープンキャンパス",
		Date:  "2025-07-20",
		Participants: []ParticipantRow{
			{Name: "田中太郎", Furigana: "タナカタロウ", Gender: "男", School: "第一高校", Grade: "2年", Subject: "情報", Count: ""},
		},
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}
	if result.ParticipantsCount != 1 || result.StaffCount != 0 {
		t.Errorf("件数が不正: participants=%d staffs=%d", result.ParticipantsCount, result.StaffCount)
	}

	if len(pRepo.participants) != 1 {
		t.Fatalf("参加者マスタは 1 件のはず: %d", len(pRepo.participants))
	}
	p := pRepo.participants[0]
	if p.Count != 1 {
		t.Errorf("新規参加者の累計は 1 のはず: %d", p.Count)
	}
	if p.OpenCampusID != result.ID {
		t.Errorf("初回イベント ID が記録されていない: %s", p.OpenCampusID)
	}

	if len(pRepo.events) != 1 {
		t.Fatalf("参加履歴は 1 件のはず: %d", len(pRepo.events))
	}
	ev := pRepo.events[0]
	if ev.Count != 1 {
		t.Errorf("履歴の count は常に 1 のはず: %d", ev.Count)
	}
	if len(ev.Memos) != 0 {
		t.Errorf("履歴のメモは空で始まるはず: %v", ev.Memos)
	}

	if len(ocRepo.participants) != 1 {
		t.Fatalf("名簿スナップショットは 1 件のはず: %d", len(ocRepo.participants))
	}
	if ocRepo.participants[0].Count != 1 {
		t.Errorf("新規参加者のスナップショット count は 1 のはず: %d", ocRepo.participants[0].Count)
	}
}

func TestRegister_MatchedParticipant(t *testing.T) {
	svc, ocRepo, pRepo, _ := newTestOpenCampusService()
	ctx := context.Background()

	// 1 回目の参加で参加者を作る
	if _, err := svc.Register(ctx, &RegisterInput{
		Title: "第 1 回",
		Date:  "2025-06-01",
		Participants: []ParticipantRow{
			{Name: "田中太郎", School: "第一高校", Count: ""},
		},
	}); err != nil {
		t.Fatalf("初回登録に失敗: %v", err)
	}

	// 2 回目：名簿に参加回数 1 と記載された同一人物
	if _, err := svc.Register(ctx, &RegisterInput{
		Title: "第 2 回",
		Date:  "2025-07-20",
		Participants: []ParticipantRow{
			{Name: "田中太郎", School: "第一高校", Grade: "3年", Count: "1"},
		},
	}); err != nil {
		t.Fatalf("2 回目の登録に失敗: %v", err)
	}

	if len(pRepo.participants) != 1 {
		t.Fatalf("同一人物なのでマスタは 1 件のまま: %d", len(pRepo.participants))
	}
	if pRepo.participants[0].Count != 2 {
		t.Errorf("累計は 2 のはず: %d", pRepo.participants[0].Count)
	}

	if len(pRepo.events) != 2 {
		t.Fatalf("参加履歴は 2 件のはず: %d", len(pRepo.events))
	}
	for _, ev := range pRepo.events {
		if ev.Count != 1 {
			t.Errorf("履歴の count は常に 1 のはず: %d", ev.Count)
		}
	}

	// スナップショットの count は名簿記載の参加回数 + 1
	if len(ocRepo.participants) != 2 {
		t.Fatalf("スナップショットは 2 件のはず: %d", len(ocRepo.participants))
	}
	second := ocRepo.participants[1]
	if second.Count != 2 {
		t.Errorf("2 回目のスナップショット count は 名簿値 1 + 1 = 2 のはず: %d", second.Count)
	}
}

func TestRegister_SnapshotCountUsesRowValue(t *testing.T) {
	svc, ocRepo, pRepo, _ := newTestOpenCampusService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Title:        "第 1 回",
		Participants: []ParticipantRow{{Name: "鈴木花子", School: "南高校"}},
	}); err != nil {
		t.Fatalf("初回登録に失敗: %v", err)
	}

	// 名簿の参加回数がストアの累計とずれていても名簿値を優先する
	if _, err := svc.Register(ctx, &RegisterInput{
		Title:        "第 2 回",
		Participants: []ParticipantRow{{Name: "鈴木花子", School: "南高校", Count: "5"}},
	}); err != nil {
		t.Fatalf("2 回目の登録に失敗: %v", err)
	}

	if pRepo.participants[0].Count != 2 {
		t.Errorf("マスタの累計は 2 のはず: %d", pRepo.participants[0].Count)
	}
	if ocRepo.participants[1].Count != 6 {
		t.Errorf("スナップショットは名簿値 5 + 1 = 6 のはず: %d", ocRepo.participants[1].Count)
	}
}

func TestRegister_EmptyKeyFieldsStillMatch(t *testing.T) {
	svc, _, pRepo, _ := newTestOpenCampusService()
	ctx := context.Background()

	// 名前・高校名とも空の行同士は同一人物として照合される
	for i := 0; i < 2; i++ {
		if _, err := svc.Register(ctx, &RegisterInput{
			Title:        "回",
			Participants: []ParticipantRow{{Gender: "女"}},
		}); err != nil {
			t.Fatalf("登録に失敗: %v", err)
		}
	}

	if len(pRepo.participants) != 1 {
		t.Errorf("空文字列キーでも照合されてマスタは 1 件のはず: %d", len(pRepo.participants))
	}
	if pRepo.participants[0].Count != 2 {
		t.Errorf("累計は 2 のはず: %d", pRepo.participants[0].Count)
	}
}

func TestRegister_StaffMatchedByNameOnly(t *testing.T) {
	svc, ocRepo, _, stRepo := newTestOpenCampusService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Title:  "第 1 回",
		Staffs: []StaffRow{{Name: "佐藤次郎", Department: "情報工学科", Role: "受付"}},
	}); err != nil {
		t.Fatalf("初回登録に失敗: %v", err)
	}

	// 学科が変わっても名前が同じなら既存スタッフを使う
	if _, err := svc.Register(ctx, &RegisterInput{
		Title:  "第 2 回",
		Staffs: []StaffRow{{Name: "佐藤次郎", Department: "電気工学科", Role: "誘導"}},
	}); err != nil {
		t.Fatalf("2 回目の登録に失敗: %v", err)
	}

	if len(stRepo.staffs) != 1 {
		t.Fatalf("同名スタッフなのでマスタは 1 件のまま: %d", len(stRepo.staffs))
	}
	if len(stRepo.events) != 2 {
		t.Errorf("スタッフ履歴は 2 件のはず: %d", len(stRepo.events))
	}
	if stRepo.events[1].Role != "誘導" {
		t.Errorf("履歴にはその回の役割が入るはず: %s", stRepo.events[1].Role)
	}

	// スナップショットはその回の名簿の値を写す
	if len(ocRepo.staffs) != 2 {
		t.Fatalf("スタッフスナップショットは 2 件のはず: %d", len(ocRepo.staffs))
	}
	if ocRepo.staffs[1].Department != "電気工学科" {
		t.Errorf("スナップショットは名簿値を写すはず: %s", ocRepo.staffs[1].Department)
	}
}

func TestRegister_EmptyRosters(t *testing.T) {
	svc, ocRepo, pRepo, stRepo := newTestOpenCampusService()

	result, err := svc.Register(context.Background(), &RegisterInput{
		Title: "名簿なし",
		Date:  "2025-07-20",
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	if len(ocRepo.openCampuses) != 1 {
		t.Fatalf("イベントは 1 件作成されるはず: %d", len(ocRepo.openCampuses))
	}
	if result.ParticipantsCount != 0 || result.StaffCount != 0 {
		t.Errorf("件数は 0 のはず: %+v", result)
	}
	if len(pRepo.participants) != 0 || len(stRepo.staffs) != 0 {
		t.Error("マスタへの書き込みは発生しないはず")
	}
}

func TestRegister_FallbackDate(t *testing.T) {
	svc, ocRepo, pRepo, _ := newTestOpenCampusService()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Title:        "日付未入力",
		Participants: []ParticipantRow{{Name: "山本", School: "北高校"}},
	}); err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	want := "2024-08-10"
	if got := ocRepo.openCampuses[0].Date.Format("2006-01-02"); got != want {
		t.Errorf("イベント日付は既定値 %s のはず: %s", want, got)
	}
	if got := pRepo.events[0].Date.Format("2006-01-02"); got != want {
		t.Errorf("履歴の日付も既定値 %s のはず: %s", want, got)
	}
}

func TestRegister_BadDate(t *testing.T) {
	svc, ocRepo, _, _ := newTestOpenCampusService()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Title: "不正な日付",
		Date:  "2025/07/20",
	})
	if !errors.Is(err, ErrOpenCampusBadDate) {
		t.Fatalf("ErrOpenCampusBadDate が返るはず: %v", err)
	}
	if len(ocRepo.openCampuses) != 0 {
		t.Errorf("日付エラー時はイベントを作成しないはず: %d", len(ocRepo.openCampuses))
	}
}

func TestRegister_CountsFromInputLengths(t *testing.T) {
	svc, ocRepo, _, _ := newTestOpenCampusService()

	result, err := svc.Register(context.Background(), &RegisterInput{
		Title: "件数確認",
		Participants: []ParticipantRow{
			{Name: "A", School: "X"},
			{Name: "B", School: "Y"},
			{Name: "C", School: "Z"},
		},
		Staffs: []StaffRow{
			{Name: "S1"},
			{Name: "S2"},
		},
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	oc := ocRepo.openCampuses[0]
	if oc.ParticipantsCount != 3 || oc.StaffCount != 2 {
		t.Errorf("件数は入力行数で確定するはず: participants=%d staffs=%d", oc.ParticipantsCount, oc.StaffCount)
	}
	if result.ParticipantsCount != 3 || result.StaffCount != 2 {
		t.Errorf("レスポンスの件数が不正: %+v", result)
	}
}

func TestRegister_MidLoopFailureLeavesPartialWrites(t *testing.T) {
	svc, ocRepo, pRepo, _ := newTestOpenCampusService()

	// 2 件目のスナップショット書き込みで失敗させる
	ocRepo.failOn = "AddParticipantSnapshot"
	ocRepo.failOnCallNo = 2

	_, err := svc.Register(context.Background(), &RegisterInput{
		Title: "途中失敗",
		Participants: []ParticipantRow{
			{Name: "A", School: "X"},
			{Name: "B", School: "Y"},
			{Name: "C", School: "Z"},
		},
	})
	if !errors.Is(err, ErrRegisterFailed) {
		t.Fatalf("ErrRegisterFailed が返るはず: %v", err)
	}

	// ロールバックしないため、1 件目の書き込みと 2 件目のマスタ・履歴は残る
	if len(ocRepo.openCampuses) != 1 {
		t.Errorf("イベント本体は残るはず: %d", len(ocRepo.openCampuses))
	}
	if len(ocRepo.participants) != 1 {
		t.Errorf("1 件目のスナップショットは残るはず: %d", len(ocRepo.participants))
	}
	if len(pRepo.participants) != 2 {
		t.Errorf("2 件目までのマスタは残るはず: %d", len(pRepo.participants))
	}
	if len(pRepo.events) != 2 {
		t.Errorf("2 件目までの履歴は残るはず: %d", len(pRepo.events))
	}
}

func TestGetDetail_NotFound(t *testing.T) {
	svc, _, _, _ := newTestOpenCampusService()

	_, err := svc.GetDetail(context.Background(), "missing")
	if !errors.Is(err, ErrOpenCampusNotFound) {
		t.Fatalf("ErrOpenCampusNotFound が返るはず: %v", err)
	}
}

func TestGetDetail_ReturnsSnapshots(t *testing.T) {
	svc, _, _, _ := newTestOpenCampusService()
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Title:        "詳細確認",
		Date:         "2025-07-20",
		Participants: []ParticipantRow{{Name: "田中", School: "第一高校", Subject: "情報"}},
		Staffs:       []StaffRow{{Name: "佐藤", Role: "受付"}},
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	detail, err := svc.GetDetail(ctx, result.ID)
	if err != nil {
		t.Fatalf("詳細取得に失敗: %v", err)
	}
	if detail.Date != "2025-07-20" {
		t.Errorf("日付の形式が不正: %s", detail.Date)
	}
	if len(detail.Participants) != 1 || detail.Participants[0].Name != "田中" {
		t.Errorf("参加者名簿が不正: %+v", detail.Participants)
	}
	if len(detail.Staffs) != 1 || detail.Staffs[0].Role != "受付" {
		t.Errorf("スタッフ名簿が不正: %+v", detail.Staffs)
	}
}

func TestExportICS_ContainsEvent(t *testing.T) {
	svc, _, _, _ := newTestOpenCampusService()
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Title: "夏のオープンキャンパス",
		Memo:  "持ち物：筆記用具",
		Date:  "2025-07-20",
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	data, filename, err := svc.ExportICS(ctx, result.ID)
	if err != nil {
		t.Fatalf("ICS 出力に失敗: %v", err)
	}
	if filename != "夏のオープンキャンパス.ics" {
		t.Errorf("ファイル名が不正: %s", filename)
	}

	ics := string(data)
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:夏のオープンキャンパス", "20250720"} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS に %q が含まれるはず:\n%s", want, ics)
		}
	}
}

func TestExportRoster_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestOpenCampusService()
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Title:        "出力確認",
		Date:         "2025-07-20",
		Participants: []ParticipantRow{{Name: "田中", School: "第一高校"}},
		Staffs:       []StaffRow{{Name: "佐藤", Role: "受付"}},
	})
	if err != nil {
		t.Fatalf("登録に失敗: %v", err)
	}

	buf, filename, err := svc.ExportRoster(ctx, result.ID)
	if err != nil {
		t.Fatalf("Excel 出力に失敗: %v", err)
	}
	if filename != "出力確認_2025-07-20.xlsx" {
		t.Errorf("ファイル名が不正: %s", filename)
	}

	// 出力したファイルをインポート側の Parser で読み戻せること
	parser := NewRosterService(&testRosterConfig)
	participants, staffs, err := parser.Parse(buf)
	if err != nil {
		t.Fatalf("出力ファイルの解析に失敗: %v", err)
	}
	if len(participants) != 1 || participants[0].Name != "田中" {
		t.Errorf("参加者シートが不正: %+v", participants)
	}
	if len(staffs) != 1 || staffs[0].Role != "受付" {
		t.Errorf("スタッフシートが不正: %+v", staffs)
	}
}
