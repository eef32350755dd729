package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Haru0022/oc-staff-app/internal/model"
	"github.com/Haru0022/oc-staff-app/internal/repository"
)

// errStoreFailure 失敗注入用のストアエラー
var errStoreFailure = errors.New("ストア書き込みに失敗")

// newMockRepository 全 Repository をインメモリ実装で束ねる
func newMockRepository() (*repository.Repository, *mockOpenCampusRepo, *mockParticipantRepo, *mockStaffRepo, *mockUserRepo) {
	oc := &mockOpenCampusRepo{}
	p := &mockParticipantRepo{}
	st := &mockStaffRepo{}
	u := &mockUserRepo{}
	repo := &repository.Repository{
		OpenCampus:  oc,
		Participant: p,
		Staff:       st,
		User:        u,
	}
	return repo, oc, p, st, u
}

// ── OpenCampusRepository ──

type mockOpenCampusRepo struct {
	openCampuses   []*model.OpenCampus
	participants   []*model.OpenCampusParticipant
	staffs         []*model.OpenCampusStaff
	failOn         string // メソッド名が一致した呼び出しを失敗させる
	failOnCallNo   int    // 0 なら常に、N なら N 回目の呼び出しで失敗
	snapshotCallNo int
	seq            int
}

func (m *mockOpenCampusRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockOpenCampusRepo) shouldFail(method string) bool {
	if m.failOn != method {
		return false
	}
	if m.failOnCallNo == 0 {
		return true
	}
	m.snapshotCallNo++
	return m.snapshotCallNo == m.failOnCallNo
}

func (m *mockOpenCampusRepo) Create(_ context.Context, oc *model.OpenCampus) error {
	if m.shouldFail("Create") {
		return errStoreFailure
	}
	oc.OpenCampusID = m.nextID("oc")
	m.openCampuses = append(m.openCampuses, oc)
	return nil
}

func (m *mockOpenCampusRepo) GetByID(_ context.Context, id string) (*model.OpenCampus, error) {
	for _, oc := range m.openCampuses {
		if oc.OpenCampusID == id {
			return oc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOpenCampusRepo) List(_ context.Context, offset, limit int) ([]model.OpenCampus, int64, error) {
	total := int64(len(m.openCampuses))
	var list []model.OpenCampus
	for i := offset; i < len(m.openCampuses) && len(list) < limit; i++ {
		list = append(list, *m.openCampuses[i])
	}
	return list, total, nil
}

func (m *mockOpenCampusRepo) AddParticipantSnapshot(_ context.Context, snap *model.OpenCampusParticipant) error {
	if m.shouldFail("AddParticipantSnapshot") {
		return errStoreFailure
	}
	snap.ID = m.nextID("ocp")
	m.participants = append(m.participants, snap)
	return nil
}

func (m *mockOpenCampusRepo) AddStaffSnapshot(_ context.Context, snap *model.OpenCampusStaff) error {
	if m.shouldFail("AddStaffSnapshot") {
		return errStoreFailure
	}
	snap.ID = m.nextID("ocs")
	m.staffs = append(m.staffs, snap)
	return nil
}

func (m *mockOpenCampusRepo) ListParticipantSnapshots(_ context.Context, openCampusID string) ([]model.OpenCampusParticipant, error) {
	var list []model.OpenCampusParticipant
	for _, s := range m.participants {
		if s.OpenCampusID == openCampusID {
			list = append(list, *s)
		}
	}
	return list, nil
}

func (m *mockOpenCampusRepo) ListStaffSnapshots(_ context.Context, openCampusID string) ([]model.OpenCampusStaff, error) {
	var list []model.OpenCampusStaff
	for _, s := range m.staffs {
		if s.OpenCampusID == openCampusID {
			list = append(list, *s)
		}
	}
	return list, nil
}

// ── ParticipantRepository ──

type mockParticipantRepo struct {
	participants []*model.Participant
	events       []*model.ParticipantEvent
	failOn       string
	seq          int
}

func (m *mockParticipantRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockParticipantRepo) Create(_ context.Context, p *model.Participant) error {
	if m.failOn == "Create" {
		return errStoreFailure
	}
	p.ParticipantID = m.nextID("p")
	m.participants = append(m.participants, p)
	return nil
}

func (m *mockParticipantRepo) GetByID(_ context.Context, id string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.ParticipantID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) FindByNameSchool(_ context.Context, name, school string) (*model.Participant, error) {
	// 登録順 = created_at 順。最古の 1 件を返す
	for _, p := range m.participants {
		if p.Name == name && p.School == school {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) IncrementCount(_ context.Context, id string) error {
	if m.failOn == "IncrementCount" {
		return errStoreFailure
	}
	for _, p := range m.participants {
		if p.ParticipantID == id {
			p.Count++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) List(_ context.Context, search string, offset, limit int) ([]model.Participant, int64, error) {
	var matched []model.Participant
	for _, p := range m.participants {
		if search == "" || (p.Name >= search && p.Name <= search+"") {
			matched = append(matched, *p)
		}
	}
	total := int64(len(matched))
	var list []model.Participant
	for i := offset; i < len(matched) && len(list) < limit; i++ {
		list = append(list, matched[i])
	}
	return list, total, nil
}

func (m *mockParticipantRepo) AddEvent(_ context.Context, ev *model.ParticipantEvent) error {
	if m.failOn == "AddEvent" {
		return errStoreFailure
	}
	ev.ParticipantEventID = m.nextID("pe")
	m.events = append(m.events, ev)
	return nil
}

func (m *mockParticipantRepo) ListEvents(_ context.Context, participantID string) ([]model.ParticipantEvent, error) {
	var list []model.ParticipantEvent
	for _, ev := range m.events {
		if ev.ParticipantID == participantID {
			list = append(list, *ev)
		}
	}
	return list, nil
}

func (m *mockParticipantRepo) GetEvent(_ context.Context, participantID, eventID string) (*model.ParticipantEvent, error) {
	for _, ev := range m.events {
		if ev.ParticipantEventID == eventID && ev.ParticipantID == participantID {
			return ev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) UpdateEventMemos(_ context.Context, eventID string, memos model.StringArray) error {
	if m.failOn == "UpdateEventMemos" {
		return errStoreFailure
	}
	for _, ev := range m.events {
		if ev.ParticipantEventID == eventID {
			ev.Memos = memos
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── StaffRepository ──

type mockStaffRepo struct {
	staffs []*model.Staff
	events []*model.StaffEvent
	failOn string
	seq    int
}

func (m *mockStaffRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockStaffRepo) Create(_ context.Context, st *model.Staff) error {
	if m.failOn == "Create" {
		return errStoreFailure
	}
	st.StaffID = m.nextID("s")
	m.staffs = append(m.staffs, st)
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	for _, st := range m.staffs {
		if st.StaffID == id {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) FindByName(_ context.Context, name string) (*model.Staff, error) {
	for _, st := range m.staffs {
		if st.Name == name {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) List(_ context.Context, search string, offset, limit int) ([]model.Staff, int64, error) {
	var matched []model.Staff
	for _, st := range m.staffs {
		if search == "" || (st.Name >= search && st.Name <= search+"") {
			matched = append(matched, *st)
		}
	}
	total := int64(len(matched))
	var list []model.Staff
	for i := offset; i < len(matched) && len(list) < limit; i++ {
		list = append(list, matched[i])
	}
	return list, total, nil
}

func (m *mockStaffRepo) AddEvent(_ context.Context, ev *model.StaffEvent) error {
	if m.failOn == "AddEvent" {
		return errStoreFailure
	}
	ev.StaffEventID = m.nextID("se")
	m.events = append(m.events, ev)
	return nil
}

func (m *mockStaffRepo) ListEvents(_ context.Context, staffID string) ([]model.StaffEvent, error) {
	var list []model.StaffEvent
	for _, ev := range m.events {
		if ev.StaffID == staffID {
			list = append(list, *ev)
		}
	}
	return list, nil
}

// ── UserRepository ──

type mockUserRepo struct {
	users  []*model.User
	failOn string
	seq    int
}

func (m *mockUserRepo) nextID() string {
	m.seq++
	return fmt.Sprintf("u-%d", m.seq)
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.failOn == "Create" {
		return errStoreFailure
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UserID = m.nextID()
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if m.failOn == "Update" {
		return errStoreFailure
	}
	for i, u := range m.users {
		if u.UserID == user.UserID {
			m.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if m.failOn == "Delete" {
		return errStoreFailure
	}
	for i, u := range m.users {
		if u.UserID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	total := int64(len(m.users))
	var list []model.User
	for i := offset; i < len(m.users) && len(list) < limit; i++ {
		list = append(list, *m.users[i])
	}
	return list, total, nil
}
