package services

import (
	"context"
	"errors"
	"mime/multipart"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/studyportal/internal/app/flows"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
)

var errStoreDown = errors.New("connection refused")

type fakeResourceStore struct {
	mu        sync.Mutex
	resources map[string]models.Resource
	clock     time.Time
	failList  bool
}

func newFakeResourceStore(resources ...models.Resource) *fakeResourceStore {
	s := &fakeResourceStore{resources: map[string]models.Resource{}, clock: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	for _, r := range resources {
		if r.CreatedAt.IsZero() {
			s.clock = s.clock.Add(time.Minute)
			r.CreatedAt = s.clock
		}
		s.resources[r.ID] = r
	}
	return s
}

func (s *fakeResourceStore) ListAll(ctx context.Context) ([]models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList {
		return nil, errStoreDown
	}
	out := make([]models.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeResourceStore) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, apperrors.ErrStudyResourceNotFound
	}
	return &r, nil
}

func (s *fakeResourceStore) Create(ctx context.Context, res *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[res.ID]; ok {
		return apperrors.ErrResourceSlugExists
	}
	s.clock = s.clock.Add(time.Minute)
	res.CreatedAt, res.UpdatedAt = s.clock, s.clock
	s.resources[res.ID] = *res
	return nil
}

func (s *fakeResourceStore) Update(ctx context.Context, res *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.resources[res.ID]
	if !ok {
		return apperrors.ErrStudyResourceNotFound
	}
	res.CreatedAt = cur.CreatedAt
	s.resources[res.ID] = *res
	return nil
}

func (s *fakeResourceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[id]; !ok {
		return apperrors.ErrStudyResourceNotFound
	}
	delete(s.resources, id)
	return nil
}

func (s *fakeResourceStore) ListByIDs(ctx context.Context, ids []string) ([]models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Resource{}
	for _, id := range ids {
		if r, ok := s.resources[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeResourceStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.resources[id]
	return ok
}

// fakeUserWatchlist mirrors the watchlist table: one row per (user, resource),
// inserts never overwrite saved_at and unknown resources are rejected.
type fakeUserWatchlist struct {
	mu    sync.Mutex
	rows  map[string]map[string]time.Time
	known func(id string) bool
	clock time.Time
}

func newFakeUserWatchlist(known func(string) bool) *fakeUserWatchlist {
	return &fakeUserWatchlist{
		rows:  map[string]map[string]time.Time{},
		known: known,
		clock: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeUserWatchlist) insert(userID, resourceID string) bool {
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]time.Time{}
	}
	if _, ok := f.rows[userID][resourceID]; ok {
		return false
	}
	f.clock = f.clock.Add(time.Second)
	f.rows[userID][resourceID] = f.clock
	return true
}

func (f *fakeUserWatchlist) Add(ctx context.Context, userID, resourceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.known(resourceID) {
		return apperrors.ErrStudyResourceNotFound
	}
	f.insert(userID, resourceID)
	return nil
}

func (f *fakeUserWatchlist) Remove(ctx context.Context, userID, resourceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows[userID], resourceID)
	return nil
}

func (f *fakeUserWatchlist) IDs(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.rows[userID]))
	for id := range f.rows[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return f.rows[userID][ids[i]].After(f.rows[userID][ids[j]])
	})
	return ids, nil
}

func (f *fakeUserWatchlist) Merge(ctx context.Context, userID string, resourceIDs []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	added := 0
	for _, id := range resourceIDs {
		if f.known(id) && f.insert(userID, id) {
			added++
		}
	}
	return added, nil
}

func (f *fakeUserWatchlist) savedAt(userID, resourceID string) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[userID][resourceID]
}

type fakeGuestStore struct {
	mu    sync.Mutex
	lists map[string][]string
}

func newFakeGuestStore() *fakeGuestStore {
	return &fakeGuestStore{lists: map[string][]string{}}
}

func (g *fakeGuestStore) Load(ctx context.Context, guestID string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.lists[guestID]), nil
}

func (g *fakeGuestStore) Save(ctx context.Context, guestID string, ids []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lists[guestID] = slices.Clone(ids)
	return nil
}

func (g *fakeGuestStore) Clear(ctx context.Context, guestID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.lists, guestID)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) List(ctx context.Context, offset, limit int) ([]models.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

// fakeStorage records deletions and owns URLs under /uploads/.
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
	saved   []string
}

func (f *fakeStorage) SaveFile(fh *multipart.FileHeader, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + folder + "/" + fh.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) SaveBytes(data []byte, ext, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + folder + "/generated" + ext
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeStorage) Owns(url string) bool {
	return strings.HasPrefix(url, "/uploads/")
}

type fakeAdmissionStore struct {
	mu    sync.Mutex
	forms map[string]*models.AdmissionForm
	apps  map[string]*models.AdmissionApplication
}

func newFakeAdmissionStore() *fakeAdmissionStore {
	return &fakeAdmissionStore{forms: map[string]*models.AdmissionForm{}, apps: map[string]*models.AdmissionApplication{}}
}

func (s *fakeAdmissionStore) ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AdmissionForm{}
	for _, f := range s.forms {
		if !openOnly || f.IsOpen {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *fakeAdmissionStore) GetForm(ctx context.Context, id string) (*models.AdmissionForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[id]
	if !ok {
		return nil, apperrors.ErrAdmissionFormNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *fakeAdmissionStore) CreateForm(ctx context.Context, f *models.AdmissionForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	cp := *f
	s.forms[f.ID] = &cp
	return nil
}

func (s *fakeAdmissionStore) UpdateForm(ctx context.Context, f *models.AdmissionForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[f.ID]; !ok {
		return apperrors.ErrAdmissionFormNotFound
	}
	cp := *f
	s.forms[f.ID] = &cp
	return nil
}

func (s *fakeAdmissionStore) DeleteForm(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[id]; !ok {
		return apperrors.ErrAdmissionFormNotFound
	}
	delete(s.forms, id)
	return nil
}

func (s *fakeAdmissionStore) CreateApplication(ctx context.Context, a *models.AdmissionApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.FormID == a.FormID && existing.Email == a.Email {
			return apperrors.ErrApplicationAlreadyExist
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	s.apps[a.ID] = &cp
	return nil
}

func (s *fakeAdmissionStore) GetApplication(ctx context.Context, id string) (*models.AdmissionApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAdmissionStore) ListApplications(ctx context.Context, formID string) ([]models.AdmissionApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AdmissionApplication{}
	for _, a := range s.apps {
		if a.FormID == formID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *fakeAdmissionStore) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.AdmissionApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	a.Status = status
	cp := *a
	return &cp, nil
}

func (s *fakeAdmissionStore) SetPayment(ctx context.Context, id string, payment *models.PaymentDetails) (*models.AdmissionApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	a.Payment = payment
	cp := *a
	return &cp, nil
}

type fakeGenerator struct {
	description string
	payment     models.PaymentDetails
	answer      *flows.Answer
	inputs      []flows.AdmissionDescriptionInput
	questions   []flows.QuestionInput
}

func (g *fakeGenerator) GenerateAdmissionDescription(ctx context.Context, in flows.AdmissionDescriptionInput) (flows.AdmissionDescription, error) {
	g.inputs = append(g.inputs, in)
	return flows.AdmissionDescription{Description: g.description}, nil
}

func (g *fakeGenerator) ExtractPaymentDetails(ctx context.Context, in flows.PaymentInput) (models.PaymentDetails, error) {
	return g.payment, nil
}

func (g *fakeGenerator) AnswerQuestion(ctx context.Context, in flows.QuestionInput, viewer models.ViewerRole) (*flows.Answer, error) {
	g.questions = append(g.questions, in)
	if g.answer == nil {
		return &flows.Answer{Answer: flows.NoAnswerReply}, nil
	}
	cp := *g.answer
	return &cp, nil
}

type fakeChatStore struct {
	mu       sync.Mutex
	chats    map[string]*models.Chat
	messages map[string][]models.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: map[string]*models.Chat{}, messages: map[string][]models.ChatMessage{}}
}

func (s *fakeChatStore) CreateChat(ctx context.Context, chat *models.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	cp := *chat
	s.chats[chat.ID] = &cp
	return nil
}

func (s *fakeChatStore) GetChat(ctx context.Context, id, userID string) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	if !ok || c.UserID != userID {
		return nil, apperrors.ErrChatNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeChatStore) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Chat{}
	for _, c := range s.chats {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeChatStore) DeleteChat(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	if !ok || c.UserID != userID {
		return apperrors.ErrChatNotFound
	}
	delete(s.chats, id)
	delete(s.messages, id)
	return nil
}

func (s *fakeChatStore) AppendMessages(ctx context.Context, chatID string, messages ...*models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range messages {
		m.ChatID = chatID
		s.messages[chatID] = append(s.messages[chatID], *m)
	}
	return nil
}

func (s *fakeChatStore) ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages[chatID]), nil
}
