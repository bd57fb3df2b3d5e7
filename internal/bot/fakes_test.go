package bot

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// testCtx is a minimal tele.Context for handler tests. Only the methods the
// handlers actually touch are implemented; anything else panics through the
// embedded nil interface.
type testCtx struct {
	tele.Context
	sender *tele.User
	chat   *tele.Chat
	store  map[string]interface{}
	sent   []string
}

func newTestCtx(sender *tele.User, chat *tele.Chat) *testCtx {
	return &testCtx{
		sender: sender,
		chat:   chat,
		store:  make(map[string]interface{}),
	}
}

func (c *testCtx) Sender() *tele.User { return c.sender }

func (c *testCtx) Chat() *tele.Chat { return c.chat }

func (c *testCtx) Update() tele.Update { return tele.Update{ID: 1} }

func (c *testCtx) Get(key string) interface{} { return c.store[key] }

func (c *testCtx) Set(key string, v interface{}) { c.store[key] = v }

func (c *testCtx) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func (c *testCtx) EditOrSend(what interface{}, opts ...interface{}) error {
	return c.Send(what, opts...)
}

func (c *testCtx) lastSent(t *testing.T) string {
	t.Helper()
	if len(c.sent) == 0 {
		t.Fatal("nothing was sent")
	}
	return c.sent[len(c.sent)-1]
}

type stubUsers struct {
	byID map[int64]*models.User
}

func (m *stubUsers) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok || u.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *stubUsers) GetByLogin(_ context.Context, login string) (*models.User, error) {
	for _, u := range m.byID {
		if !u.Deleted && strings.EqualFold(u.Login, login) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *stubUsers) ListByRole(_ context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.byID {
		if !u.Deleted && u.HasRole(role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *stubUsers) Create(_ context.Context, u *models.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *stubUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

type stubItems struct {
	byID     map[uuid.UUID]*models.Item
	messages map[uuid.UUID][]models.ItemMessage
	ordinal  int64
}

func (m *stubItems) Get(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := m.byID[id]
	if !ok || item.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *stubItems) ActiveByUser(_ context.Context, userID int64) (*models.Item, error) {
	var found *models.Item
	for _, item := range m.byID {
		if item.Deleted || item.UserID != userID || !item.Status.Active() {
			continue
		}
		if found == nil || item.Ordinal > found.Ordinal {
			found = item
		}
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *stubItems) ListByStatus(_ context.Context, status models.ItemStatus, limit, offset int) ([]models.Item, error) {
	var all []models.Item
	for _, item := range m.byID {
		if !item.Deleted && item.Status == status {
			all = append(all, *item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Ordinal < all[j].Ordinal })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *stubItems) CountByStatus(_ context.Context, status models.ItemStatus) (int, error) {
	n := 0
	for _, item := range m.byID {
		if !item.Deleted && item.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *stubItems) Create(_ context.Context, item *models.Item) error {
	m.ordinal++
	item.Ordinal = m.ordinal
	cp := *item
	m.byID[item.ID] = &cp
	return nil
}

func (m *stubItems) Update(_ context.Context, item *models.Item) error {
	if _, ok := m.byID[item.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *item
	m.byID[item.ID] = &cp
	return nil
}

func (m *stubItems) SoftDelete(_ context.Context, id uuid.UUID) error {
	item, ok := m.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	item.Deleted = true
	item.Status = models.StatusDeleted
	return nil
}

func (m *stubItems) Messages(_ context.Context, itemID uuid.UUID) ([]models.ItemMessage, error) {
	return append([]models.ItemMessage(nil), m.messages[itemID]...), nil
}

func (m *stubItems) AppendMessage(_ context.Context, msg *models.ItemMessage) error {
	msg.ID = int64(len(m.messages[msg.ItemID]) + 1)
	m.messages[msg.ItemID] = append(m.messages[msg.ItemID], *msg)
	return nil
}

type stubButtons struct {
	byNumber map[int]*models.Button
}

func (m *stubButtons) List(_ context.Context) ([]models.Button, error) {
	var out []models.Button
	for _, b := range m.byNumber {
		if !b.Deleted {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *stubButtons) Get(_ context.Context, number int) (*models.Button, error) {
	b, ok := m.byNumber[number]
	if !ok || b.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *stubButtons) Roots(ctx context.Context, enabledOnly bool) ([]models.Button, error) {
	all, _ := m.List(ctx)
	var out []models.Button
	for _, b := range all {
		if b.Parent != nil {
			continue
		}
		if enabledOnly && !b.ToSend && !b.IsParent {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *stubButtons) Children(ctx context.Context, parent int, enabledOnly bool) ([]models.Button, error) {
	all, _ := m.List(ctx)
	var out []models.Button
	for _, b := range all {
		if b.Parent == nil || *b.Parent != parent {
			continue
		}
		if enabledOnly && !b.ToSend && !b.IsParent {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *stubButtons) NextNumber(_ context.Context) (int, error) {
	max := 0
	for n := range m.byNumber {
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

func (m *stubButtons) Create(_ context.Context, b *models.Button) error {
	cp := *b
	m.byNumber[b.Number] = &cp
	return nil
}

func (m *stubButtons) Update(_ context.Context, b *models.Button) error {
	if _, ok := m.byNumber[b.Number]; !ok {
		return storage.ErrNotFound
	}
	cp := *b
	m.byNumber[b.Number] = &cp
	return nil
}

func (m *stubButtons) SoftDelete(_ context.Context, number int) error {
	b, ok := m.byNumber[number]
	if !ok || b.Deleted {
		return storage.ErrNotFound
	}
	b.Deleted = true
	b.ToSend = false
	return nil
}

func (m *stubButtons) Apply(_ context.Context, update []models.Button, create []models.Button) error {
	for _, b := range update {
		cp := b
		m.byNumber[b.Number] = &cp
	}
	for _, b := range create {
		cp := b
		m.byNumber[b.Number] = &cp
	}
	return nil
}

type botFixture struct {
	bot     *Bot
	users   *stubUsers
	items   *stubItems
	buttons *stubButtons
}

func newBotFixture(t *testing.T) *botFixture {
	t.Helper()
	users := &stubUsers{byID: make(map[int64]*models.User)}
	items := &stubItems{
		byID:     make(map[uuid.UUID]*models.Item),
		messages: make(map[uuid.UUID][]models.ItemMessage),
	}
	buttons := &stubButtons{byNumber: make(map[int]*models.Button)}

	usersSvc := service.NewUsers(users)
	itemsSvc := service.NewItems(items, usersSvc, 10*time.Minute, 5)
	buttonsSvc := service.NewButtons(buttons, -100500)
	return &botFixture{
		bot:     New(usersSvc, itemsSvc, buttonsSvc),
		users:   users,
		items:   items,
		buttons: buttons,
	}
}

func (f *botFixture) addUser(id int64, roles ...string) *models.User {
	u := &models.User{ID: id, ChatID: id, Name: "tester", Login: "tester", Roles: roles}
	cp := *u
	f.users.byID[id] = &cp
	return u
}

func (f *botFixture) ctxFor(id int64) *testCtx {
	return newTestCtx(
		&tele.User{ID: id, FirstName: "tester", Username: "tester"},
		&tele.Chat{ID: id, Type: tele.ChatPrivate},
	)
}
