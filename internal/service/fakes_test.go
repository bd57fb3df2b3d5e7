package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
)

type memUsers struct {
	byID map[int64]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*models.User)}
}

func (m *memUsers) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok || u.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByLogin(_ context.Context, login string) (*models.User, error) {
	for _, u := range m.byID {
		if !u.Deleted && strings.EqualFold(u.Login, login) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) ListByRole(_ context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.byID {
		if !u.Deleted && u.HasRole(role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

type memItems struct {
	byID     map[uuid.UUID]*models.Item
	messages map[uuid.UUID][]models.ItemMessage
	ordinal  int64
}

func newMemItems() *memItems {
	return &memItems{
		byID:     make(map[uuid.UUID]*models.Item),
		messages: make(map[uuid.UUID][]models.ItemMessage),
	}
}

func (m *memItems) Get(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := m.byID[id]
	if !ok || item.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *memItems) ActiveByUser(_ context.Context, userID int64) (*models.Item, error) {
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

func (m *memItems) ListByStatus(_ context.Context, status models.ItemStatus, limit, offset int) ([]models.Item, error) {
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

func (m *memItems) CountByStatus(_ context.Context, status models.ItemStatus) (int, error) {
	n := 0
	for _, item := range m.byID {
		if !item.Deleted && item.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memItems) Create(_ context.Context, item *models.Item) error {
	m.ordinal++
	item.Ordinal = m.ordinal
	cp := *item
	m.byID[item.ID] = &cp
	return nil
}

func (m *memItems) Update(_ context.Context, item *models.Item) error {
	if _, ok := m.byID[item.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *item
	m.byID[item.ID] = &cp
	return nil
}

func (m *memItems) SoftDelete(_ context.Context, id uuid.UUID) error {
	item, ok := m.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	item.Deleted = true
	item.Status = models.StatusDeleted
	return nil
}

func (m *memItems) Messages(_ context.Context, itemID uuid.UUID) ([]models.ItemMessage, error) {
	return append([]models.ItemMessage(nil), m.messages[itemID]...), nil
}

func (m *memItems) AppendMessage(_ context.Context, msg *models.ItemMessage) error {
	msg.ID = int64(len(m.messages[msg.ItemID]) + 1)
	m.messages[msg.ItemID] = append(m.messages[msg.ItemID], *msg)
	return nil
}

type memButtons struct {
	byNumber map[int]*models.Button
	applied  int
	failNext error
}

func newMemButtons() *memButtons {
	return &memButtons{byNumber: make(map[int]*models.Button)}
}

func (m *memButtons) List(_ context.Context) ([]models.Button, error) {
	var out []models.Button
	for _, b := range m.byNumber {
		if !b.Deleted {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *memButtons) Get(_ context.Context, number int) (*models.Button, error) {
	b, ok := m.byNumber[number]
	if !ok || b.Deleted {
		return nil, storage.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memButtons) Roots(_ context.Context, enabledOnly bool) ([]models.Button, error) {
	all, _ := m.List(context.Background())
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

func (m *memButtons) Children(_ context.Context, parent int, enabledOnly bool) ([]models.Button, error) {
	all, _ := m.List(context.Background())
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

func (m *memButtons) NextNumber(_ context.Context) (int, error) {
	max := 0
	for n := range m.byNumber {
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

func (m *memButtons) Create(_ context.Context, b *models.Button) error {
	cp := *b
	m.byNumber[b.Number] = &cp
	return nil
}

func (m *memButtons) Update(_ context.Context, b *models.Button) error {
	if _, ok := m.byNumber[b.Number]; !ok {
		return storage.ErrNotFound
	}
	cp := *b
	m.byNumber[b.Number] = &cp
	return nil
}

func (m *memButtons) SoftDelete(_ context.Context, number int) error {
	b, ok := m.byNumber[number]
	if !ok || b.Deleted {
		return storage.ErrNotFound
	}
	b.Deleted = true
	b.ToSend = false
	return nil
}

func (m *memButtons) Apply(_ context.Context, update []models.Button, create []models.Button) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, b := range update {
		cp := b
		m.byNumber[b.Number] = &cp
	}
	for _, b := range create {
		cp := b
		m.byNumber[b.Number] = &cp
	}
	m.applied++
	return nil
}
