package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

func newItemsFixture(t *testing.T) (*Items, *memItems, *memUsers, *models.User) {
	t.Helper()
	users := newMemUsers()
	items := newMemItems()
	u := &models.User{ID: 7, ChatID: 7, Login: "author", Roles: []string{models.RoleUser}}
	require.NoError(t, users.Create(context.Background(), u))
	svc := NewItems(items, NewUsers(users), 10*time.Minute, 2)
	return svc, items, users, u
}

func TestBeginRefusesSecondActiveItem(t *testing.T) {
	svc, _, _, u := newItemsFixture(t)
	ctx := context.Background()

	first, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindAddButton})
	require.NoError(t, err)

	_, err = svc.Begin(ctx, u, BeginOptions{Kind: models.KindAddAdmin})
	var active *ActiveItemError
	require.ErrorAs(t, err, &active)
	require.Equal(t, first.ID, active.Item.ID)
	require.Equal(t, models.KindAddButton, active.Item.Kind)

	require.NoError(t, svc.Clear(ctx, first))
	_, err = svc.Begin(ctx, u, BeginOptions{Kind: models.KindAddAdmin})
	require.NoError(t, err)
}

func TestBeginNewsCooldown(t *testing.T) {
	svc, _, users, u := newItemsFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	item, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindSubmitNews, ChatID: -100})
	require.NoError(t, err)
	require.NotNil(t, u.LastSentAt)
	require.NoError(t, svc.Clear(ctx, item))

	// three minutes later the slot is free but the cooldown still holds
	svc.now = func() time.Time { return base.Add(3 * time.Minute) }
	stored, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	_, err = svc.Begin(ctx, stored, BeginOptions{Kind: models.KindSubmitNews})
	var cool *CooldownError
	require.ErrorAs(t, err, &cool)
	require.Equal(t, 7, cool.MinutesLeft())

	// other kinds ignore the cooldown
	other, err := svc.Begin(ctx, stored, BeginOptions{Kind: models.KindDeleteButton})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, other))

	// thirty seconds short of the window still counts as a full minute
	svc.now = func() time.Time { return base.Add(9*time.Minute + 30*time.Second) }
	_, err = svc.Begin(ctx, stored, BeginOptions{Kind: models.KindSubmitNews})
	require.ErrorAs(t, err, &cool)
	require.Equal(t, 1, cool.MinutesLeft())

	// exactly ten minutes later the window has passed
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, err = svc.Begin(ctx, stored, BeginOptions{Kind: models.KindSubmitNews})
	require.NoError(t, err)
}

func TestAppendMovesMultiToAwaiting(t *testing.T) {
	svc, store, _, u := newItemsFixture(t)
	ctx := context.Background()

	item, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindSubmitNews})
	require.NoError(t, err)
	require.Equal(t, models.StatusDraft, item.Status)

	require.NoError(t, svc.AppendText(ctx, item, "part one"))
	require.Equal(t, models.StatusAwaitingMulti, item.Status)
	require.NoError(t, svc.AppendText(ctx, item, "part two"))
	require.Equal(t, models.StatusAwaitingMulti, item.Status)

	msgs, err := store.Messages(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, 1, msgs[0].Ordinal)
	require.Equal(t, 2, msgs[1].Ordinal)
}

func TestSubmitEmptyClearsItem(t *testing.T) {
	svc, _, _, u := newItemsFixture(t)
	ctx := context.Background()

	item, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindSubmitNews})
	require.NoError(t, err)

	err = svc.Submit(ctx, item)
	require.ErrorIs(t, err, ErrEmptyItem)

	// the slot is free again
	active, err := svc.Active(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, active)
}

func TestApproveLifecycle(t *testing.T) {
	svc, _, _, u := newItemsFixture(t)
	ctx := context.Background()

	item, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindSubmitNews, IsModerate: true})
	require.NoError(t, err)
	require.NoError(t, svc.AppendText(ctx, item, "hello"))
	require.NoError(t, svc.Submit(ctx, item))
	require.Equal(t, models.StatusSubmitted, item.Status)

	require.NoError(t, svc.Approve(ctx, item))
	require.True(t, item.Deleted)

	// a second verdict on the same item is rejected
	err = svc.Decline(ctx, item)
	var bad *TransitionError
	require.ErrorAs(t, err, &bad)
}

func TestDeclineClearsItem(t *testing.T) {
	svc, _, _, u := newItemsFixture(t)
	ctx := context.Background()

	item, err := svc.Begin(ctx, u, BeginOptions{Kind: models.KindSubmitNews, IsModerate: true})
	require.NoError(t, err)
	require.NoError(t, svc.AppendText(ctx, item, "nope"))
	require.NoError(t, svc.Submit(ctx, item))
	require.NoError(t, svc.Decline(ctx, item))

	active, err := svc.Active(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, active)
}

func TestPendingPaging(t *testing.T) {
	svc, _, users, _ := newItemsFixture(t)
	ctx := context.Background()

	for i := int64(0); i < 3; i++ {
		author := &models.User{ID: 100 + i, ChatID: 100 + i, Roles: []string{models.RoleUser}}
		require.NoError(t, users.Create(ctx, author))
		item, err := svc.Begin(ctx, author, BeginOptions{Kind: models.KindSubmitNews, IsModerate: true})
		require.NoError(t, err)
		require.NoError(t, svc.AppendText(ctx, item, "text"))
		require.NoError(t, svc.Submit(ctx, item))
	}

	page0, total, err := svc.Pending(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page0, 2)

	page1, total, err := svc.Pending(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page1, 1)
	require.Greater(t, page1[0].Ordinal, page0[1].Ordinal)
}
