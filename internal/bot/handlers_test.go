package bot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/core/telegram/callbacks"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

func TestRegisterRejectsDuplicateTags(t *testing.T) {
	f := newBotFixture(t)
	// the table is already registered once by New
	require.Panics(t, func() { f.bot.register() })
}

func TestGateDeniesWithoutRole(t *testing.T) {
	f := newBotFixture(t)
	f.addUser(7, models.RoleUser)
	g := &gate{bot: f.bot}

	c := f.ctxFor(7)
	require.False(t, g.Allow(c, models.RoleModerator))
	require.Equal(t, msgNoRights, c.lastSent(t))
	require.Empty(t, f.items.byID)

	f.addUser(8, models.RoleModerator)
	mod := f.ctxFor(8)
	require.True(t, g.Allow(mod, models.RoleModerator))
	require.Empty(t, mod.sent)
}

func TestSendNewsChoiceUnconfiguredGroup(t *testing.T) {
	f := newBotFixture(t)
	f.addUser(7, models.RoleUser)
	parent := 1
	f.buttons.byNumber[1] = &models.Button{Number: 1, Name: "Main", IsParent: true}
	f.buttons.byNumber[2] = &models.Button{Number: 2, Name: "Dark", Parent: &parent, ChatID: -42}

	c := f.ctxFor(7)
	callbacks.SetParam(c, "1")
	require.NoError(t, f.bot.wrap(f.bot.handleSendNewsChoice)(c))
	require.Equal(t, msgUnconfiguredGroup, c.lastSent(t))
	require.Empty(t, f.items.byID)
}

func TestPendingPageClampsPastEnd(t *testing.T) {
	f := newBotFixture(t)
	f.addUser(5, models.RoleModerator)
	for i := 0; i < 3; i++ {
		id := uuid.New()
		f.items.ordinal++
		f.items.byID[id] = &models.Item{
			ID:      id,
			UserID:  7,
			Kind:    models.KindSubmitNews,
			Status:  models.StatusSubmitted,
			Ordinal: f.items.ordinal,
		}
	}

	c := f.ctxFor(5)
	callbacks.SetParam(c, "7")
	require.NoError(t, f.bot.wrap(f.bot.handleApproveNewsChoice)(c))
	require.Equal(t, "Pending: 3, shown 1-3.", c.lastSent(t))
}

func TestSendNewsChoiceLeafOpensDraft(t *testing.T) {
	f := newBotFixture(t)
	f.addUser(7, models.RoleUser)
	f.buttons.byNumber[3] = &models.Button{
		Number: 3, Name: "News", ChatID: -42, ThreadID: 9, ToSend: true, IsModerate: true,
	}

	c := f.ctxFor(7)
	callbacks.SetParam(c, "3")
	require.NoError(t, f.bot.wrap(f.bot.handleSendNewsChoice)(c))
	require.Equal(t, msgNewsPrompt, c.lastSent(t))

	item, err := f.bot.items.Active(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, int64(-42), item.ChatID)
	require.Equal(t, 9, item.ThreadID)
	require.True(t, item.IsModerate)
}
