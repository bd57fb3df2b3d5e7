package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

func TestMainMenuTiers(t *testing.T) {
	user := &models.User{Roles: []string{models.RoleUser}}
	moderator := &models.User{Roles: []string{models.RoleModerator}}
	admin := &models.User{Roles: []string{models.RoleAdministrator}}

	userRows := MainMenu(user).InlineKeyboard
	require.Len(t, userRows, 1)
	require.Equal(t, "📰 Send news", userRows[0][0].Text)

	modRows := MainMenu(moderator).InlineKeyboard
	require.Len(t, modRows, 3)

	adminRows := MainMenu(admin).InlineKeyboard
	require.Len(t, adminRows, 7)

	// inert separators carry the no-op tag
	require.Equal(t, "-", adminRows[1][0].Unique)
}

func TestDestinationMenuBackRow(t *testing.T) {
	buttons := []models.Button{
		{Number: 1, Name: "Culture", ToSend: true},
		{Number: 2, Name: "Sports", IsParent: true},
		{Number: 3, Name: "Misc", ToSend: true},
	}

	root := DestinationMenu(buttons, false).InlineKeyboard
	// three destinations two per row, plus the back row
	require.Len(t, root, 3)
	require.Equal(t, "Culture", root[0][0].Text)
	require.Equal(t, "📁 Sports", root[0][1].Text)
	require.Equal(t, "« Main menu", root[2][0].Text)

	nested := DestinationMenu(buttons[:1], true).InlineKeyboard
	require.Equal(t, "« Back", nested[1][0].Text)
}

func TestConfirmCancelMenu(t *testing.T) {
	multi := confirmCancelMenu(true).InlineKeyboard
	require.Len(t, multi[0], 2)

	single := confirmCancelMenu(false).InlineKeyboard
	require.Len(t, single[0], 1)
	require.Equal(t, TagCancelItem, single[0][0].Unique)
}
