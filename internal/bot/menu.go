package bot

import (
	"strconv"

	"github.com/Rokoth/ROTGBot-sub000/core/telegram/keyboard"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/router"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"

	tele "gopkg.in/telebot.v4"
)

// MainMenu builds the root menu for a user. Rows accumulate with the user's
// roles; separators are inert buttons the router answers without dispatching.
func MainMenu(u *models.User) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{{Text: "📰 Send news", Unique: TagSendNews}},
	}
	if u.Allows(models.RoleModerator) {
		rows = append(rows,
			[]keyboard.InlineBtn{{Text: "· moderation ·", Unique: router.InertTag}},
			[]keyboard.InlineBtn{{Text: "🗞 Pending news", Unique: TagApproveNewsList}},
		)
	}
	if u.Allows(models.RoleAdministrator) {
		rows = append(rows,
			[]keyboard.InlineBtn{{Text: "· administration ·", Unique: router.InertTag}},
			[]keyboard.InlineBtn{
				{Text: "Add administrator", Unique: TagAddAdmin},
				{Text: "Add moderator", Unique: TagAddModerator},
			},
			[]keyboard.InlineBtn{
				{Text: "Add button", Unique: TagAddButton},
				{Text: "Delete button", Unique: TagDeleteButton},
			},
			[]keyboard.InlineBtn{
				{Text: "Edit buttons", Unique: TagEditButton},
				{Text: "Buttons report", Unique: TagButtonsReport},
			},
		)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// DestinationMenu lists destination buttons two per row with a back row.
// Group entries dive one level deeper via the same choice tag.
func DestinationMenu(buttons []models.Button, inGroup bool) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(buttons))
	for _, btn := range buttons {
		label := btn.Name
		if btn.IsParent {
			label = "📁 " + label
		}
		btns = append(btns, keyboard.InlineBtn{
			Text:   label,
			Unique: TagSendNewsChoice,
			Data:   strconv.Itoa(btn.Number),
		})
	}
	rows := keyboard.ChunkInline(btns, 2)
	back := keyboard.InlineBtn{Text: "« Main menu", Unique: TagToMain}
	if inGroup {
		back = keyboard.InlineBtn{Text: "« Back", Unique: TagSendNews}
	}
	rows = append(rows, []keyboard.InlineBtn{back})
	return keyboard.InlineButtonsRows(rows...)
}

// confirmCancelMenu is attached to every draft reminder and fragment ack.
func confirmCancelMenu(multi bool) *tele.ReplyMarkup {
	if !multi {
		return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
			{Text: "❌ Cancel", Unique: TagCancelItem},
		})
	}
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Confirm", Unique: TagConfirmNews},
		{Text: "❌ Cancel", Unique: TagCancelItem},
	})
}

// moderationMenu decorates one pending item with its decision buttons.
func moderationMenu(id string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Approve", Unique: TagApproveNews, Data: id},
		{Text: "⛔️ Decline", Unique: TagDeclineNews, Data: id},
	})
}
