package bot

import (
	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) handleAddAdmin(c tele.Context, req *request) error {
	return b.beginPrompted(c, req, models.KindAddAdmin, msgAdminLoginPrompt)
}

func (b *Bot) handleAddModerator(c tele.Context, req *request) error {
	return b.beginPrompted(c, req, models.KindAddModerator, msgModeratorLoginPrompt)
}

func (b *Bot) handleAddButton(c tele.Context, req *request) error {
	return b.beginPrompted(c, req, models.KindAddButton, msgAddButtonPrompt)
}

func (b *Bot) handleDeleteButton(c tele.Context, req *request) error {
	return b.beginPrompted(c, req, models.KindDeleteButton, msgDeleteButtonPrompt)
}

func (b *Bot) handleEditButton(c tele.Context, req *request) error {
	return b.beginPrompted(c, req, models.KindEditButtons, msgEditButtonsPrompt)
}

// beginPrompted starts a single-message item and asks for its one input.
func (b *Bot) beginPrompted(c tele.Context, req *request, kind models.ItemKind, prompt string) error {
	if req.item != nil {
		return b.replayPending(c, req.item)
	}
	if _, err := b.items.Begin(req.ctx, req.user, service.BeginOptions{Kind: kind}); err != nil {
		return b.reportBeginError(c, err)
	}
	return tghelpers.SendMD(c, prompt, confirmCancelMenu(false))
}

func (b *Bot) handleButtonsReport(c tele.Context, req *request) error {
	buttons, err := b.buttons.All(req.ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendMD(c, RenderButtonTree(buttons), MainMenu(req.user))
}
