package bot

import (
	"errors"
	"fmt"
	"strconv"

	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/keyboard"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
	"github.com/google/uuid"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) handleApproveNewsList(c tele.Context, req *request) error {
	return b.sendPendingPage(c, req, 0)
}

func (b *Bot) handleApproveNewsChoice(c tele.Context, req *request) error {
	page, err := strconv.Atoi(req.param)
	if err != nil || page < 0 {
		page = 0
	}
	return b.sendPendingPage(c, req, page)
}

// sendPendingPage sends one moderation card per pending item, then a footer
// with paging and the way back.
func (b *Bot) sendPendingPage(c tele.Context, req *request, page int) error {
	items, total, err := b.items.Pending(req.ctx, page)
	if err != nil {
		return err
	}
	if total == 0 {
		return tghelpers.SendMD(c, msgNoPendingNews, MainMenu(req.user))
	}
	// a stale paging callback may point past the end, fall back to the last page
	if len(items) == 0 {
		page = (total - 1) / b.items.PageSize()
		if items, total, err = b.items.Pending(req.ctx, page); err != nil {
			return err
		}
	}

	for i := range items {
		item := &items[i]
		msgs, err := b.items.Messages(req.ctx, item)
		if err != nil {
			return err
		}
		author, err := b.users.Get(req.ctx, item.UserID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := tghelpers.SendMD(c, renderPreview(item, msgs, author), moderationMenu(item.ID.String())); err != nil {
			return err
		}
	}

	footer := [][]keyboard.InlineBtn{}
	if (page+1)*b.items.PageSize() < total {
		footer = append(footer, []keyboard.InlineBtn{{
			Text:   "More ▸",
			Unique: TagApproveNewsChoice,
			Data:   strconv.Itoa(page + 1),
		}})
	}
	footer = append(footer, []keyboard.InlineBtn{{Text: "« Main menu", Unique: TagToMain}})
	return tghelpers.SendMD(c,
		fmt.Sprintf("Pending: %d, shown %d-%d.", total, page*b.items.PageSize()+1, page*b.items.PageSize()+len(items)),
		keyboard.InlineButtonsRows(footer...))
}

func (b *Bot) handleApproveNews(c tele.Context, req *request) error {
	return b.decide(c, req, true)
}

func (b *Bot) handleDeclineNews(c tele.Context, req *request) error {
	return b.decide(c, req, false)
}

// decide applies a moderator verdict to the item named by the callback param
// and notifies the submitter of the outcome.
func (b *Bot) decide(c tele.Context, req *request, approve bool) error {
	id, err := uuid.Parse(req.param)
	if err != nil {
		return tghelpers.SendText(c, msgAlreadyHandled)
	}
	item, err := b.items.Get(req.ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, msgAlreadyHandled)
		}
		return err
	}
	if item.Status != models.StatusSubmitted {
		return tghelpers.SendText(c, msgAlreadyHandled)
	}
	author, err := b.users.Get(req.ctx, item.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if !approve {
		if err := b.items.Decline(req.ctx, item); err != nil {
			var bad *service.TransitionError
			if errors.As(err, &bad) {
				return tghelpers.SendText(c, msgAlreadyHandled)
			}
			return err
		}
		b.notifyAuthor(c, author, msgNewsDeclined)
		return tghelpers.SendText(c, "Declined.")
	}

	if err := b.items.Approve(req.ctx, item); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyItem):
			b.notifyAuthor(c, author, msgEmptyItemSubmitter)
			return tghelpers.SendText(c, msgEmptyItemModerator)
		default:
			var bad *service.TransitionError
			if errors.As(err, &bad) {
				return tghelpers.SendText(c, msgAlreadyHandled)
			}
			return err
		}
	}
	if err := b.deliver(req.ctx, c, item); err != nil {
		return err
	}
	b.notifyAuthor(c, author, msgNewsApproved)
	return tghelpers.SendText(c, "Approved and published.")
}

func (b *Bot) notifyAuthor(c tele.Context, author *models.User, text string) {
	if author == nil || author.ChatID == 0 {
		return
	}
	_, _ = c.Bot().Send(&tele.Chat{ID: author.ChatID}, text)
}
