package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/keyboard"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) handleStart(c tele.Context, req *request) error {
	if req.item != nil {
		return b.replayPending(c, req.item)
	}
	return tghelpers.SendMD(c, msgGreeting, MainMenu(req.user))
}

func (b *Bot) handleToMain(c tele.Context, req *request) error {
	if req.item != nil {
		return b.replayPending(c, req.item)
	}
	return tghelpers.EditOrSendMD(c, msgMainMenu, MainMenu(req.user))
}

func (b *Bot) handleSendNews(c tele.Context, req *request) error {
	if req.item != nil {
		return b.replayPending(c, req.item)
	}
	roots, err := b.buttons.Roots(req.ctx)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		return tghelpers.SendText(c, msgNoDestinations)
	}
	return tghelpers.EditOrSendMD(c, msgChooseDestination, DestinationMenu(roots, false))
}

// handleSendNewsChoice resolves one tree level: a group opens its children,
// a leaf starts the news draft bound to the leaf's chat and thread.
func (b *Bot) handleSendNewsChoice(c tele.Context, req *request) error {
	if req.item != nil {
		return b.replayPending(c, req.item)
	}
	number, err := strconv.Atoi(req.param)
	if err != nil {
		return tghelpers.SendText(c, msgNotImplemented)
	}
	btn, err := b.buttons.Get(req.ctx, number)
	if err != nil {
		return err
	}
	if btn.IsParent {
		children, err := b.buttons.Children(req.ctx, btn.Number)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			return tghelpers.SendText(c, msgUnconfiguredGroup)
		}
		return tghelpers.EditOrSendMD(c, msgChooseDestination, DestinationMenu(children, true))
	}

	_, err = b.items.Begin(req.ctx, req.user, service.BeginOptions{
		Kind:       models.KindSubmitNews,
		ChatID:     btn.ChatID,
		ThreadID:   btn.ThreadID,
		IsModerate: btn.IsModerate,
	})
	if err != nil {
		return b.reportBeginError(c, err)
	}
	return tghelpers.SendMD(c, msgNewsPrompt, confirmCancelMenu(true))
}

func (b *Bot) handleConfirmNews(c tele.Context, req *request) error {
	if req.item == nil || req.item.Kind != models.KindSubmitNews {
		return tghelpers.SendText(c, msgNothingToCancel)
	}
	item := req.item
	if err := b.items.Submit(req.ctx, item); err != nil {
		if errors.Is(err, service.ErrEmptyItem) {
			return tghelpers.SendMD(c, msgEmptyItemSubmitter, MainMenu(req.user))
		}
		return err
	}
	if item.IsModerate {
		b.notifyModerators(req.ctx, c)
		return tghelpers.SendMD(c, msgNewsToModeration, MainMenu(req.user))
	}
	if err := b.items.Approve(req.ctx, item); err != nil {
		if errors.Is(err, service.ErrEmptyItem) {
			return tghelpers.SendText(c, msgEmptyItemSubmitter)
		}
		return err
	}
	if err := b.deliver(req.ctx, c, item); err != nil {
		return err
	}
	return tghelpers.SendMD(c, msgNewsPublished, MainMenu(req.user))
}

func (b *Bot) handleCancelItem(c tele.Context, req *request) error {
	if req.item == nil {
		return tghelpers.SendMD(c, msgNothingToCancel, MainMenu(req.user))
	}
	if err := b.items.Clear(req.ctx, req.item); err != nil {
		return err
	}
	return tghelpers.SendMD(c, msgItemCancelled, MainMenu(req.user))
}

// replayPending re-sends the unfinished item reminder with its controls
// instead of starting anything new.
func (b *Bot) replayPending(c tele.Context, item *models.Item) error {
	return tghelpers.SendMD(c, pendingReminder(item.Kind), confirmCancelMenu(item.Kind.Multi()))
}

func (b *Bot) reportBeginError(c tele.Context, err error) error {
	var cooldown *service.CooldownError
	if errors.As(err, &cooldown) {
		return tghelpers.SendText(c, fmt.Sprintf(
			"Too fast. You can send the next news in %d min.", cooldown.MinutesLeft()))
	}
	var active *service.ActiveItemError
	if errors.As(err, &active) {
		return b.replayPending(c, active.Item)
	}
	return err
}

// deliver publishes an approved item to its destination chat and thread.
func (b *Bot) deliver(ctx context.Context, c tele.Context, item *models.Item) error {
	msgs, err := b.items.Messages(ctx, item)
	if err != nil {
		return err
	}
	text := joinMessages(msgs)
	if text == "" {
		return nil
	}
	opts := &tele.SendOptions{ThreadID: item.ThreadID}
	if _, err := c.Bot().Send(&tele.Chat{ID: item.ChatID}, text, opts); err != nil {
		return fmt.Errorf("deliver item %s: %w", item.ID, err)
	}
	logger.TG.LogAttrs(ctx, slog.LevelInfo, "news.delivered",
		slog.String("status", "ok"),
		slog.String("item_id", item.ID.String()),
		slog.Int64("chat_id", item.ChatID),
	)
	return nil
}

// notifyModerators pings every moderator who keeps notifications on. Failures
// are logged and skipped so one blocked chat does not stall the rest.
func (b *Bot) notifyModerators(ctx context.Context, c tele.Context) {
	mods, err := b.users.Notifiable(ctx, models.RoleModerator)
	if err != nil {
		logger.TG.LogAttrs(ctx, slog.LevelWarn, "news.notify",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "Open pending news", Unique: TagApproveNewsList},
	})
	for _, mod := range mods {
		if _, err := c.Bot().Send(&tele.Chat{ID: mod.ChatID}, msgModeratorNewPending, markup); err != nil {
			logger.TG.LogAttrs(ctx, slog.LevelWarn, "news.notify",
				slog.String("status", "fail"),
				slog.Int64("user_id", mod.ID),
				slog.String("err", err.Error()),
			)
		}
	}
}
