package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// InProgress reports whether the user has an unfinished item, which routes
// their next plain message into the workflow instead of the fallback.
func (b *Bot) InProgress(userID int64) bool {
	item, err := b.items.Active(context.Background(), userID)
	if err != nil {
		logger.TG.LogAttrs(context.Background(), slog.LevelWarn, "workflow.lookup",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}
	return item != nil
}

// ManagerHandler feeds a plain message into the user's unfinished item.
func (b *Bot) ManagerHandler(c tele.Context) error {
	return b.wrap(b.handleWorkflowText)(c)
}

// handleWorkflowText appends the message to the active item, then either
// waits for more input (news) or runs the kind's terminal action.
func (b *Bot) handleWorkflowText(c tele.Context, req *request) error {
	item := req.item
	if item == nil {
		return b.handleFreeText(c, req)
	}
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendMD(c, pendingReminder(item.Kind), confirmCancelMenu(item.Kind.Multi()))
	}
	if err := b.items.AppendText(req.ctx, item, text); err != nil {
		return err
	}
	if item.Kind.Multi() {
		return tghelpers.SendMD(c, msgNewsFragmentAdded, confirmCancelMenu(true))
	}

	done, reply, err := b.runTerminal(c, req, item, text)
	if err != nil {
		return err
	}
	if !done {
		// Bad input keeps the item active so the admin can retype or cancel.
		return tghelpers.SendMD(c, reply, confirmCancelMenu(false))
	}
	if err := b.items.Clear(req.ctx, item); err != nil {
		return err
	}
	return tghelpers.SendMD(c, reply, MainMenu(req.user))
}

// runTerminal executes a single-message kind. It returns done=false with a
// user-facing message when the input was rejected and the item should stay.
func (b *Bot) runTerminal(c tele.Context, req *request, item *models.Item, text string) (bool, string, error) {
	switch item.Kind {
	case models.KindAddAdmin, models.KindAddModerator:
		role := models.RoleAdministrator
		if item.Kind == models.KindAddModerator {
			role = models.RoleModerator
		}
		target, err := b.users.GrantRole(req.ctx, text, role)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return false, msgUserNotFound, nil
		case errors.Is(err, service.ErrValidation):
			return false, "Send a plain login, like @someone.", nil
		case err != nil:
			return false, "", err
		}
		b.notifyAuthor(c, target, fmt.Sprintf("You are now a %s.", role))
		return true, fmt.Sprintf("Done: @%s is now a %s.", target.Login, role), nil

	case models.KindAddButton:
		btn, err := b.buttons.AddFromText(req.ctx, text)
		switch {
		case errors.Is(err, service.ErrValidation):
			return false, "Could not parse the definition: " + err.Error(), nil
		case errors.Is(err, storage.ErrNotFound):
			return false, "The parent button does not exist.", nil
		case err != nil:
			return false, "", err
		}
		return true, fmt.Sprintf("Created button %d: %s", btn.Number, service.EncodeButtonLine(*btn)), nil

	case models.KindDeleteButton:
		number, convErr := strconv.Atoi(strings.TrimSpace(text))
		if convErr != nil {
			return false, msgBadButtonNumber, nil
		}
		if err := b.buttons.Delete(req.ctx, number); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return false, fmt.Sprintf("Button %d does not exist.", number), nil
			}
			return false, "", err
		}
		return true, fmt.Sprintf("Button %d deleted.", number), nil

	case models.KindEditButtons:
		res, err := b.buttons.BulkEdit(req.ctx, text)
		var dup *service.DuplicateNumberError
		switch {
		case errors.As(err, &dup):
			return false, fmt.Sprintf("Number %d appears twice, nothing was changed.", dup.Number), nil
		case errors.Is(err, service.ErrValidation):
			return false, "Could not parse the list: " + err.Error(), nil
		case err != nil:
			return false, "", err
		}
		return true, fmt.Sprintf("Buttons updated: %d enabled, %d disabled, %d created.",
			res.Enabled, res.Disabled, res.Created), nil
	}
	return false, "", fmt.Errorf("no terminal action for kind %q", item.Kind)
}

// handleFreeText greets users who write outside any workflow. Only private
// non-topic messages get an answer, group chatter is left alone.
func (b *Bot) handleFreeText(c tele.Context, req *request) error {
	chat := c.Chat()
	if chat == nil || chat.Type != tele.ChatPrivate {
		return nil
	}
	if msg := c.Message(); msg != nil && msg.ThreadID != 0 {
		return nil
	}
	return tghelpers.SendMD(c, msgGreeting, MainMenu(req.user))
}
