// Package bot wires the conversation surface: role-gated commands and
// callbacks routed through the shared registry, plus the text workflow that
// drives unfinished items to their terminal action.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	tg "github.com/Rokoth/ROTGBot-sub000/core/telegram"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/callbacks"
	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/middleware"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/router"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const actorKey = "actor"

// Bot holds the services the handlers operate on and owns the registry.
type Bot struct {
	users   *service.Users
	items   *service.Items
	buttons *service.Buttons
	reg     *tg.Registry
}

// New builds the bot and registers every command and callback.
func New(users *service.Users, items *service.Items, buttons *service.Buttons) *Bot {
	b := &Bot{
		users:   users,
		items:   items,
		buttons: buttons,
		reg:     tg.NewRegistry(),
	}
	b.register()
	return b
}

// Registry exposes the populated registry for wiring.
func (b *Bot) Registry() *tg.Registry {
	return b.reg
}

// Routes assembles the full route set: commands, the callback router and the
// text workflow.
func (b *Bot) Routes() []tg.Route {
	g := &gate{bot: b}
	routes := router.CommandRoutes(b.reg, router.CommandRouteOptions{
		Gate: middleware.GateOptions{
			Checker: g,
			OnReject: func(c tele.Context) error {
				return tghelpers.SendText(c, msgNoRights)
			},
		},
	})
	routes = append(routes, router.CallbackRoute(b.reg, router.CallbackOptions{
		Gate:          g,
		ParamPrefixes: paramTags,
	}))
	routes = append(routes, router.TextRoutes(b, b.reg, router.TextOptions{})...)
	return routes
}

// actor resolves the acting user, creating or refreshing the row on first
// touch and caching it on the telebot context for the rest of the update.
func (b *Bot) actor(c tele.Context) (*models.User, error) {
	if u, ok := c.Get(actorKey).(*models.User); ok && u != nil {
		return u, nil
	}
	sender := c.Sender()
	if sender == nil {
		return nil, fmt.Errorf("update without sender")
	}
	chatID := sender.ID
	if chat := c.Chat(); chat != nil && chat.Type == tele.ChatPrivate {
		chatID = chat.ID
	}
	name := strings.TrimSpace(strings.TrimSpace(sender.FirstName) + " " + strings.TrimSpace(sender.LastName))
	ctx := tghelpers.BuildContext(c)
	u, err := b.users.Contact(ctx, sender.ID, chatID, name, sender.Username)
	if err != nil {
		return nil, err
	}
	c.Set(actorKey, u)
	return u, nil
}

// request carries per-update state every handler needs.
type request struct {
	ctx   context.Context
	user  *models.User
	item  *models.Item
	param string
}

type handlerFunc func(c tele.Context, req *request) error

// wrap resolves the actor and their active item before the handler runs.
func (b *Bot) wrap(fn handlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		user, err := b.actor(c)
		if err != nil {
			return fmt.Errorf("resolve actor: %w", err)
		}
		ctx := tghelpers.BuildContext(c)
		item, err := b.items.Active(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("load active item: %w", err)
		}
		return fn(c, &request{ctx: ctx, user: user, item: item, param: callbacks.Param(c)})
	}
}

// gate implements both the callback router gate and the command middleware
// role checker on top of the user service.
type gate struct {
	bot *Bot
}

func (g *gate) HasRole(c tele.Context, role string) bool {
	u, err := g.bot.actor(c)
	if err != nil {
		logger.TG.LogAttrs(tghelpers.BuildContext(c), slog.LevelWarn, "gate.actor",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return false
	}
	return u.Allows(role)
}

func (g *gate) Allow(c tele.Context, role string) bool {
	if g.HasRole(c, role) {
		return true
	}
	_ = tghelpers.SendText(c, msgNoRights)
	return false
}
