package bot

import (
	"fmt"

	"github.com/Rokoth/ROTGBot-sub000/core/telegram/commands"
	tghelpers "github.com/Rokoth/ROTGBot-sub000/core/telegram/helpers"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"

	tele "gopkg.in/telebot.v4"
)

// Callback tags. Parametrized ones travel either as telebot payload or as a
// legacy "<tag>_<param>" suffix, both decoded by the router.
const (
	TagSendNews          = "SendNews"
	TagSendNewsChoice    = "SendNewsChoice"
	TagConfirmNews       = "ConfirmNews"
	TagCancelItem        = "CancelItem"
	TagApproveNewsList   = "ApproveNewsList"
	TagApproveNewsChoice = "ApproveNewsChoice"
	TagApproveNews       = "ApproveNews"
	TagDeclineNews       = "DeclineNews"
	TagAddAdmin          = "AddAdmin"
	TagAddModerator      = "AddModerator"
	TagAddButton         = "AddButton"
	TagDeleteButton      = "DeleteButton"
	TagEditButton        = "EditButton"
	TagButtonsReport     = "ButtonsReport"
	TagToMain            = "ToMain"
)

var paramTags = []string{
	TagSendNewsChoice,
	TagApproveNewsChoice,
	TagApproveNews,
	TagDeclineNews,
}

// register fills the registry: every callback carries the minimal role that
// may press it, the router gates the rest.
func (b *Bot) register() {
	b.reg.RegisterCommand("/start", commands.Command{
		Handler:     b.wrap(b.handleStart),
		Description: "Open the main menu",
		Aliases:     []string{"/menu"},
	})
	b.reg.RegisterCommand("/buttons", commands.Command{
		Handler:     b.wrap(b.handleButtonsReport),
		Description: "Show the destination button tree",
		Role:        models.RoleAdministrator,
		Hidden:      true,
	})

	type entry struct {
		tag     string
		role    string
		handler handlerFunc
	}
	for _, e := range []entry{
		{TagToMain, models.RoleUser, b.handleToMain},
		{TagSendNews, models.RoleUser, b.handleSendNews},
		{TagSendNewsChoice, models.RoleUser, b.handleSendNewsChoice},
		{TagConfirmNews, models.RoleUser, b.handleConfirmNews},
		{TagCancelItem, models.RoleUser, b.handleCancelItem},
		{TagApproveNewsList, models.RoleModerator, b.handleApproveNewsList},
		{TagApproveNewsChoice, models.RoleModerator, b.handleApproveNewsChoice},
		{TagApproveNews, models.RoleModerator, b.handleApproveNews},
		{TagDeclineNews, models.RoleModerator, b.handleDeclineNews},
		{TagAddAdmin, models.RoleAdministrator, b.handleAddAdmin},
		{TagAddModerator, models.RoleAdministrator, b.handleAddModerator},
		{TagAddButton, models.RoleAdministrator, b.handleAddButton},
		{TagDeleteButton, models.RoleAdministrator, b.handleDeleteButton},
		{TagEditButton, models.RoleAdministrator, b.handleEditButton},
		{TagButtonsReport, models.RoleAdministrator, b.handleButtonsReport},
	} {
		if err := b.reg.RegisterCallback(e.tag, e.role, b.wrap(e.handler)); err != nil {
			panic(fmt.Sprintf("callback registration %s: %v", e.tag, err))
		}
	}

	b.reg.SetCallbackNotFound(func(c tele.Context) error {
		return tghelpers.SendText(c, msgNotImplemented)
	})
	b.reg.SetTextFallback(b.wrap(b.handleFreeText))
}
