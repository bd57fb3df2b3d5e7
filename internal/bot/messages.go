package bot

import "github.com/Rokoth/ROTGBot-sub000/internal/models"

const (
	msgGreeting       = "Hi! I deliver news to the group and keep them moderated. Choose an action:"
	msgMainMenu       = "Choose an action:"
	msgNoRights       = "You don't have rights for this action."
	msgNotImplemented = "This action is not implemented yet."

	msgChooseDestination   = "Where should the news go?"
	msgNoDestinations      = "No destinations are configured yet."
	msgUnconfiguredGroup   = "This group has no configured destinations yet."
	msgNewsPrompt          = "Send the news text. You can send several messages, then press Confirm."
	msgNewsFragmentAdded   = "Added. Send more text or press Confirm."
	msgNewsToModeration    = "The news went to moderation. You will be notified about the decision."
	msgNewsPublished       = "The news has been published."
	msgItemCancelled       = "The pending action has been cancelled."
	msgNothingToCancel     = "You have no pending action."
	msgEmptyItemSubmitter  = "Your news item was created incorrectly (no text) and has been removed."
	msgEmptyItemModerator  = "The news item was created incorrectly (no text) and has been removed."
	msgAlreadyHandled      = "This news item has already been handled."
	msgNewsApproved        = "Your news has been approved and published."
	msgNewsDeclined        = "Your news has been declined by a moderator."
	msgModeratorNewPending = "A new news item is waiting for moderation."
	msgNoPendingNews       = "No news is waiting for moderation."

	msgAdminLoginPrompt     = "Send the login of the user to make an administrator."
	msgModeratorLoginPrompt = "Send the login of the user to make a moderator."
	msgAddButtonPrompt      = "Send the button definition: name[:parent][:t<thread>][:m], or _:name[:parent] for a group."
	msgDeleteButtonPrompt   = "Send the number of the button to delete."
	msgEditButtonsPrompt    = "Send the button list, one per line (or separated by ';'):\nnumber[:name[:parent][:m]] enables a button, _:name[:parent] adds a group.\nButtons you do not mention will be disabled."
	msgUserNotFound         = "User with this login is not known to the bot yet."
	msgBadButtonNumber      = "Send a plain button number."
)

// pendingReminders replays the "finish or cancel it first" notice keyed off
// the kind of the user's unfinished item.
var pendingReminders = map[models.ItemKind]string{
	models.KindSubmitNews:   "You have an unfinished news submission. Send its text, confirm or cancel it first.",
	models.KindAddAdmin:     "You are in the middle of adding an administrator. Send the login or cancel first.",
	models.KindAddModerator: "You are in the middle of adding a moderator. Send the login or cancel first.",
	models.KindAddButton:    "You are in the middle of adding a button. Send its definition or cancel first.",
	models.KindDeleteButton: "You are in the middle of deleting a button. Send its number or cancel first.",
	models.KindEditButtons:  "You are in the middle of a bulk button edit. Send the list or cancel first.",
}

func pendingReminder(kind models.ItemKind) string {
	if msg, ok := pendingReminders[kind]; ok {
		return msg
	}
	return "You have an unfinished action. Complete or cancel it first."
}
