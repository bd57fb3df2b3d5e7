package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// Role names the minimum role required to invoke the command; empty means open.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Role        string
	Hidden      bool
	Aliases     []string
}
