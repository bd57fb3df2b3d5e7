package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

// ErrValidation marks rejected input. Handlers turn it into a user-visible
// message instead of logging it as a fault.
var ErrValidation = errors.New("validation")

// ErrEmptyItem marks an item confirmed or approved with no attached messages.
var ErrEmptyItem = errors.New("item has no messages")

// CooldownError rejects a submission attempted before the cooldown elapsed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("submission cooldown: %d minute(s) left", e.MinutesLeft())
}

// MinutesLeft reports the remaining wait rounded up to whole minutes.
func (e *CooldownError) MinutesLeft() int {
	mins := int((e.Remaining + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

// ActiveItemError rejects starting a workflow while another one is pending.
// The pending item is carried so the caller can replay a kind-specific reminder.
type ActiveItemError struct {
	Item *models.Item
}

func (e *ActiveItemError) Error() string {
	return fmt.Sprintf("pending %s item exists", e.Item.Kind)
}

// DuplicateNumberError aborts a bulk button edit that declares one number twice.
type DuplicateNumberError struct {
	Number int
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("button %d declared more than once", e.Number)
}

// TransitionError rejects an illegal workflow status move.
type TransitionError struct {
	From, To models.ItemStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}
