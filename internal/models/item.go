package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind tags the multi-step task a workflow item drives.
type ItemKind string

const (
	KindSubmitNews   ItemKind = "news"
	KindAddAdmin     ItemKind = "addadmin"
	KindAddModerator ItemKind = "addmoderator"
	KindAddButton    ItemKind = "addbutton"
	KindDeleteButton ItemKind = "deletebutton"
	KindEditButtons  ItemKind = "editbutton"
)

// Multi reports whether the kind collects several messages before an explicit
// confirmation. All other kinds run their terminal action on the first message.
func (k ItemKind) Multi() bool {
	return k == KindSubmitNews
}

// ItemStatus is the workflow state of an item.
type ItemStatus string

const (
	StatusDraft         ItemStatus = "draft"
	StatusAwaitingMulti ItemStatus = "awaiting_multi"
	StatusSubmitted     ItemStatus = "submitted"
	StatusApproved      ItemStatus = "approved"
	StatusDeclined      ItemStatus = "declined"
	StatusDeleted       ItemStatus = "deleted"
)

// transitions is the closed set of legal status moves.
var transitions = map[ItemStatus][]ItemStatus{
	StatusDraft:         {StatusAwaitingMulti, StatusSubmitted, StatusDeleted},
	StatusAwaitingMulti: {StatusSubmitted, StatusDeleted},
	StatusSubmitted:     {StatusApproved, StatusDeclined, StatusDeleted},
	StatusApproved:      {StatusDeleted},
	StatusDeclined:      {StatusDeleted},
}

// CanTransition reports whether moving from s to next is legal.
func (s ItemStatus) CanTransition(next ItemStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the status marks the user's one in-flight
// conversation slot.
func (s ItemStatus) Active() bool {
	return s == StatusDraft || s == StatusAwaitingMulti
}

// Item is one pending multi-step task owned by a user. At most one non-deleted
// item per user may be in an active status at a time.
type Item struct {
	ID         uuid.UUID  `db:"id"`
	UserID     int64      `db:"user_id"`
	ChatID     int64      `db:"chat_id"`
	ThreadID   int        `db:"thread_id"`
	Kind       ItemKind   `db:"kind"`
	Status     ItemStatus `db:"status"`
	Ordinal    int64      `db:"ordinal"`
	IsMulti    bool       `db:"is_multi"`
	IsModerate bool       `db:"is_moderate"`
	CreatedAt  time.Time  `db:"created_at"`
	Deleted    bool       `db:"deleted"`
}

// ItemMessage is one raw text fragment attached to an item. Rows are
// append-only and never mutated.
type ItemMessage struct {
	ID        int64     `db:"id"`
	ItemID    uuid.UUID `db:"item_id"`
	Ordinal   int       `db:"ordinal"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}
