package models

import "time"

// Button is a named, numbered routing destination. Group buttons (IsParent)
// hold children one level deep; only leaf buttons terminate a selection into a
// workflow. Numbers are unique and assigned monotonically.
type Button struct {
	Number     int       `db:"number"`
	Name       string    `db:"name"`
	ChatID     int64     `db:"chat_id"`
	ThreadID   int       `db:"thread_id"`
	ToSend     bool      `db:"to_send"`
	IsModerate bool      `db:"is_moderate"`
	IsParent   bool      `db:"is_parent"`
	Parent     *int      `db:"parent"`
	CreatedAt  time.Time `db:"created_at"`
	Deleted    bool      `db:"deleted"`
}
