package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

type buttonRepo struct {
	db *sqlx.DB
}

const buttonColumns = "number, name, chat_id, thread_id, to_send, is_moderate, is_parent, parent, created_at, deleted"

func (r *buttonRepo) List(ctx context.Context) ([]models.Button, error) {
	var list []models.Button
	err := r.db.SelectContext(ctx, &list,
		"SELECT "+buttonColumns+" FROM buttons WHERE NOT deleted ORDER BY number")
	if err != nil {
		return nil, fmt.Errorf("buttons list: %w", err)
	}
	return list, nil
}

func (r *buttonRepo) Get(ctx context.Context, number int) (*models.Button, error) {
	var b models.Button
	err := r.db.GetContext(ctx, &b,
		"SELECT "+buttonColumns+" FROM buttons WHERE number = $1 AND NOT deleted", number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("buttons get: %w", err)
	}
	return &b, nil
}

func (r *buttonRepo) Roots(ctx context.Context, enabledOnly bool) ([]models.Button, error) {
	q := "SELECT " + buttonColumns + " FROM buttons WHERE parent IS NULL AND NOT deleted"
	if enabledOnly {
		q += " AND (to_send OR is_parent)"
	}
	var list []models.Button
	if err := r.db.SelectContext(ctx, &list, q+" ORDER BY number"); err != nil {
		return nil, fmt.Errorf("buttons roots: %w", err)
	}
	return list, nil
}

func (r *buttonRepo) Children(ctx context.Context, parent int, enabledOnly bool) ([]models.Button, error) {
	q := "SELECT " + buttonColumns + " FROM buttons WHERE parent = $1 AND NOT deleted"
	if enabledOnly {
		q += " AND to_send"
	}
	var list []models.Button
	if err := r.db.SelectContext(ctx, &list, q+" ORDER BY number", parent); err != nil {
		return nil, fmt.Errorf("buttons children: %w", err)
	}
	return list, nil
}

// NextNumber assigns numbers monotonically, never reusing those of
// soft-deleted buttons.
func (r *buttonRepo) NextNumber(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT coalesce(max(number), 0) + 1 FROM buttons")
	if err != nil {
		return 0, fmt.Errorf("buttons next number: %w", err)
	}
	return n, nil
}

func (r *buttonRepo) Create(ctx context.Context, b *models.Button) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO buttons (number, name, chat_id, thread_id, to_send, is_moderate, is_parent, parent, created_at, deleted)
		VALUES (:number, :name, :chat_id, :thread_id, :to_send, :is_moderate, :is_parent, :parent, :created_at, :deleted)`, b)
	if err != nil {
		return fmt.Errorf("buttons create: %w", err)
	}
	return nil
}

func (r *buttonRepo) Update(ctx context.Context, b *models.Button) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE buttons
		SET name = :name, chat_id = :chat_id, thread_id = :thread_id, to_send = :to_send,
		    is_moderate = :is_moderate, is_parent = :is_parent, parent = :parent, deleted = :deleted
		WHERE number = :number`, b)
	if err != nil {
		return fmt.Errorf("buttons update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *buttonRepo) SoftDelete(ctx context.Context, number int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE buttons SET deleted = true, to_send = false WHERE number = $1 AND NOT deleted", number)
	if err != nil {
		return fmt.Errorf("buttons soft delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Apply commits a bulk edit atomically: every update and insert happens inside
// one transaction or not at all.
func (r *buttonRepo) Apply(ctx context.Context, update []models.Button, create []models.Button) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("buttons apply begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range update {
		res, err := tx.NamedExecContext(ctx, `
			UPDATE buttons
			SET name = :name, thread_id = :thread_id, to_send = :to_send,
			    is_moderate = :is_moderate, is_parent = :is_parent, parent = :parent
			WHERE number = :number AND NOT deleted`, &update[i])
		if err != nil {
			return fmt.Errorf("buttons apply update %d: %w", update[i].Number, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("buttons apply update %d: %w", update[i].Number, ErrNotFound)
		}
	}
	for i := range create {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO buttons (number, name, chat_id, thread_id, to_send, is_moderate, is_parent, parent, created_at, deleted)
			VALUES (:number, :name, :chat_id, :thread_id, :to_send, :is_moderate, :is_parent, :parent, :created_at, :deleted)`, &create[i])
		if err != nil {
			return fmt.Errorf("buttons apply create %d: %w", create[i].Number, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("buttons apply commit: %w", err)
	}
	return nil
}
