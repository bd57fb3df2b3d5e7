package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

type itemRepo struct {
	db *sqlx.DB
}

const itemColumns = "id, user_id, chat_id, thread_id, kind, status, ordinal, is_multi, is_moderate, created_at, deleted"

func (r *itemRepo) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item,
		"SELECT "+itemColumns+" FROM items WHERE id = $1 AND NOT deleted", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("items get: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) ActiveByUser(ctx context.Context, userID int64) (*models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item,
		"SELECT "+itemColumns+` FROM items
		 WHERE user_id = $1 AND status IN ($2, $3) AND NOT deleted
		 ORDER BY ordinal DESC LIMIT 1`,
		userID, models.StatusDraft, models.StatusAwaitingMulti)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("items active by user: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) ListByStatus(ctx context.Context, status models.ItemStatus, limit, offset int) ([]models.Item, error) {
	var list []models.Item
	err := r.db.SelectContext(ctx, &list,
		"SELECT "+itemColumns+` FROM items
		 WHERE status = $1 AND NOT deleted
		 ORDER BY ordinal ASC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("items list by status: %w", err)
	}
	return list, nil
}

func (r *itemRepo) CountByStatus(ctx context.Context, status models.ItemStatus) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		"SELECT count(*) FROM items WHERE status = $1 AND NOT deleted", status)
	if err != nil {
		return 0, fmt.Errorf("items count by status: %w", err)
	}
	return n, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	err := r.db.GetContext(ctx, &item.Ordinal, `
		INSERT INTO items (id, user_id, chat_id, thread_id, kind, status, is_multi, is_moderate, created_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ordinal`,
		item.ID, item.UserID, item.ChatID, item.ThreadID, item.Kind, item.Status,
		item.IsMulti, item.IsModerate, item.CreatedAt, item.Deleted)
	if err != nil {
		return fmt.Errorf("items create: %w", err)
	}
	return nil
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE items
		SET chat_id = :chat_id, thread_id = :thread_id, status = :status,
		    is_multi = :is_multi, is_moderate = :is_moderate, deleted = :deleted
		WHERE id = :id`, item)
	if err != nil {
		return fmt.Errorf("items update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE items SET deleted = true, status = $2 WHERE id = $1", id, models.StatusDeleted)
	if err != nil {
		return fmt.Errorf("items soft delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepo) Messages(ctx context.Context, itemID uuid.UUID) ([]models.ItemMessage, error) {
	var list []models.ItemMessage
	err := r.db.SelectContext(ctx, &list,
		`SELECT id, item_id, ordinal, text, created_at FROM item_messages
		 WHERE item_id = $1 ORDER BY ordinal ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("item messages: %w", err)
	}
	return list, nil
}

func (r *itemRepo) AppendMessage(ctx context.Context, m *models.ItemMessage) error {
	err := r.db.GetContext(ctx, &m.ID, `
		INSERT INTO item_messages (item_id, ordinal, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		m.ItemID, m.Ordinal, m.Text, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("item messages append: %w", err)
	}
	return nil
}
