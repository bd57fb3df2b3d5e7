package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

type userRepo struct {
	db *sqlx.DB
}

const userColumns = "id, chat_id, name, login, roles, notify, last_sent_at, created_at, deleted"

func (r *userRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE id = $1 AND NOT deleted", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users get: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE lower(login) = lower($1) AND NOT deleted", login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users get by login: %w", err)
	}
	return &u, nil
}

func (r *userRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var list []models.User
	err := r.db.SelectContext(ctx, &list,
		"SELECT "+userColumns+" FROM users WHERE $1 = ANY(roles) AND NOT deleted ORDER BY id", role)
	if err != nil {
		return nil, fmt.Errorf("users list by role: %w", err)
	}
	return list, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, chat_id, name, login, roles, notify, last_sent_at, created_at, deleted)
		VALUES (:id, :chat_id, :name, :login, :roles, :notify, :last_sent_at, :created_at, :deleted)`, u)
	if err != nil {
		return fmt.Errorf("users create: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE users
		SET chat_id = :chat_id, name = :name, login = :login, roles = :roles,
		    notify = :notify, last_sent_at = :last_sent_at, deleted = :deleted
		WHERE id = :id`, u)
	if err != nil {
		return fmt.Errorf("users update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
