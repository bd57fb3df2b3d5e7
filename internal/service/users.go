package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
	"log/slog"
)

// Users manages the user lifecycle: create on first contact, refresh on every
// contact, grant roles. Users are never hard-deleted.
type Users struct {
	store storage.Users
}

// NewUsers constructs the user service.
func NewUsers(store storage.Users) *Users {
	return &Users{store: store}
}

// Contact returns the user for a Telegram id, creating the row on first
// contact and refreshing chat id, name and login on every one.
func (s *Users) Contact(ctx context.Context, id, chatID int64, name, login string) (*models.User, error) {
	u, err := s.store.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		u = &models.User{
			ID:        id,
			ChatID:    chatID,
			Name:      name,
			Login:     login,
			Roles:     []string{models.RoleUser},
			Notify:    true,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("contact create: %w", err)
		}
		logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user.created",
			slog.String("status", "ok"),
			slog.Int64("user_id", id),
		)
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("contact get: %w", err)
	}

	if u.ChatID != chatID || u.Name != name || u.Login != login {
		u.ChatID = chatID
		u.Name = name
		u.Login = login
		if err := s.store.Update(ctx, u); err != nil {
			return nil, fmt.Errorf("contact refresh: %w", err)
		}
	}
	return u, nil
}

// Get returns a user by Telegram id.
func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GrantRole adds a role to the user resolved by login.
func (s *Users) GrantRole(ctx context.Context, login, role string) (*models.User, error) {
	login = strings.TrimPrefix(strings.TrimSpace(login), "@")
	if login == "" {
		return nil, fmt.Errorf("%w: empty login", ErrValidation)
	}
	u, err := s.store.GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("grant role: %w", err)
	}
	if u.HasRole(role) {
		return u, nil
	}
	u.Grant(role)
	if err := s.store.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("grant role update: %w", err)
	}
	logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user.role_granted",
		slog.String("status", "ok"),
		slog.Int64("user_id", u.ID),
		slog.String("role", role),
	)
	return u, nil
}

// Notifiable lists users holding the role with notifications enabled.
func (s *Users) Notifiable(ctx context.Context, role string) ([]models.User, error) {
	list, err := s.store.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("notifiable: %w", err)
	}
	out := list[:0]
	for _, u := range list {
		if u.Notify {
			out = append(out, u)
		}
	}
	return out, nil
}

// MarkSent stamps the user's last successful submission time for the cooldown.
func (s *Users) MarkSent(ctx context.Context, u *models.User, at time.Time) error {
	at = at.UTC()
	u.LastSentAt = &at
	if err := s.store.Update(ctx, u); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}
