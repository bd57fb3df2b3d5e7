package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
	"log/slog"
)

// Items drives workflow items through their lifecycle while holding two
// invariants: at most one active item per user, and the submission cooldown.
type Items struct {
	store    storage.Items
	users    *Users
	cooldown time.Duration
	pageSize int

	now func() time.Time
}

// NewItems constructs the item service.
func NewItems(store storage.Items, users *Users, cooldown time.Duration, pageSize int) *Items {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Items{
		store:    store,
		users:    users,
		cooldown: cooldown,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Active returns the user's in-flight item, or nil when the slot is free.
func (s *Items) Active(ctx context.Context, userID int64) (*models.Item, error) {
	item, err := s.store.ActiveByUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active: %w", err)
	}
	return item, nil
}

// BeginOptions describe the workflow being started.
type BeginOptions struct {
	Kind       models.ItemKind
	ChatID     int64
	ThreadID   int
	IsModerate bool
}

// Begin opens a new workflow item for the user. It refuses when another item
// occupies the active slot, and applies the submission cooldown to news.
func (s *Items) Begin(ctx context.Context, user *models.User, opts BeginOptions) (*models.Item, error) {
	existing, err := s.Active(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ActiveItemError{Item: existing}
	}

	if opts.Kind == models.KindSubmitNews && s.cooldown > 0 && user.LastSentAt != nil {
		elapsed := s.now().Sub(*user.LastSentAt)
		if elapsed < s.cooldown {
			return nil, &CooldownError{Remaining: s.cooldown - elapsed}
		}
	}

	item := &models.Item{
		ID:         uuid.New(),
		UserID:     user.ID,
		ChatID:     opts.ChatID,
		ThreadID:   opts.ThreadID,
		Kind:       opts.Kind,
		Status:     models.StatusDraft,
		IsMulti:    opts.Kind.Multi(),
		IsModerate: opts.IsModerate,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	if opts.Kind == models.KindSubmitNews {
		if err := s.users.MarkSent(ctx, user, s.now()); err != nil {
			return nil, err
		}
	}

	logger.SVCItems.LogAttrs(ctx, slog.LevelInfo, "item.created",
		slog.String("status", "ok"),
		slog.String("item_id", item.ID.String()),
		slog.String("item_kind", string(item.Kind)),
		slog.Int64("user_id", user.ID),
	)
	return item, nil
}

// AppendText attaches one raw message to the item's buffer. Multi-message
// items move to the awaiting state on the first fragment.
func (s *Items) AppendText(ctx context.Context, item *models.Item, text string) error {
	msgs, err := s.store.Messages(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}
	m := &models.ItemMessage{
		ItemID:    item.ID,
		Ordinal:   len(msgs) + 1,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, m); err != nil {
		return fmt.Errorf("append: %w", err)
	}

	if item.IsMulti && item.Status == models.StatusDraft {
		return s.transition(ctx, item, models.StatusAwaitingMulti)
	}
	return nil
}

// Messages returns the item's buffered fragments in order.
func (s *Items) Messages(ctx context.Context, item *models.Item) ([]models.ItemMessage, error) {
	msgs, err := s.store.Messages(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	return msgs, nil
}

// Submit closes the collection phase. Items with an empty buffer are cleared
// and reported as ErrEmptyItem.
func (s *Items) Submit(ctx context.Context, item *models.Item) error {
	msgs, err := s.store.Messages(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if len(msgs) == 0 {
		if err := s.Clear(ctx, item); err != nil {
			return err
		}
		return ErrEmptyItem
	}
	return s.transition(ctx, item, models.StatusSubmitted)
}

// Get loads an item by id.
func (s *Items) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return item, nil
}

// Approve accepts a submitted item. An item with no buffered messages is
// auto-cleared and reported as ErrEmptyItem so both sides get notified.
func (s *Items) Approve(ctx context.Context, item *models.Item) error {
	msgs, err := s.store.Messages(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("approve: %w", err)
	}
	if len(msgs) == 0 {
		if err := s.Clear(ctx, item); err != nil {
			return err
		}
		return ErrEmptyItem
	}
	if err := s.transition(ctx, item, models.StatusApproved); err != nil {
		return err
	}
	return s.Clear(ctx, item)
}

// Decline rejects a submitted item and clears it.
func (s *Items) Decline(ctx context.Context, item *models.Item) error {
	if err := s.transition(ctx, item, models.StatusDeclined); err != nil {
		return err
	}
	return s.Clear(ctx, item)
}

// Clear soft-deletes the item, freeing the user's active slot.
func (s *Items) Clear(ctx context.Context, item *models.Item) error {
	if err := s.store.SoftDelete(ctx, item.ID); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	item.Deleted = true
	item.Status = models.StatusDeleted
	logger.SVCItems.LogAttrs(ctx, slog.LevelInfo, "item.cleared",
		slog.String("status", "ok"),
		slog.String("item_id", item.ID.String()),
		slog.String("item_kind", string(item.Kind)),
	)
	return nil
}

// Pending returns one page of submitted items plus the total pending count.
func (s *Items) Pending(ctx context.Context, page int) ([]models.Item, int, error) {
	if page < 0 {
		page = 0
	}
	total, err := s.store.CountByStatus(ctx, models.StatusSubmitted)
	if err != nil {
		return nil, 0, fmt.Errorf("pending: %w", err)
	}
	list, err := s.store.ListByStatus(ctx, models.StatusSubmitted, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("pending: %w", err)
	}
	return list, total, nil
}

// PageSize reports the moderation page size.
func (s *Items) PageSize() int {
	return s.pageSize
}

func (s *Items) transition(ctx context.Context, item *models.Item, next models.ItemStatus) error {
	if !item.Status.CanTransition(next) {
		return &TransitionError{From: item.Status, To: next}
	}
	prev := item.Status
	item.Status = next
	if err := s.store.Update(ctx, item); err != nil {
		item.Status = prev
		return fmt.Errorf("transition: %w", err)
	}
	logger.SVCItems.LogAttrs(ctx, slog.LevelDebug, "item.transition",
		slog.String("status", "ok"),
		slog.String("item_id", item.ID.String()),
		slog.String("item_status", string(next)),
	)
	return nil
}
