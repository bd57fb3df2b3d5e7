package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

// ErrNotFound is returned when an entity fetched by id or filter is absent.
var ErrNotFound = errors.New("storage: not found")

// Users persists Telegram users. Soft-deleted rows are excluded everywhere.
type Users interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

// Items persists workflow items and their append-only message buffers.
type Items interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)
	// ActiveByUser returns the user's single in-flight item, or ErrNotFound.
	ActiveByUser(ctx context.Context, userID int64) (*models.Item, error)
	ListByStatus(ctx context.Context, status models.ItemStatus, limit, offset int) ([]models.Item, error)
	CountByStatus(ctx context.Context, status models.ItemStatus) (int, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Messages(ctx context.Context, itemID uuid.UUID) ([]models.ItemMessage, error)
	AppendMessage(ctx context.Context, m *models.ItemMessage) error
}

// Buttons persists routing destinations.
type Buttons interface {
	List(ctx context.Context) ([]models.Button, error)
	Get(ctx context.Context, number int) (*models.Button, error)
	Roots(ctx context.Context, enabledOnly bool) ([]models.Button, error)
	Children(ctx context.Context, parent int, enabledOnly bool) ([]models.Button, error)
	NextNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, b *models.Button) error
	Update(ctx context.Context, b *models.Button) error
	SoftDelete(ctx context.Context, number int) error
	// Apply commits a bulk edit in one transaction: no partial apply.
	Apply(ctx context.Context, update []models.Button, create []models.Button) error
}

// Store bundles the repositories over one connection pool.
type Store struct {
	Users   Users
	Items   Items
	Buttons Buttons
}

// New wires the Postgres repositories.
func New(db *sqlx.DB) *Store {
	return &Store{
		Users:   &userRepo{db: db},
		Items:   &itemRepo{db: db},
		Buttons: &buttonRepo{db: db},
	}
}
