package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"log/slog"
)

// adminSeeder grants the configured Telegram id the full role set so a fresh
// deployment has at least one administrator. The row is upserted and revived
// if it was soft-deleted.
func adminSeeder(adminID int64) func(ctx context.Context, db *sqlx.DB) error {
	return func(ctx context.Context, db *sqlx.DB) error {
		if adminID == 0 {
			return nil
		}
		roles := pq.StringArray{models.RoleUser, models.RoleModerator, models.RoleAdministrator}
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (id, chat_id, name, roles)
			VALUES ($1, $1, 'admin', $2)
			ON CONFLICT (id) DO UPDATE
			SET roles   = $2,
			    deleted = FALSE`,
			adminID, roles)
		if err != nil {
			return fmt.Errorf("seed admin %d: %w", adminID, err)
		}
		logger.SEED.LogAttrs(ctx, slog.LevelInfo, "seed.admin",
			slog.String("status", "ok"),
			slog.Int64("user_id", adminID),
		)
		return nil
	}
}
