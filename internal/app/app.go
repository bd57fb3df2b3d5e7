// Package app assembles the bot: config, database, migrations, seeding,
// services and the Telegram runtime options.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rokoth/ROTGBot-sub000/core/bootstrap"
	coretelegram "github.com/Rokoth/ROTGBot-sub000/core/telegram"
	"github.com/Rokoth/ROTGBot-sub000/internal/bot"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
)

// App carries the bootstrapped application.
type App struct {
	cfg *Config
	db  *sqlx.DB
	bot *bot.Bot
}

// Bootstrap initializes logging, the database, migrations and services.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seeders:  []bootstrap.Seeder{bootstrap.SeederFunc(adminSeeder(cfg.Telegram.AdminID))},
	})
	if err != nil {
		return nil, err
	}

	store := storage.New(res.DB)
	users := service.NewUsers(store.Users)
	items := service.NewItems(store.Items, users,
		time.Duration(cfg.Workflow.CooldownMinutes)*time.Minute,
		cfg.Workflow.ModerationPageSize)
	buttons := service.NewButtons(store.Buttons, cfg.Workflow.GroupChatID)

	return &App{
		cfg: cfg,
		db:  res.DB,
		bot: bot.New(users, items, buttons),
	}, nil
}

// TelegramRunOptions builds the runtime wiring for the shared runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.bot == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: bot is not initialized")
	}
	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.bot.Registry(),
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      a.bot.Routes(),
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
