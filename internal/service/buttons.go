package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Rokoth/ROTGBot-sub000/core/logger"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/storage"
	"log/slog"
)

// Buttons manages the routing destination tree: numbering, the one-level
// parent/child invariant, and atomic bulk edits.
type Buttons struct {
	store       storage.Buttons
	groupChatID int64

	now func() time.Time
}

// NewButtons constructs the button service. groupChatID is the default
// destination chat for newly created buttons.
func NewButtons(store storage.Buttons, groupChatID int64) *Buttons {
	return &Buttons{store: store, groupChatID: groupChatID, now: time.Now}
}

// Get loads a button by number.
func (s *Buttons) Get(ctx context.Context, number int) (*models.Button, error) {
	b, err := s.store.Get(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("button get: %w", err)
	}
	return b, nil
}

// Roots lists enabled top-level buttons.
func (s *Buttons) Roots(ctx context.Context) ([]models.Button, error) {
	list, err := s.store.Roots(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("button roots: %w", err)
	}
	return list, nil
}

// Children lists the enabled children of a group button.
func (s *Buttons) Children(ctx context.Context, parent int) ([]models.Button, error) {
	list, err := s.store.Children(ctx, parent, true)
	if err != nil {
		return nil, fmt.Errorf("button children: %w", err)
	}
	return list, nil
}

// All lists every non-deleted button, enabled or not.
func (s *Buttons) All(ctx context.Context) ([]models.Button, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("button list: %w", err)
	}
	return list, nil
}

// AddFromText creates one button from a single protocol line:
// "name[:parent][:t<thread>][:m]" for a leaf, "_:name[:parent][:m]" for a group.
func (s *Buttons) AddFromText(ctx context.Context, text string) (*models.Button, error) {
	line, err := parseAddLine(text)
	if err != nil {
		return nil, err
	}
	return s.add(ctx, line)
}

func (s *Buttons) add(ctx context.Context, line ButtonLine) (*models.Button, error) {
	if line.Name == "" {
		return nil, fmt.Errorf("%w: empty button name", ErrValidation)
	}
	if line.Parent != nil {
		parent, err := s.store.Get(ctx, *line.Parent)
		if err != nil {
			return nil, fmt.Errorf("button parent: %w", err)
		}
		if !parent.IsParent {
			return nil, fmt.Errorf("%w: button %d is not a group", ErrValidation, *line.Parent)
		}
	}

	number, err := s.store.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("button add: %w", err)
	}
	b := &models.Button{
		Number:     number,
		Name:       line.Name,
		ChatID:     s.groupChatID,
		ToSend:     !line.Group,
		IsModerate: line.IsModerate,
		IsParent:   line.Group,
		Parent:     line.Parent,
		CreatedAt:  s.now().UTC(),
	}
	if line.Thread != nil {
		b.ThreadID = *line.Thread
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("button add: %w", err)
	}
	logger.SVCButtons.LogAttrs(ctx, slog.LevelInfo, "button.created",
		slog.String("status", "ok"),
		slog.Int("button_num", b.Number),
		slog.Bool("group", b.IsParent),
	)
	return b, nil
}

// Delete soft-removes a button by number.
func (s *Buttons) Delete(ctx context.Context, number int) error {
	if err := s.store.SoftDelete(ctx, number); err != nil {
		return fmt.Errorf("button delete: %w", err)
	}
	logger.SVCButtons.LogAttrs(ctx, slog.LevelInfo, "button.deleted",
		slog.String("status", "ok"),
		slog.Int("button_num", number),
	)
	return nil
}

// BulkResult summarizes an applied bulk edit.
type BulkResult struct {
	Enabled  int
	Disabled int
	Created  int
}

// BulkEdit parses the text protocol, computes the enable/disable diff against
// the current button set, and commits it atomically. A duplicate number
// aborts the whole batch with zero changes.
func (s *Buttons) BulkEdit(ctx context.Context, input string) (*BulkResult, error) {
	lines, err := ParseButtonLines(input)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no button lines recognized", ErrValidation)
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("bulk edit: %w", err)
	}
	byNumber := make(map[int]*models.Button, len(existing))
	for i := range existing {
		byNumber[existing[i].Number] = &existing[i]
	}

	mentioned := make(map[int]struct{}, len(lines))
	var update []models.Button
	var create []models.Button
	var result BulkResult

	nextNumber, err := s.store.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("bulk edit: %w", err)
	}

	for _, line := range lines {
		if line.Group {
			b := models.Button{
				Number:     nextNumber,
				Name:       line.Name,
				ChatID:     s.groupChatID,
				IsModerate: line.IsModerate,
				IsParent:   true,
				Parent:     line.Parent,
				CreatedAt:  s.now().UTC(),
			}
			if line.Parent != nil && !isGroup(byNumber, *line.Parent) {
				logger.SVCButtons.LogAttrs(ctx, slog.LevelWarn, "button.bulk.bad_parent",
					slog.String("status", "skip"),
					slog.Int("button_num", *line.Parent),
				)
				continue
			}
			nextNumber++
			create = append(create, b)
			result.Created++
			continue
		}

		current, ok := byNumber[line.Number]
		if !ok {
			logger.SVCButtons.LogAttrs(ctx, slog.LevelWarn, "button.bulk.unknown",
				slog.String("status", "skip"),
				slog.Int("button_num", line.Number),
			)
			continue
		}
		if line.Parent != nil && !isGroup(byNumber, *line.Parent) {
			logger.SVCButtons.LogAttrs(ctx, slog.LevelWarn, "button.bulk.bad_parent",
				slog.String("status", "skip"),
				slog.Int("button_num", *line.Parent),
			)
			continue
		}

		mentioned[line.Number] = struct{}{}
		next := *current
		next.ToSend = true
		next.IsModerate = line.IsModerate
		if line.Name != "" {
			next.Name = line.Name
		}
		if line.Parent != nil {
			next.Parent = line.Parent
		}
		if line.Thread != nil {
			next.ThreadID = *line.Thread
		}
		update = append(update, next)
		result.Enabled++
	}

	// One pass over all existing leaves: anything not mentioned is disabled.
	for i := range existing {
		b := existing[i]
		if b.IsParent {
			continue
		}
		if _, ok := mentioned[b.Number]; ok {
			continue
		}
		if !b.ToSend {
			continue
		}
		b.ToSend = false
		update = append(update, b)
		result.Disabled++
	}

	if err := s.store.Apply(ctx, update, create); err != nil {
		return nil, fmt.Errorf("bulk edit apply: %w", err)
	}
	logger.SVCButtons.LogAttrs(ctx, slog.LevelInfo, "button.bulk.applied",
		slog.String("status", "ok"),
		slog.Int("count", len(update)+len(create)),
	)
	return &result, nil
}

func isGroup(byNumber map[int]*models.Button, number int) bool {
	b, ok := byNumber[number]
	return ok && b.IsParent
}

// parseAddLine accepts the single-button creation form, where the first token
// is the new button's name rather than a number.
func parseAddLine(text string) (ButtonLine, error) {
	lines, err := ParseButtonLines(text)
	if err != nil {
		return ButtonLine{}, err
	}
	if len(lines) == 1 && lines[0].Group {
		return lines[0], nil
	}

	// name-first leaf form
	line, ok, err := parseButtonLine("_:" + text)
	if err != nil {
		return ButtonLine{}, err
	}
	if !ok {
		return ButtonLine{}, fmt.Errorf("%w: unrecognized button definition", ErrValidation)
	}
	line.Group = false
	return line, nil
}
