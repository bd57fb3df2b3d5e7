package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rokoth/ROTGBot-sub000/core/telegram/format"
	"github.com/Rokoth/ROTGBot-sub000/internal/models"
	"github.com/Rokoth/ROTGBot-sub000/internal/service"
)

// RenderButtonTree renders the destination tree for administrators. Each line
// uses the same protocol the bulk editor accepts, so the report can be fixed
// up and sent straight back.
func RenderButtonTree(buttons []models.Button) string {
	if len(buttons) == 0 {
		return "No buttons are configured."
	}

	children := make(map[int][]models.Button)
	var roots []models.Button
	for _, b := range buttons {
		if b.Parent != nil {
			children[*b.Parent] = append(children[*b.Parent], b)
			continue
		}
		roots = append(roots, b)
	}
	byNumber := func(list []models.Button) {
		sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	}
	byNumber(roots)
	for _, list := range children {
		byNumber(list)
	}

	var sb strings.Builder
	sb.WriteString("Destination buttons:\n```\n")
	var walk func(list []models.Button, depth int)
	walk = func(list []models.Button, depth int) {
		for _, b := range list {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(service.EncodeButtonLine(b))
			if b.IsParent {
				sb.WriteString("  (group)")
			} else if !b.ToSend {
				sb.WriteString("  (off)")
			}
			sb.WriteByte('\n')
			walk(children[b.Number], depth+1)
		}
	}
	walk(roots, 0)
	sb.WriteString("```")
	return sb.String()
}

// renderPreview trims a pending item down to a short moderation card.
func renderPreview(item *models.Item, msgs []models.ItemMessage, author *models.User) string {
	text := joinMessages(msgs)
	const limit = 300
	if runes := []rune(text); len(runes) > limit {
		text = string(runes[:limit]) + "…"
	}
	name := "unknown"
	if author != nil {
		name = author.Name
		if author.Login != "" {
			name = fmt.Sprintf("%s (@%s)", name, author.Login)
		}
	}
	escaped, err := format.EscapeMarkdown(text, format.MarkdownV1, "")
	if err != nil {
		escaped = text
	}
	return fmt.Sprintf("From %s, %s:\n\n%s",
		name, item.CreatedAt.Format("02.01.2006 15:04"), escaped)
}

func joinMessages(msgs []models.ItemMessage) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n\n")
}
