package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

func TestRenderButtonTree(t *testing.T) {
	two := 2
	buttons := []models.Button{
		{Number: 3, Name: "News", Parent: &two, IsModerate: true, ToSend: true},
		{Number: 1, Name: "Solo", ToSend: true},
		{Number: 2, Name: "Main", IsParent: true},
		{Number: 4, Name: "Dark", Parent: &two},
	}

	out := RenderButtonTree(buttons)
	lines := strings.Split(out, "\n")

	require.Contains(t, lines, "1:Solo")
	require.Contains(t, lines, "_:Main  (group)")
	require.Contains(t, lines, "  3:News:2:m")
	require.Contains(t, lines, "  4:Dark:2  (off)")

	// children render under their parent
	parentIdx := indexOf(lines, "_:Main  (group)")
	require.Greater(t, indexOf(lines, "  3:News:2:m"), parentIdx)
}

func TestRenderButtonTreeEmpty(t *testing.T) {
	require.Equal(t, "No buttons are configured.", RenderButtonTree(nil))
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func TestRenderPreviewTruncatesAndSignsAuthor(t *testing.T) {
	item := &models.Item{CreatedAt: time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)}
	msgs := []models.ItemMessage{
		{Text: strings.Repeat("long ", 100)},
	}
	author := &models.User{Name: "Ann", Login: "ann"}

	out := renderPreview(item, msgs, author)
	require.Contains(t, out, "Ann (@ann)")
	require.Contains(t, out, "04.05.2025 09:30")
	require.Contains(t, out, "…")

	anon := renderPreview(item, msgs, nil)
	require.Contains(t, anon, "unknown")
}
