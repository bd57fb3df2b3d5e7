package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

func intPtr(v int) *int { return &v }

func TestParseButtonLines(t *testing.T) {
	lines, err := ParseButtonLines("1\n2:Culture\n3:News:2:m; 4:Misc:t55\n_:Sports:m\ngarbage line\n5:bad:x")
	require.NoError(t, err)
	require.Len(t, lines, 5)

	require.Equal(t, ButtonLine{Number: 1}, lines[0])
	require.Equal(t, ButtonLine{Number: 2, Name: "Culture"}, lines[1])
	require.Equal(t, ButtonLine{Number: 3, Name: "News", Parent: intPtr(2), IsModerate: true}, lines[2])
	require.Equal(t, ButtonLine{Number: 4, Name: "Misc", Thread: intPtr(55)}, lines[3])
	require.Equal(t, ButtonLine{Group: true, Name: "Sports", IsModerate: true}, lines[4])
}

func TestParseButtonLinesDuplicateAborts(t *testing.T) {
	_, err := ParseButtonLines("1:One\n2:Two\n1:Again")
	var dup *DuplicateNumberError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, 1, dup.Number)
}

func TestParseButtonLinesEmptyGroupTitle(t *testing.T) {
	_, err := ParseButtonLines("_:")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseButtonLines("_")
	require.ErrorIs(t, err, ErrValidation)
}

func TestParseButtonLinesWhitespaceAndEmpty(t *testing.T) {
	lines, err := ParseButtonLines("  \n ; \n  7 : Padded : 2 \n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, ButtonLine{Number: 7, Name: "Padded", Parent: intPtr(2)}, lines[0])
}

func TestEncodeButtonLineRoundTrip(t *testing.T) {
	b := models.Button{Number: 3, Name: "News", Parent: intPtr(2), IsModerate: true}
	encoded := EncodeButtonLine(b)
	require.Equal(t, "3:News:2:m", encoded)

	lines, err := ParseButtonLines(encoded)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, b.Number, lines[0].Number)
	require.Equal(t, b.Name, lines[0].Name)
	require.Equal(t, *b.Parent, *lines[0].Parent)
	require.True(t, lines[0].IsModerate)
}

func TestEncodeGroupLine(t *testing.T) {
	g := models.Button{Number: 9, Name: "Sports", IsParent: true}
	require.Equal(t, "_:Sports", EncodeButtonLine(g))
}
