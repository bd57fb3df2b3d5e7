package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

const testGroupChat = int64(-100500)

func newButtonsFixture() (*Buttons, *memButtons) {
	store := newMemButtons()
	return NewButtons(store, testGroupChat), store
}

func TestAddFromTextLeafAndGroup(t *testing.T) {
	svc, _ := newButtonsFixture()
	ctx := context.Background()

	group, err := svc.AddFromText(ctx, "_:Sports")
	require.NoError(t, err)
	require.Equal(t, 1, group.Number)
	require.True(t, group.IsParent)
	require.False(t, group.ToSend)
	require.Equal(t, testGroupChat, group.ChatID)

	leaf, err := svc.AddFromText(ctx, "Football:1:m")
	require.NoError(t, err)
	require.Equal(t, 2, leaf.Number)
	require.False(t, leaf.IsParent)
	require.True(t, leaf.ToSend)
	require.True(t, leaf.IsModerate)
	require.NotNil(t, leaf.Parent)
	require.Equal(t, 1, *leaf.Parent)

	threaded, err := svc.AddFromText(ctx, "Announcements:t42")
	require.NoError(t, err)
	require.Equal(t, 3, threaded.Number)
	require.Equal(t, 42, threaded.ThreadID)
}

func TestAddFromTextRejectsLeafParent(t *testing.T) {
	svc, _ := newButtonsFixture()
	ctx := context.Background()

	leaf, err := svc.AddFromText(ctx, "Solo")
	require.NoError(t, err)

	_, err = svc.AddFromText(ctx, "Child:1")
	require.ErrorIs(t, err, ErrValidation)
	_ = leaf
}

func TestNumbersStayMonotonicAfterDelete(t *testing.T) {
	svc, _ := newButtonsFixture()
	ctx := context.Background()

	first, err := svc.AddFromText(ctx, "One")
	require.NoError(t, err)
	second, err := svc.AddFromText(ctx, "Two")
	require.NoError(t, err)
	require.Equal(t, first.Number+1, second.Number)

	require.NoError(t, svc.Delete(ctx, second.Number))

	third, err := svc.AddFromText(ctx, "Three")
	require.NoError(t, err)
	require.Equal(t, second.Number+1, third.Number)
}

func TestBulkEditEnableDisableCreate(t *testing.T) {
	svc, store := newButtonsFixture()
	ctx := context.Background()

	group, err := svc.AddFromText(ctx, "_:Main")
	require.NoError(t, err)
	a, err := svc.AddFromText(ctx, "Alpha:1")
	require.NoError(t, err)
	bBtn, err := svc.AddFromText(ctx, "Beta:1")
	require.NoError(t, err)

	res, err := svc.BulkEdit(ctx, "2:Alpha:1:m\n_:Extra")
	require.NoError(t, err)
	require.Equal(t, 1, res.Enabled)
	require.Equal(t, 1, res.Disabled)
	require.Equal(t, 1, res.Created)

	alpha, err := svc.Get(ctx, a.Number)
	require.NoError(t, err)
	require.True(t, alpha.ToSend)
	require.True(t, alpha.IsModerate)

	beta, err := svc.Get(ctx, bBtn.Number)
	require.NoError(t, err)
	require.False(t, beta.ToSend)

	extra, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	require.True(t, extra.IsParent)
	require.Equal(t, "Extra", extra.Name)

	_ = group
	require.Equal(t, 1, store.applied)
}

func TestBulkEditBareNumberKeepsName(t *testing.T) {
	svc, _ := newButtonsFixture()
	ctx := context.Background()

	btn, err := svc.AddFromText(ctx, "Culture")
	require.NoError(t, err)

	_, err = svc.BulkEdit(ctx, "1")
	require.NoError(t, err)

	kept, err := svc.Get(ctx, btn.Number)
	require.NoError(t, err)
	require.Equal(t, "Culture", kept.Name)
	require.True(t, kept.ToSend)
}

func TestBulkEditDuplicateAbortsWithoutChanges(t *testing.T) {
	svc, store := newButtonsFixture()
	ctx := context.Background()

	btn, err := svc.AddFromText(ctx, "Only")
	require.NoError(t, err)

	_, err = svc.BulkEdit(ctx, "1:First\n1:Second")
	var dup *DuplicateNumberError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, 0, store.applied)

	kept, err := svc.Get(ctx, btn.Number)
	require.NoError(t, err)
	require.Equal(t, "Only", kept.Name)
}

func TestBulkEditSkipsUnknownAndBadParent(t *testing.T) {
	svc, _ := newButtonsFixture()
	ctx := context.Background()

	real, err := svc.AddFromText(ctx, "Real")
	require.NoError(t, err)
	other, err := svc.AddFromText(ctx, "Other")
	require.NoError(t, err)

	// 99 does not exist, and button 1 is a leaf, not a valid parent
	res, err := svc.BulkEdit(ctx, "99:Ghost\n1\n2:Other:1")
	require.NoError(t, err)
	require.Equal(t, 1, res.Enabled)
	require.Equal(t, 1, res.Disabled)
	require.Equal(t, 0, res.Created)

	kept, err := svc.Get(ctx, real.Number)
	require.NoError(t, err)
	require.True(t, kept.ToSend)
	require.Nil(t, kept.Parent)

	skipped, err := svc.Get(ctx, other.Number)
	require.NoError(t, err)
	require.False(t, skipped.ToSend)
}

func TestBulkEditEmptyInputRejected(t *testing.T) {
	svc, _ := newButtonsFixture()
	_, err := svc.BulkEdit(context.Background(), "nothing parsable here")
	require.ErrorIs(t, err, ErrValidation)
}

func TestGrantRoleByLogin(t *testing.T) {
	users := newMemUsers()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{ID: 5, Login: "someone", Roles: []string{models.RoleUser}}))
	svc := NewUsers(users)

	got, err := svc.GrantRole(ctx, "@someone", models.RoleModerator)
	require.NoError(t, err)
	require.True(t, got.HasRole(models.RoleModerator))

	stored, err := users.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, stored.HasRole(models.RoleModerator))

	_, err = svc.GrantRole(ctx, "  ", models.RoleModerator)
	require.ErrorIs(t, err, ErrValidation)
}
