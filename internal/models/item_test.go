package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to ItemStatus }{
		{StatusDraft, StatusAwaitingMulti},
		{StatusDraft, StatusSubmitted},
		{StatusDraft, StatusDeleted},
		{StatusAwaitingMulti, StatusSubmitted},
		{StatusSubmitted, StatusApproved},
		{StatusSubmitted, StatusDeclined},
		{StatusApproved, StatusDeleted},
		{StatusDeclined, StatusDeleted},
	}
	for _, tc := range allowed {
		require.True(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	forbidden := []struct{ from, to ItemStatus }{
		{StatusDraft, StatusApproved},
		{StatusAwaitingMulti, StatusDraft},
		{StatusSubmitted, StatusAwaitingMulti},
		{StatusApproved, StatusSubmitted},
		{StatusDeleted, StatusDraft},
		{StatusDeclined, StatusApproved},
	}
	for _, tc := range forbidden {
		require.False(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusActive(t *testing.T) {
	require.True(t, StatusDraft.Active())
	require.True(t, StatusAwaitingMulti.Active())
	require.False(t, StatusSubmitted.Active())
	require.False(t, StatusApproved.Active())
	require.False(t, StatusDeclined.Active())
	require.False(t, StatusDeleted.Active())
}

func TestKindMulti(t *testing.T) {
	require.True(t, KindSubmitNews.Multi())
	for _, kind := range []ItemKind{KindAddAdmin, KindAddModerator, KindAddButton, KindDeleteButton, KindEditButtons} {
		require.False(t, kind.Multi(), string(kind))
	}
}
