package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSetOnce_Applied(t *testing.T) {
	outcome, err := ResolveSetOnce("user-b", "", "user-a")
	require.NoError(t, err)
	assert.Equal(t, SetOnceApplied, outcome)
}

func TestResolveSetOnce_IdempotentNoop(t *testing.T) {
	outcome, err := ResolveSetOnce("user-b", "user-a", "user-a")
	require.NoError(t, err)
	assert.Equal(t, SetOnceNoop, outcome)
}

func TestResolveSetOnce_Conflict(t *testing.T) {
	outcome, err := ResolveSetOnce("user-b", "user-a", "user-c")
	assert.ErrorIs(t, err, ErrAlreadySet)
	assert.Equal(t, SetOnceConflict, outcome)
}

func TestResolveSetOnce_SelfReference(t *testing.T) {
	// 自指无论当前状态如何都被拒绝
	_, err := ResolveSetOnce("user-b", "", "user-b")
	assert.ErrorIs(t, err, ErrSelfReference)

	_, err = ResolveSetOnce("user-b", "user-a", "user-b")
	assert.ErrorIs(t, err, ErrSelfReference)
}

func TestResolveSetOnce_WhitespaceCurrentTreatedAsUnset(t *testing.T) {
	outcome, err := ResolveSetOnce("user-b", "  ", "user-a")
	require.NoError(t, err)
	assert.Equal(t, SetOnceApplied, outcome)
}
