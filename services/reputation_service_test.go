package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReputationApplyAndClamp(t *testing.T) {
	e := newTestEnv(t)
	svc := NewReputationService(e.records, e.users)

	user := e.mustUser(t, "alice")

	score, err := svc.Score(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	_, err = svc.Apply(user.ID, -30, "no-show on trip")
	require.NoError(t, err)

	score, err = svc.Score(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, score)

	t.Run("clamped at 100", func(t *testing.T) {
		_, err := svc.Apply(user.ID, 500, "manual correction")
		require.NoError(t, err)
		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, score)
	})

	t.Run("clamped at 0", func(t *testing.T) {
		_, err := svc.Apply(user.ID, -500, "fraud")
		require.NoError(t, err)
		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})

	t.Run("history recorded", func(t *testing.T) {
		records, err := svc.Records(user.ID)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Apply(99999, 5, "nope")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
