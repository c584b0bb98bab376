package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGoal(t *testing.T, kind Kind, target int) *Goal {
	t.Helper()
	g, err := NewGoal(uuid.New(), "Complete 75", kind, target, "", "problems")
	require.NoError(t, err)
	return g
}

func TestNewGoal(t *testing.T) {
	t.Run("valid goal", func(t *testing.T) {
		g, err := NewGoal(uuid.New(), "Master DSA for MAANG Interview", KindLongTerm, 450, "", "problems")
		require.NoError(t, err)
		assert.Equal(t, KindLongTerm, g.Kind())
		assert.Equal(t, 450, g.TargetCount())
		assert.Equal(t, 0, g.Progress())
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := NewGoal(uuid.New(), "  ", KindShortTerm, 75, "", "problems")
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewGoal(uuid.New(), "Complete 75", Kind("WEEKLY"), 75, "", "problems")
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		_, err := NewGoal(uuid.New(), "Complete 75", KindShortTerm, 0, "", "problems")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestProjectProgress(t *testing.T) {
	short := mustGoal(t, KindShortTerm, 75)
	long := mustGoal(t, KindLongTerm, 450)
	daily := mustGoal(t, KindDaily, 3)
	daily.SetProgress(1)

	ProjectProgress([]*Goal{short, long, daily}, 42)

	assert.Equal(t, 42, short.Progress())
	assert.Equal(t, 42, long.Progress())
	assert.Equal(t, 1, daily.Progress(), "daily goals are not projected")
}

func TestSetProgress(t *testing.T) {
	g := mustGoal(t, KindShortTerm, 75)

	g.SetProgress(-5)
	assert.Equal(t, 0, g.Progress())

	g.SetProgress(80)
	assert.Equal(t, 80, g.Progress())
}

func TestUpdateDetails(t *testing.T) {
	g := mustGoal(t, KindShortTerm, 75)

	require.NoError(t, g.UpdateDetails("Complete 100", 100, "2026-12-31"))
	assert.Equal(t, "Complete 100", g.Description())
	assert.Equal(t, 100, g.TargetCount())
	assert.Equal(t, "2026-12-31", g.Deadline())

	assert.ErrorIs(t, g.UpdateDetails("", 100, ""), ErrEmptyDescription)
	assert.ErrorIs(t, g.UpdateDetails("Complete 100", -1, ""), ErrInvalidTarget)
}

func TestPercent(t *testing.T) {
	g := mustGoal(t, KindShortTerm, 75)

	assert.Equal(t, 0, g.Percent())

	g.SetProgress(15)
	assert.Equal(t, 20, g.Percent())

	g.SetProgress(200)
	assert.Equal(t, 100, g.Percent(), "capped at 100")
}
