/* schedule_test.go
 * Contains unit tests for schedule.go
 */

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorix-ops/api/shared"
)

func newTestStore(t *testing.T) *ScheduleStore {
	t.Helper()
	return NewScheduleStore(filepath.Join(t.TempDir(), "schedule.json"), false, nil)
}

// region Load and Save tests

func TestScheduleStore_LoadMissingFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)

	schedule := s.Load()

	require.NotNil(t, schedule)
	assert.Empty(t, schedule.Teams)
	assert.Empty(t, schedule.Matches)
	assert.NotNil(t, schedule.Teams)
	assert.NotNil(t, schedule.Matches)
}

func TestScheduleStore_LoadMalformedFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0o644))

	schedule := s.Load()

	require.NotNil(t, schedule)
	assert.Empty(t, schedule.Teams)
}

func TestScheduleStore_SaveThenLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddTeam("Alpha"))
	require.NoError(t, s.AddTeam("Bravo"))
	require.NoError(t, s.AddTeam("Charlie"))
	s.Schedule.Matches[0].Score1 = 12
	s.Schedule.Matches[0].Played = true
	require.NoError(t, s.Save())

	reloaded := NewScheduleStore(s.Path, false, nil)
	reloaded.Load()

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, reloaded.Schedule.Teams)
	require.Len(t, reloaded.Schedule.Matches, 3)
	assert.Equal(t, 12, reloaded.Schedule.Matches[0].Score1)
	assert.True(t, reloaded.Schedule.Matches[0].Played)
}

// endregion

// region AddTeam tests

func TestScheduleStore_AddTeamRegeneratesMatches(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	require.NoError(t, s.AddTeam("Alpha"))
	assert.Empty(t, s.Schedule.Matches, "one team cannot play anyone")

	require.NoError(t, s.AddTeam("Bravo"))
	assert.Len(t, s.Schedule.Matches, 1)

	require.NoError(t, s.AddTeam("Charlie"))
	assert.Len(t, s.Schedule.Matches, 3)
}

func TestScheduleStore_AddTeamRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddTeam("Alpha"))

	err := s.AddTeam("Alpha")

	assert.ErrorIs(t, err, shared.ErrDuplicateTeam)
	assert.Len(t, s.Schedule.Teams, 1)
}

func TestScheduleStore_AddTeamRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.AddTeam(""), shared.ErrEmptyTeamName)
	assert.ErrorIs(t, s.AddTeam("   "), shared.ErrEmptyTeamName)
}

func TestScheduleStore_AddTeamTrimsWhitespace(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddTeam("  Alpha  "))

	assert.Equal(t, []string{"Alpha"}, s.Schedule.Teams)
}

func TestScheduleStore_AddTeamPreservesReplication(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddTeam("Alpha"))
	require.NoError(t, s.AddTeam("Bravo"))
	require.NoError(t, s.AddTeam("Charlie"))
	require.NoError(t, s.SetMatchCount(2))

	require.NoError(t, s.AddTeam("Delta"))

	// 4 teams at replication 2: 2 * 6 pairings
	assert.Len(t, s.Schedule.Matches, 12)
	assert.Equal(t, 2, s.MatchCount())
}

func TestScheduleStore_AddTeamDiscardsMatchState(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddTeam("Alpha"))
	require.NoError(t, s.AddTeam("Bravo"))
	s.Schedule.Matches[0].Score1 = 10
	s.Schedule.Matches[0].Played = true

	require.NoError(t, s.AddTeam("Charlie"))

	for _, m := range s.Schedule.Matches {
		assert.False(t, m.Played)
		assert.Zero(t, m.Score1)
	}
}

// endregion

// region RemoveTeam tests

func TestScheduleStore_RemoveTeamRegenerates(t *testing.T) {
	s := newTestStore(t)
	for _, team := range []string{"A", "B", "C", "D"} {
		require.NoError(t, s.AddTeam(team))
	}
	require.Len(t, s.Schedule.Matches, 6)

	require.NoError(t, s.RemoveTeam("B"))

	assert.Equal(t, []string{"A", "C", "D"}, s.Schedule.Teams)
	assert.Len(t, s.Schedule.Matches, 3)
	for _, m := range s.Schedule.Matches {
		assert.NotEqual(t, "B", m.Team1)
		assert.NotEqual(t, "B", m.Team2)
	}
}

func TestScheduleStore_RemoveTeamNotFound(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddTeam("Alpha"))

	err := s.RemoveTeam("Bravo")

	assert.ErrorIs(t, err, shared.ErrTeamNotFound)
}

// endregion

// region MatchCount and SetMatchCount tests

func TestScheduleStore_MatchCountInferredFromMatches(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 1, s.MatchCount(), "empty schedule defaults to 1")

	for _, team := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddTeam(team))
	}
	assert.Equal(t, 1, s.MatchCount())

	require.NoError(t, s.SetMatchCount(3))
	assert.Equal(t, 3, s.MatchCount())
}

func TestScheduleStore_SetMatchCountRegenerates(t *testing.T) {
	s := newTestStore(t)
	for _, team := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddTeam(team))
	}

	require.NoError(t, s.SetMatchCount(2))

	assert.Len(t, s.Schedule.Matches, 6)
}

func TestScheduleStore_SetMatchCountSameValueIsNoOp(t *testing.T) {
	s := newTestStore(t)
	for _, team := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddTeam(team))
	}
	s.Schedule.Matches[0].Score1 = 9
	s.Schedule.Matches[0].Played = true

	require.NoError(t, s.SetMatchCount(1))

	assert.Equal(t, 9, s.Schedule.Matches[0].Score1, "re-entering the current factor must not wipe scores")
}

func TestScheduleStore_SetMatchCountRejectsNonPositive(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.SetMatchCount(0), shared.ErrInvalidMatchCount)
	assert.ErrorIs(t, s.SetMatchCount(-2), shared.ErrInvalidMatchCount)
}

// endregion

// region Regenerate tests

func TestScheduleStore_RegenerateDiscardsState(t *testing.T) {
	s := newTestStore(t)
	for _, team := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddTeam(team))
	}
	s.Schedule.Matches[1].NextUp = true
	s.Schedule.Matches[1].Score2 = 5

	s.Regenerate()

	assert.Len(t, s.Schedule.Matches, 3)
	assert.Equal(t, -1, s.Schedule.NextUpIndex())
	for _, m := range s.Schedule.Matches {
		assert.Zero(t, m.Score2)
	}
}

// endregion
