/* reconcile_test.go
 * Contains unit tests for reconcile.go
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorix-ops/api/external"
	"scorix-ops/api/shared"
)

func gameRecord(number int, team1 string, score1 int, team2 string, score2 int) external.GameRecord {
	return external.GameRecord{
		GameNumber: number,
		Team1:      external.TeamEntry{Name: team1, Score: score1},
		Team2:      external.TeamEntry{Name: team2, Score: score2},
	}
}

// region Reconcile tests

func TestReconcile_AppliesScoresAndMarksCompleted(t *testing.T) {
	s := newTestSchedule()
	games := []external.GameRecord{gameRecord(1, "Alpha", 15, "Bravo", 9)}
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	changed := Reconcile(s, games, now)

	assert.Equal(t, 1, changed)
	m := s.Matches[0]
	assert.Equal(t, 15, m.Score1)
	assert.Equal(t, 9, m.Score2)
	assert.True(t, m.Played)
	assert.Equal(t, shared.StatusCompleted, m.Status)
	require.Len(t, m.ScoreHistory, 1)
	assert.Equal(t, 15, m.ScoreHistory[0].Score1)
	assert.Equal(t, 9, m.ScoreHistory[0].Score2)
	assert.Equal(t, now, m.ScoreHistory[0].Timestamp)
}

func TestReconcile_SwappedOrientation(t *testing.T) {
	s := newTestSchedule()
	// Feed reports Bravo first, schedule has Alpha vs Bravo
	games := []external.GameRecord{{
		GameNumber: 1,
		Team1:      external.TeamEntry{Name: "Bravo", Score: 9, Penalty: true},
		Team2:      external.TeamEntry{Name: "Alpha", Score: 15},
	}}

	Reconcile(s, games, time.Now())

	m := s.Matches[0]
	assert.Equal(t, 15, m.Score1)
	assert.Equal(t, 9, m.Score2)
	assert.False(t, m.PenaltyTeam1)
	assert.True(t, m.PenaltyTeam2)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	s := newTestSchedule()
	games := []external.GameRecord{
		gameRecord(1, "Alpha", 15, "Bravo", 9),
		gameRecord(2, "Alpha", 8, "Charlie", 8),
	}

	first := Reconcile(s, games, time.Now())
	second := Reconcile(s, games, time.Now())

	assert.Equal(t, 2, first, "both covered matches change on the first pass")
	assert.Zero(t, second)
	assert.Len(t, s.Matches[0].ScoreHistory, 1, "unchanged feed data must not grow history")
	assert.Len(t, s.Matches[1].ScoreHistory, 1)
}

func TestReconcile_FirstRecordInFeedOrderWins(t *testing.T) {
	s := newTestSchedule()
	games := []external.GameRecord{
		gameRecord(3, "Alpha", 5, "Bravo", 2),
		gameRecord(1, "Alpha", 20, "Bravo", 18),
	}

	Reconcile(s, games, time.Now())

	assert.Equal(t, 5, s.Matches[0].Score1)
	assert.Equal(t, 2, s.Matches[0].Score2)
}

func TestReconcile_ScoreChangeAppendsHistory(t *testing.T) {
	s := newTestSchedule()
	firstStamp := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	secondStamp := firstStamp.Add(10 * time.Minute)

	Reconcile(s, []external.GameRecord{gameRecord(1, "Alpha", 5, "Bravo", 2)}, firstStamp)
	Reconcile(s, []external.GameRecord{gameRecord(1, "Alpha", 12, "Bravo", 2)}, secondStamp)

	history := s.Matches[0].ScoreHistory
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].Score1)
	assert.Equal(t, 12, history[1].Score1)
	assert.Equal(t, secondStamp, history[1].Timestamp)
}

func TestReconcile_NextUpBecomesInProgress(t *testing.T) {
	s := newTestSchedule()
	require.NoError(t, SetNextUp(s, 0))
	games := []external.GameRecord{gameRecord(1, "Alpha", 3, "Bravo", 0)}

	Reconcile(s, games, time.Now())

	assert.Equal(t, shared.StatusInProgress, s.Matches[0].Status)
}

func TestReconcile_ZeroScoresRevertToNotStarted(t *testing.T) {
	s := newTestSchedule()
	require.NoError(t, SetMatchScores(s, 0, 4, 4))
	s.Matches[0].Status = shared.StatusCompleted

	// The feed record was corrected back to zero
	Reconcile(s, []external.GameRecord{gameRecord(1, "Alpha", 0, "Bravo", 0)}, time.Now())

	m := s.Matches[0]
	assert.Equal(t, shared.StatusNotStarted, m.Status)
	assert.False(t, m.Played)
	assert.Zero(t, m.Score1)
	assert.Zero(t, m.Score2)
}

func TestReconcile_UncoveredMatchesUntouched(t *testing.T) {
	s := newTestSchedule()
	games := []external.GameRecord{gameRecord(1, "Alpha", 10, "Bravo", 6)}

	Reconcile(s, games, time.Now())

	// Alpha vs Charlie and Bravo vs Charlie have no covering record
	for _, idx := range []int{1, 2} {
		m := s.Matches[idx]
		assert.Zero(t, m.Score1)
		assert.Zero(t, m.Score2)
		assert.False(t, m.Played)
		assert.Equal(t, shared.StatusNotStarted, m.Status)
	}
}

func TestReconcile_EmptyFeedIsNoOp(t *testing.T) {
	s := newTestSchedule()

	changed := Reconcile(s, nil, time.Now())

	assert.Zero(t, changed)
}

// endregion

// region PushSchedule tests

func TestPushSchedule_ReplacesFeedScores(t *testing.T) {
	s := newTestSchedule()
	require.NoError(t, SetMatchScores(s, 0, 21, 13))
	games := []external.GameRecord{gameRecord(1, "Alpha", 5, "Bravo", 5)}

	updates := PushSchedule(s, games)

	require.Len(t, updates, 1)
	assert.Equal(t, 1, updates[0].GameNumber)
	assert.Equal(t, 21, updates[0].Team1.Score)
	assert.Equal(t, 13, updates[0].Team2.Score)
}

func TestPushSchedule_PreservesFeedOrientation(t *testing.T) {
	s := newTestSchedule()
	require.NoError(t, SetMatchScores(s, 0, 21, 13))
	games := []external.GameRecord{gameRecord(4, "Bravo", 0, "Alpha", 0)}

	updates := PushSchedule(s, games)

	require.Len(t, updates, 1)
	assert.Equal(t, "Bravo", updates[0].Team1.Name)
	assert.Equal(t, 13, updates[0].Team1.Score)
	assert.Equal(t, 21, updates[0].Team2.Score)
}

func TestPushSchedule_SkipsUncoveredMatches(t *testing.T) {
	s := newTestSchedule()
	games := []external.GameRecord{gameRecord(1, "Alpha", 0, "Bravo", 0)}

	updates := PushSchedule(s, games)

	assert.Len(t, updates, 1, "matches without a covering record produce no update")
}

// endregion
