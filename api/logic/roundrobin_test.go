/* roundrobin_test.go
 * Contains unit tests for roundrobin.go
 */

package logic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorix-ops/api/shared"
)

// pairingKey builds an orientation-independent key for a match
func pairingKey(m shared.Match) string {
	if m.Team1 < m.Team2 {
		return fmt.Sprintf("%s|%s", m.Team1, m.Team2)
	}
	return fmt.Sprintf("%s|%s", m.Team2, m.Team1)
}

// region GenerateRoundRobin tests

func TestGenerateRoundRobin_MatchCount(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}

	for replication := 1; replication <= 3; replication++ {
		matches := GenerateRoundRobin(teams, replication, false)
		n := len(teams)
		assert.Len(t, matches, replication*n*(n-1)/2, "replication %d", replication)
	}
}

func TestGenerateRoundRobin_EveryPairingAppears(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta"}
	matches := GenerateRoundRobin(teams, 2, false)

	counts := make(map[string]int)
	for _, m := range matches {
		assert.NotEqual(t, m.Team1, m.Team2, "no team plays itself")
		counts[pairingKey(m)]++
	}

	// 4 teams yield 6 distinct pairings, each appearing twice
	require.Len(t, counts, 6)
	for pairing, count := range counts {
		assert.Equal(t, 2, count, "pairing %s", pairing)
	}
}

func TestGenerateRoundRobin_FreshMatchState(t *testing.T) {
	matches := GenerateRoundRobin([]string{"Alpha", "Bravo"}, 1, false)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.False(t, m.Played)
	assert.Equal(t, shared.StatusNotStarted, m.Status)
	assert.Zero(t, m.Score1)
	assert.Zero(t, m.Score2)
	assert.Empty(t, m.Comments)
	assert.NotNil(t, m.CommentHistory)
	assert.Empty(t, m.CommentHistory)
	assert.False(t, m.NextUp)
	assert.False(t, m.Created.IsZero())
}

func TestGenerateRoundRobin_TooFewTeams(t *testing.T) {
	assert.Empty(t, GenerateRoundRobin([]string{}, 1, false))
	assert.Empty(t, GenerateRoundRobin([]string{"Alpha"}, 1, false))
}

func TestGenerateRoundRobin_NonPositiveReplication(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie"}
	assert.Empty(t, GenerateRoundRobin(teams, 0, false))
	assert.Empty(t, GenerateRoundRobin(teams, -1, false))
}

func TestGenerateRoundRobin_UnshuffledOrderIsDeterministic(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie"}

	first := GenerateRoundRobin(teams, 1, false)
	second := GenerateRoundRobin(teams, 1, false)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Team1, second[i].Team1)
		assert.Equal(t, first[i].Team2, second[i].Team2)
	}
	// Pair enumeration order: i before j for i < j
	assert.Equal(t, "Alpha", first[0].Team1)
	assert.Equal(t, "Bravo", first[0].Team2)
	assert.Equal(t, "Alpha", first[1].Team1)
	assert.Equal(t, "Charlie", first[1].Team2)
	assert.Equal(t, "Bravo", first[2].Team1)
	assert.Equal(t, "Charlie", first[2].Team2)
}

// endregion

// region GenerateRoundRobinSeeded tests

func TestGenerateRoundRobinSeeded_SameSeedSameOrder(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}

	first := GenerateRoundRobinSeeded(teams, 2, 42)
	second := GenerateRoundRobinSeeded(teams, 2, 42)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Team1, second[i].Team1)
		assert.Equal(t, first[i].Team2, second[i].Team2)
	}
}

func TestGenerateRoundRobinSeeded_ShufflePreservesPairings(t *testing.T) {
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta"}

	plain := GenerateRoundRobin(teams, 1, false)
	shuffled := GenerateRoundRobinSeeded(teams, 1, 7)

	require.Equal(t, len(plain), len(shuffled))
	want := make(map[string]int)
	got := make(map[string]int)
	for i := range plain {
		want[pairingKey(plain[i])]++
		got[pairingKey(shuffled[i])]++
	}
	assert.Equal(t, want, got)
}

// endregion
