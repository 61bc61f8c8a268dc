/* roundrobin.go
 * Contains the round robin match generator. The generator is a pure function
 * over the roster; uniqueness of team names is enforced by the schedule store
 * before it is called
 */

package logic

import (
	"math/rand"
	"time"

	"scorix-ops/api/shared"
)

// GenerateRoundRobin creates the full match list for the given roster. Each
// repetition pairs every team against every other team exactly once, giving
// replication * n*(n-1)/2 matches. With shuffle set the combined list is
// uniformly permuted so scheduled order does not group repetitions together.
// Preconditions: Receives the ordered team list, the number of repetitions and
// the shuffle flag
// Postconditions: Returns freshly initialised unplayed matches; fewer than 2
// teams or a non-positive replication yields an empty list, not an error
func GenerateRoundRobin(teams []string, replication int, shuffle bool) []shared.Match {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return generateRoundRobin(teams, replication, shuffle, rng)
}

// GenerateRoundRobinSeeded behaves like GenerateRoundRobin with shuffle
// enabled, but permutes with the given seed so output order is deterministic
func GenerateRoundRobinSeeded(teams []string, replication int, seed int64) []shared.Match {
	rng := rand.New(rand.NewSource(seed))
	return generateRoundRobin(teams, replication, true, rng)
}

func generateRoundRobin(teams []string, replication int, shuffle bool, rng *rand.Rand) []shared.Match {
	matches := []shared.Match{}
	if len(teams) < 2 || replication < 1 {
		// A schedule may legitimately have 0 or 1 teams before a tournament starts
		return matches
	}

	now := time.Now()
	for rep := 0; rep < replication; rep++ {
		for i := 0; i < len(teams)-1; i++ {
			for j := i + 1; j < len(teams); j++ {
				matches = append(matches, shared.Match{
					Team1:          teams[i],
					Team2:          teams[j],
					Played:         false,
					Status:         shared.StatusNotStarted,
					Comments:       "",
					CommentHistory: []shared.CommentEntry{},
					Created:        now,
				})
			}
		}
	}

	if shuffle {
		rng.Shuffle(len(matches), func(a, b int) {
			matches[a], matches[b] = matches[b], matches[a]
		})
	}
	return matches
}
