/* reconcile.go
 * Contains the score reconciler: merges game records reported by the external
 * scoring feed into the locally held schedule. Reconciliation is idempotent,
 * so overlapping or repeated invocations from a refresh timer are safe
 */

package logic

import (
	"time"

	"scorix-ops/api/external"
	"scorix-ops/api/shared"
)

// Reconcile walks the schedule in order and, for each match, applies the first
// game record in the feed that covers the same pairing in either orientation.
// Scores and penalty flags are mapped orientation-aware. A score history entry
// is appended only when the incoming scores differ from the stored ones, so
// re-running with unchanged feed data leaves the schedule identical.
//
// Status is derived for every match a record was found for: the next up match
// is In Progress regardless of scores (operators mark a match in progress
// before scores land), any posted score means Completed and played, otherwise
// the match reverts to Not Started and unplayed.
// Preconditions: Receives the schedule, the feed records in feed order, and
// the timestamp to stamp score history entries with
// Postconditions: Returns the number of matches whose scores changed
func Reconcile(s *shared.Schedule, games []external.GameRecord, now time.Time) int {
	nextUp := s.NextUpIndex()
	changed := 0

	for idx := range s.Matches {
		match := &s.Matches[idx]

		for _, game := range games {
			found, swapped := game.MatchesPairing(match.Team1, match.Team2)
			if !found {
				continue
			}

			oldScore1 := match.Score1
			oldScore2 := match.Score2

			if swapped {
				match.Score1 = game.Team2.Score
				match.Score2 = game.Team1.Score
				match.PenaltyTeam1 = game.Team2.Penalty
				match.PenaltyTeam2 = game.Team1.Penalty
			} else {
				match.Score1 = game.Team1.Score
				match.Score2 = game.Team2.Score
				match.PenaltyTeam1 = game.Team1.Penalty
				match.PenaltyTeam2 = game.Team2.Penalty
			}

			if match.Score1 != oldScore1 || match.Score2 != oldScore2 {
				match.ScoreHistory = append(match.ScoreHistory, shared.ScoreEntry{
					Score1:    match.Score1,
					Score2:    match.Score2,
					Timestamp: now,
				})
				changed++
			}

			// Next up takes priority over score-derived status
			if idx == nextUp {
				match.Status = shared.StatusInProgress
			} else if match.Score1 > 0 || match.Score2 > 0 {
				match.Status = shared.StatusCompleted
				match.Played = true
			} else {
				match.Status = shared.StatusNotStarted
				match.Played = false
			}

			break
		}
	}
	return changed
}

// PushSchedule produces the upstream updates for played matches: for each
// scheduled match covered by a feed record, the record's scores are replaced
// with the schedule's, orientation preserved. Records are matched first in
// feed order, the same rule Reconcile uses. Matches with no covering record
// produce no update
func PushSchedule(s *shared.Schedule, games []external.GameRecord) []external.GameRecord {
	var updates []external.GameRecord

	for idx := range s.Matches {
		match := &s.Matches[idx]

		for _, game := range games {
			found, swapped := game.MatchesPairing(match.Team1, match.Team2)
			if !found {
				continue
			}

			if swapped {
				game.Team1.Score = match.Score2
				game.Team2.Score = match.Score1
			} else {
				game.Team1.Score = match.Score1
				game.Team2.Score = match.Score2
			}
			updates = append(updates, game)
			break
		}
	}
	return updates
}
