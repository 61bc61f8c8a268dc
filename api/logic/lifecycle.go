/* lifecycle.go
 * Contains the in-memory mutation operations for a single scheduled match:
 * played flag, scores, penalties, comments, referee, status and the next up
 * designation. Persistence is an explicit separate step performed by the
 * caller after a successful mutation
 */

package logic

import (
	"fmt"
	"time"

	"scorix-ops/api/shared"
)

// MatchAt returns a pointer to the match at idx
// Preconditions: Receives the schedule and a match index
// Postconditions: Returns the match, or ErrIndexOutOfRange if idx does not
// satisfy 0 <= idx < len(matches)
func MatchAt(s *shared.Schedule, idx int) (*shared.Match, error) {
	if idx < 0 || idx >= len(s.Matches) {
		return nil, fmt.Errorf("%w: %d", shared.ErrIndexOutOfRange, idx)
	}
	return &s.Matches[idx], nil
}

// SetMatchPlayed sets the played flag on a match
func SetMatchPlayed(s *shared.Schedule, idx int, played bool) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	m.Played = played
	return nil
}

// SetMatchPenalty sets the penalty flag for one side of a match. teamNumber
// must be 1 or 2
func SetMatchPenalty(s *shared.Schedule, idx int, teamNumber int, penalty bool) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	switch teamNumber {
	case 1:
		m.PenaltyTeam1 = penalty
	case 2:
		m.PenaltyTeam2 = penalty
	default:
		return fmt.Errorf("%w: got %d", shared.ErrInvalidTeamNumber, teamNumber)
	}
	return nil
}

// SetMatchScores sets both scores together and marks the match played. This is
// the only score entry path that flips the played flag; use SetMatchScore for
// partial entry
func SetMatchScores(s *shared.Schedule, idx int, score1, score2 int) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	m.Score1 = score1
	m.Score2 = score2
	m.Played = true
	return nil
}

// SetMatchScore sets the score for one side of a match without touching the
// played flag. teamNumber must be 1 or 2
func SetMatchScore(s *shared.Schedule, idx int, teamNumber int, score int) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	switch teamNumber {
	case 1:
		m.Score1 = score
	case 2:
		m.Score2 = score
	default:
		return fmt.Errorf("%w: got %d", shared.ErrInvalidTeamNumber, teamNumber)
	}
	return nil
}

// SetMatchComment overwrites the current comment. It does not touch the
// comment history; callers that want the previous comment retained must append
// it with AppendCommentHistory before overwriting
func SetMatchComment(s *shared.Schedule, idx int, comment string) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	m.Comments = comment
	return nil
}

// AppendCommentHistory unconditionally appends an entry to the match's comment
// history
func AppendCommentHistory(s *shared.Schedule, idx int, comment string, timestamp time.Time) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	m.CommentHistory = append(m.CommentHistory, shared.CommentEntry{
		Comment:   comment,
		Timestamp: timestamp,
	})
	return nil
}

// SetMatchReferee assigns a referee to a match
func SetMatchReferee(s *shared.Schedule, idx int, referee string) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	m.Referee = referee
	return nil
}

// SetNextUp designates the match at idx as next up. The flag is cleared on
// every other match first so at most one match in the schedule carries it
func SetNextUp(s *shared.Schedule, idx int) error {
	if _, err := MatchAt(s, idx); err != nil {
		return err
	}
	for i := range s.Matches {
		s.Matches[i].NextUp = false
	}
	s.Matches[idx].NextUp = true
	return nil
}

// ClearNextUp removes the next up designation from every match
func ClearNextUp(s *shared.Schedule) {
	for i := range s.Matches {
		s.Matches[i].NextUp = false
	}
}

// SetMatchStatus sets the lifecycle status of a match. Setting Completed also
// marks the match played; other statuses leave the played flag untouched
func SetMatchStatus(s *shared.Schedule, idx int, status shared.MatchStatus) error {
	m, err := MatchAt(s, idx)
	if err != nil {
		return err
	}
	if !shared.ValidStatus(status) {
		return fmt.Errorf("%w: %q", shared.ErrInvalidStatus, status)
	}
	m.Status = status
	if status == shared.StatusCompleted {
		m.Played = true
	}
	return nil
}
