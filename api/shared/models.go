/* models.go
 * This file contains the structs and helper functions that are shared between sub packages
 */

package shared

import "time"

// MatchStatus is the lifecycle state of a scheduled match.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "Not Started"
	StatusWaiting    MatchStatus = "Waiting"
	StatusInProgress MatchStatus = "In Progress"
	StatusCompleted  MatchStatus = "Completed"
	StatusCancelled  MatchStatus = "Cancelled"
	StatusPostponed  MatchStatus = "Postponed"
)

// ValidStatus reports whether s is one of the recognised match statuses
func ValidStatus(s MatchStatus) bool {
	switch s {
	case StatusNotStarted, StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled, StatusPostponed:
		return true
	}
	return false
}

// CommentEntry is a single entry in a match's comment history
type CommentEntry struct {
	Comment   string    `json:"comment" bson:"comment"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// ScoreEntry records a score change observed during reconciliation
type ScoreEntry struct {
	Score1    int       `json:"score1" bson:"score1"`
	Score2    int       `json:"score2" bson:"score2"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Match is a single round-robin pairing. Matches are created by the generator
// and mutated in place; they are never deleted individually, only regenerated
// wholesale when the roster or match count changes.
type Match struct {
	Team1          string         `json:"team1" bson:"team1"`
	Team2          string         `json:"team2" bson:"team2"`
	Played         bool           `json:"played" bson:"played"`
	Status         MatchStatus    `json:"status" bson:"status"`
	PenaltyTeam1   bool           `json:"penalty_team1" bson:"penalty_team1"`
	PenaltyTeam2   bool           `json:"penalty_team2" bson:"penalty_team2"`
	Score1         int            `json:"score1" bson:"score1"`
	Score2         int            `json:"score2" bson:"score2"`
	Comments       string         `json:"comments" bson:"comments"`
	CommentHistory []CommentEntry `json:"comment_history" bson:"comment_history"`
	ScoreHistory   []ScoreEntry   `json:"score_history,omitempty" bson:"score_history,omitempty"`
	Referee        string         `json:"referee,omitempty" bson:"referee,omitempty"`
	NextUp         bool           `json:"next_up" bson:"next_up"`
	Created        time.Time      `json:"created" bson:"created"`
}

// Schedule is the canonical team roster and match list. Teams are referenced
// by name everywhere; uniqueness is enforced when a team is added.
type Schedule struct {
	Teams   []string `json:"teams" bson:"teams"`
	Matches []Match  `json:"matches" bson:"matches"`
}

// NewSchedule returns an empty schedule with non-nil slices so it marshals
// as {"teams": [], "matches": []} rather than nulls
func NewSchedule() *Schedule {
	return &Schedule{
		Teams:   []string{},
		Matches: []Match{},
	}
}

// HasTeam reports whether name is on the roster
func (s *Schedule) HasTeam(name string) bool {
	for _, t := range s.Teams {
		if t == name {
			return true
		}
	}
	return false
}

// NextUpIndex returns the index of the match currently flagged next up, or -1.
// At most one match carries the flag
func (s *Schedule) NextUpIndex() int {
	for i := range s.Matches {
		if s.Matches[i].NextUp {
			return i
		}
	}
	return -1
}

// FinalsMatch is a single match in the finals bracket. The final and third
// place matches start with empty team slots until both semifinals have winners.
type FinalsMatch struct {
	Team1  string      `json:"team1" bson:"team1"`
	Team2  string      `json:"team2" bson:"team2"`
	Score1 int         `json:"score1" bson:"score1"`
	Score2 int         `json:"score2" bson:"score2"`
	Status MatchStatus `json:"status" bson:"status"`
	Winner string      `json:"winner,omitempty" bson:"winner,omitempty"`
}

// FinalsBracket is the single-elimination finals stage: two semifinals feeding
// a final and a third-place match
type FinalsBracket struct {
	Semifinals     [2]FinalsMatch `json:"semifinals" bson:"semifinals"`
	Final          FinalsMatch    `json:"final" bson:"final"`
	ThirdPlace     FinalsMatch    `json:"third_place" bson:"third_place"`
	Champion       string         `json:"champion,omitempty" bson:"champion,omitempty"`
	RunnerUp       string         `json:"runner_up,omitempty" bson:"runner_up,omitempty"`
	ThirdPlaceTeam string         `json:"third_place_team,omitempty" bson:"third_place_team,omitempty"`
}

// Complete reports whether the bracket has reached its terminal state
func (b *FinalsBracket) Complete() bool {
	return b.Champion != "" && b.ThirdPlaceTeam != ""
}
