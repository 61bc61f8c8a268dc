/* models.go
 * This file contains the models for documents consumed from and published to
 * the external scoring feed
 */

package external

import "scorix-ops/api/shared"

// TeamEntry is one side of a game record in the scoring feed. Score is the
// primary counter; Orange and Purple are optional secondary counters some
// scoring tablets report.
type TeamEntry struct {
	Name    string `bson:"Name" json:"Name"`
	Score   int    `bson:"Score" json:"Score"`
	Penalty bool   `bson:"Penalty,omitempty" json:"Penalty,omitempty"`
	Orange  int    `bson:"Orange,omitempty" json:"Orange,omitempty"`
	Purple  int    `bson:"Purple,omitempty" json:"Purple,omitempty"`
}

// GameRecord is a completed or in-progress game as reported by the scoring
// feed. Records are read-only to the core; the only write path back is the
// upsert-by-game-number push in the feed client.
type GameRecord struct {
	GameNumber int       `bson:"GameNumber" json:"GameNumber"`
	Timestamp  string    `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Team1      TeamEntry `bson:"Team1" json:"Team1"`
	Team2      TeamEntry `bson:"Team2" json:"Team2"`
	Status     string    `bson:"status,omitempty" json:"status,omitempty"`
}

// Teams returns both team entries in feed order
func (g GameRecord) Teams() [2]TeamEntry {
	return [2]TeamEntry{g.Team1, g.Team2}
}

// MatchesPairing reports whether the record covers the given pairing in either
// orientation, and whether the orientation is swapped relative to team1/team2
func (g GameRecord) MatchesPairing(team1, team2 string) (found, swapped bool) {
	if g.Team1.Name == team1 && g.Team2.Name == team2 {
		return true, false
	}
	if g.Team1.Name == team2 && g.Team2.Name == team1 {
		return true, true
	}
	return false, false
}

// DisplaySnapshot is the document published to the display collection so
// downstream display clients can render the current tournament state
type DisplaySnapshot struct {
	Schedule *shared.Schedule      `bson:"schedule" json:"schedule"`
	Finals   *shared.FinalsBracket `bson:"finals" json:"finals"`
}
