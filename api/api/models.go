/* models.go
 * Contains the configuration and derived payload types for the API facade
 */

package api

import (
	"github.com/sirupsen/logrus"

	"scorix-ops/api/logic"
)

// Config holds everything needed to construct an API instance
type Config struct {
	Database     string
	MongoURI     string
	SchedulePath string
	FinalsPath   string
	NotesPath    string
	Shuffle      bool
	Metric       logic.QualifierMetric
	TableNumber  string
	Log          *logrus.Logger
}

// DisplayPayload is the derived document display clients render for the next
// up match. Ranks follow the display convention: rank 1 is the team with the
// lowest cumulative score.
type DisplayPayload struct {
	MatchNumber string `json:"matchNumber"`
	TableNumber string `json:"tableNumber"`
	TeamAName   string `json:"teamAName"`
	TeamARank   int    `json:"teamARank"`
	TeamBName   string `json:"teamBName"`
	TeamBRank   int    `json:"teamBRank"`
}
