/* finals.go
 * Contains the finals engine: qualifier selection from the game feed, bracket
 * construction and the winner progression state machine
 */

package logic

import (
	"fmt"
	"sort"

	"scorix-ops/api/external"
	"scorix-ops/api/shared"
)

// QualifierMetric selects how teams are ranked for finals qualification.
type QualifierMetric string

const (
	MetricTotal   QualifierMetric = "total"
	MetricAverage QualifierMetric = "average"
)

// FinalsMatchRef identifies a match inside the finals bracket.
type FinalsMatchRef string

const (
	RefSemifinal1 FinalsMatchRef = "semifinal1"
	RefSemifinal2 FinalsMatchRef = "semifinal2"
	RefFinal      FinalsMatchRef = "final"
	RefThirdPlace FinalsMatchRef = "third_place"
)

// Qualifier is a team admitted to the finals with the metric it qualified on
type Qualifier struct {
	Team   string
	Metric float64
}

// SelectQualifiers aggregates the game feed per team and returns the top 4 by
// the chosen metric, highest first. Ties keep feed encounter order
// Preconditions: Receives the feed records and the ranking metric
// Postconditions: Returns the top 4 qualifiers, or nil when fewer than 4
// distinct teams have played
func SelectQualifiers(games []external.GameRecord, metric QualifierMetric) []Qualifier {
	order, totals := accumulate(games)

	var qualifiers []Qualifier
	for _, team := range order {
		row := totals[team]
		if row.Games == 0 {
			continue
		}
		value := float64(row.Score)
		if metric == MetricAverage {
			value = float64(row.Score) / float64(row.Games)
		}
		qualifiers = append(qualifiers, Qualifier{Team: team, Metric: value})
	}

	if len(qualifiers) < 4 {
		return nil
	}

	sort.SliceStable(qualifiers, func(i, j int) bool {
		return qualifiers[i].Metric > qualifiers[j].Metric
	})
	return qualifiers[:4]
}

// BuildBracket seeds the finals bracket from the top 4 qualifiers: seed 1
// plays seed 4 and seed 2 plays seed 3 in the semifinals. The final and third
// place matches start with empty team slots
func BuildBracket(top4 []Qualifier) (*shared.FinalsBracket, error) {
	if len(top4) < 4 {
		return nil, fmt.Errorf("%w: got %d", shared.ErrNotEnoughQualifiers, len(top4))
	}

	bracket := &shared.FinalsBracket{
		Semifinals: [2]shared.FinalsMatch{
			{Team1: top4[0].Team, Team2: top4[3].Team, Status: shared.StatusNotStarted},
			{Team1: top4[1].Team, Team2: top4[2].Team, Status: shared.StatusNotStarted},
		},
		Final:      shared.FinalsMatch{Status: shared.StatusNotStarted},
		ThirdPlace: shared.FinalsMatch{Status: shared.StatusNotStarted},
	}
	return bracket, nil
}

// RecordWinner records the winner of one finals match and advances the
// bracket:
//   - once both semifinals have winners the final gets the two winners and the
//     third place match gets the two losers
//   - the final's winner becomes champion, the other finalist runner up
//   - the third place match's winner becomes the third place team
//
// The champion can never be set before both semifinal winners are recorded,
// because the final has no teams until then
func RecordWinner(b *shared.FinalsBracket, ref FinalsMatchRef, winner string) error {
	match, err := bracketMatch(b, ref)
	if err != nil {
		return err
	}
	if match.Team1 == "" && match.Team2 == "" {
		return fmt.Errorf("%w: %s", shared.ErrBracketNotReady, ref)
	}
	if winner != match.Team1 && winner != match.Team2 {
		return fmt.Errorf("%w: %q is not in %s", shared.ErrInvalidWinner, winner, ref)
	}

	match.Winner = winner
	match.Status = shared.StatusCompleted

	switch ref {
	case RefSemifinal1, RefSemifinal2:
		populateFromSemifinals(b)
	case RefFinal:
		b.Champion = winner
		if b.Final.Team1 == winner {
			b.RunnerUp = b.Final.Team2
		} else {
			b.RunnerUp = b.Final.Team1
		}
	case RefThirdPlace:
		b.ThirdPlaceTeam = winner
	}
	return nil
}

// SetFinalsScores records the score of one finals match without deciding a
// winner; operators typically post scores as they land and confirm the winner
// separately
func SetFinalsScores(b *shared.FinalsBracket, ref FinalsMatchRef, score1, score2 int) error {
	match, err := bracketMatch(b, ref)
	if err != nil {
		return err
	}
	match.Score1 = score1
	match.Score2 = score2
	return nil
}

func bracketMatch(b *shared.FinalsBracket, ref FinalsMatchRef) (*shared.FinalsMatch, error) {
	switch ref {
	case RefSemifinal1:
		return &b.Semifinals[0], nil
	case RefSemifinal2:
		return &b.Semifinals[1], nil
	case RefFinal:
		return &b.Final, nil
	case RefThirdPlace:
		return &b.ThirdPlace, nil
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrUnknownFinalsMatch, ref)
}

// populateFromSemifinals fills the final and third place team slots once both
// semifinals have winners. The loser of a semifinal is whichever side is not
// the winner
func populateFromSemifinals(b *shared.FinalsBracket) {
	if b.Semifinals[0].Winner == "" || b.Semifinals[1].Winner == "" {
		return
	}

	var losers [2]string
	for i, semi := range b.Semifinals {
		if semi.Team1 != semi.Winner {
			losers[i] = semi.Team1
		} else {
			losers[i] = semi.Team2
		}
	}

	b.Final.Team1 = b.Semifinals[0].Winner
	b.Final.Team2 = b.Semifinals[1].Winner
	b.ThirdPlace.Team1 = losers[0]
	b.ThirdPlace.Team2 = losers[1]
}
