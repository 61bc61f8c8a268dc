/* leaderboard.go
 * Contains the score aggregation functions: total and average leaderboards
 * over the game feed, schedule-derived totals, display ranking and the next
 * free game number
 */

package logic

import (
	"sort"

	"scorix-ops/api/external"
	"scorix-ops/api/shared"
)

// TeamScore is one leaderboard row. Orange and Purple accumulate the optional
// secondary counters some scoring tablets report.
type TeamScore struct {
	Team   string
	Score  int
	Orange int
	Purple int
	Games  int
}

// TeamAverage is one row of the average-score leaderboard
type TeamAverage struct {
	Team    string
	Average float64
	Games   int
}

// accumulate sums feed records per team, preserving first-encounter order so
// leaderboard ties stay stable
func accumulate(games []external.GameRecord) ([]string, map[string]*TeamScore) {
	var order []string
	totals := make(map[string]*TeamScore)

	for _, game := range games {
		for _, entry := range game.Teams() {
			if entry.Name == "" {
				continue
			}
			row, ok := totals[entry.Name]
			if !ok {
				row = &TeamScore{Team: entry.Name}
				totals[entry.Name] = row
				order = append(order, entry.Name)
			}
			row.Score += entry.Score
			row.Orange += entry.Orange
			row.Purple += entry.Purple
			row.Games++
		}
	}
	return order, totals
}

// Leaderboard returns per-team total scores across all feed records, highest
// first. Ties keep the order teams were first encountered in the feed
func Leaderboard(games []external.GameRecord) []TeamScore {
	order, totals := accumulate(games)

	rows := make([]TeamScore, 0, len(order))
	for _, team := range order {
		rows = append(rows, *totals[team])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	return rows
}

// AverageLeaderboard returns per-team average score per game played, highest
// first. Teams with no games are omitted
func AverageLeaderboard(games []external.GameRecord) []TeamAverage {
	order, totals := accumulate(games)

	rows := make([]TeamAverage, 0, len(order))
	for _, team := range order {
		row := totals[team]
		if row.Games == 0 {
			continue
		}
		rows = append(rows, TeamAverage{
			Team:    team,
			Average: float64(row.Score) / float64(row.Games),
			Games:   row.Games,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})
	return rows
}

// ScheduleTotals returns per-team total scores derived from played matches in
// the schedule rather than the feed, highest first. Every rostered team gets a
// row even with no matches played
func ScheduleTotals(s *shared.Schedule) []TeamScore {
	totals := make(map[string]*TeamScore, len(s.Teams))
	for _, team := range s.Teams {
		totals[team] = &TeamScore{Team: team}
	}

	for i := range s.Matches {
		match := &s.Matches[i]
		if !match.Played {
			continue
		}
		if row, ok := totals[match.Team1]; ok {
			row.Score += match.Score1
			row.Games++
		}
		if row, ok := totals[match.Team2]; ok {
			row.Score += match.Score2
			row.Games++
		}
	}

	rows := make([]TeamScore, 0, len(s.Teams))
	for _, team := range s.Teams {
		rows = append(rows, *totals[team])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	return rows
}

// DisplayRanks returns each team's display rank from feed totals. The display
// convention ranks ascending: rank 1 is the team with the lowest cumulative
// score
func DisplayRanks(games []external.GameRecord) map[string]int {
	order, totals := accumulate(games)

	rows := make([]TeamScore, 0, len(order))
	for _, team := range order {
		rows = append(rows, *totals[team])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score < rows[j].Score
	})

	ranks := make(map[string]int, len(rows))
	for i, row := range rows {
		ranks[row.Team] = i + 1
	}
	return ranks
}

// NextGameNumber returns one more than the highest game number in the feed,
// or 1 for an empty feed
func NextGameNumber(games []external.GameRecord) int {
	highest := 0
	for _, game := range games {
		if game.GameNumber > highest {
			highest = game.GameNumber
		}
	}
	return highest + 1
}
