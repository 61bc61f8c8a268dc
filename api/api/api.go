/* api.go
 * This file contains the public methods for interacting with the tournament
 * engine. The facade owns the mutual-exclusion boundary required by the core:
 * web handlers, bot commands and the sync poller all come through here, so the
 * lock-free logic package only ever sees one mutator at a time
 */

package api

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"scorix-ops/api/external"
	"scorix-ops/api/logic"
	"scorix-ops/api/shared"
	"scorix-ops/api/store"
)

// API provides the high-level operations over the schedule, the finals
// bracket and the external scoring feed
type API struct {
	Store       *store.ScheduleStore
	Finals      *store.FinalsStore
	Notes       *store.NotesStore
	Feed        external.Interface
	Metric      logic.QualifierMetric
	TableNumber string
	Log         *logrus.Logger

	mu      sync.Mutex
	bracket *shared.FinalsBracket
}

// NewAPI creates a new API instance with the provided configuration. The
// schedule and finals bracket are loaded eagerly; a missing or unreadable
// schedule degrades to an empty one so the application stays usable offline
func NewAPI(cfg Config) (*API, error) {
	if cfg.Database == "" || cfg.SchedulePath == "" {
		return nil, fmt.Errorf("database and schedule path are required")
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	if cfg.Metric == "" {
		cfg.Metric = logic.MetricTotal
	}
	if cfg.TableNumber == "" {
		cfg.TableNumber = "Table 1"
	}

	feed, err := external.NewFeed(cfg.Database, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed: %w", err)
	}

	a := &API{
		Store:       store.NewScheduleStore(cfg.SchedulePath, cfg.Shuffle, cfg.Log),
		Finals:      store.NewFinalsStore(cfg.FinalsPath, cfg.Log),
		Notes:       store.NewNotesStore(cfg.NotesPath, cfg.Log),
		Feed:        feed,
		Metric:      cfg.Metric,
		TableNumber: cfg.TableNumber,
		Log:         cfg.Log,
	}
	a.Store.Load()
	a.bracket = a.Finals.Load()
	return a, nil
}

// Close disconnects the feed client
func (a *API) Close(ctx context.Context) error {
	return a.Feed.Disconnect(ctx)
}

// Teams returns a copy of the roster
func (a *API) Teams() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	teams := make([]string, len(a.Store.Schedule.Teams))
	copy(teams, a.Store.Schedule.Teams)
	return teams
}

// Matches returns a copy of the match list
func (a *API) Matches() []shared.Match {
	a.mu.Lock()
	defer a.mu.Unlock()
	matches := make([]shared.Match, len(a.Store.Schedule.Matches))
	copy(matches, a.Store.Schedule.Matches)
	return matches
}

// Bracket returns the current finals bracket, or nil if finals have not
// started
func (a *API) Bracket() *shared.FinalsBracket {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bracket == nil {
		return nil
	}
	b := *a.bracket
	return &b
}

// AddTeam adds a team to the roster, regenerates the match list and persists
// the schedule
func (a *API) AddTeam(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.Store.AddTeam(name); err != nil {
		return err
	}
	return a.Store.Save()
}

// RemoveTeam removes a team from the roster, regenerates the match list and
// persists the schedule
func (a *API) RemoveTeam(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.Store.RemoveTeam(name); err != nil {
		return err
	}
	return a.Store.Save()
}

// SetMatchCount changes the matches-per-pairing replication factor and
// persists the schedule
func (a *API) SetMatchCount(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.Store.SetMatchCount(n); err != nil {
		return err
	}
	return a.Store.Save()
}

// mutateMatch runs one lifecycle mutation under the facade lock and persists
// the schedule if it succeeded
func (a *API) mutateMatch(fn func(s *shared.Schedule) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := fn(a.Store.Schedule); err != nil {
		return err
	}
	return a.Store.Save()
}

// SetMatchPlayed sets the played flag on the match at idx
func (a *API) SetMatchPlayed(idx int, played bool) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchPlayed(s, idx, played)
	})
}

// SetMatchScores sets both scores on the match at idx and marks it played
func (a *API) SetMatchScores(idx int, score1, score2 int) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchScores(s, idx, score1, score2)
	})
}

// SetMatchScore sets one side's score on the match at idx without marking it
// played
func (a *API) SetMatchScore(idx int, teamNumber int, score int) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchScore(s, idx, teamNumber, score)
	})
}

// SetMatchPenalty sets the penalty flag for one side of the match at idx
func (a *API) SetMatchPenalty(idx int, teamNumber int, penalty bool) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchPenalty(s, idx, teamNumber, penalty)
	})
}

// SetMatchStatus sets the lifecycle status of the match at idx
func (a *API) SetMatchStatus(idx int, status shared.MatchStatus) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchStatus(s, idx, status)
	})
}

// SetMatchReferee assigns a referee to the match at idx
func (a *API) SetMatchReferee(idx int, referee string) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		return logic.SetMatchReferee(s, idx, referee)
	})
}

// SetMatchComment replaces the comment on the match at idx. The previous
// non-empty comment is pushed into the comment history first so it is not lost
func (a *API) SetMatchComment(idx int, comment string) error {
	return a.mutateMatch(func(s *shared.Schedule) error {
		m, err := logic.MatchAt(s, idx)
		if err != nil {
			return err
		}
		if m.Comments != "" {
			if err := logic.AppendCommentHistory(s, idx, m.Comments, time.Now()); err != nil {
				return err
			}
		}
		return logic.SetMatchComment(s, idx, comment)
	})
}

// SetNextUp flags the match at idx as next up, clearing the flag everywhere
// else, and announces it to the live announcement collection
func (a *API) SetNextUp(idx int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := logic.SetNextUp(a.Store.Schedule, idx); err != nil {
		return err
	}
	if err := a.Store.Save(); err != nil {
		return err
	}
	if err := a.Feed.AnnounceMatch(a.Store.Schedule.Matches[idx]); err != nil {
		// The flag is already persisted; a failed announcement is not fatal
		a.Log.WithError(err).Warn("failed to publish live announcement")
	}
	return nil
}

// SyncScores pulls all game records from the feed, reconciles them into the
// schedule, persists it and publishes a fresh display snapshot. Safe to run
// repeatedly; unchanged feed data results in no score history growth
func (a *API) SyncScores() error {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	changed := logic.Reconcile(a.Store.Schedule, games, time.Now())
	if err := a.Store.Save(); err != nil {
		return err
	}
	if changed > 0 {
		a.Log.WithField("matches", changed).Info("score sync updated matches")
	}

	snapshot := external.DisplaySnapshot{Schedule: a.Store.Schedule, Finals: a.bracket}
	if err := a.Feed.PublishDisplay(snapshot); err != nil {
		a.Log.WithError(err).Warn("failed to publish display snapshot")
	}
	return nil
}

// PushScores writes the schedule's current scores upstream into the feed,
// upserting each covered game record by its game number
func (a *API) PushScores() error {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return err
	}

	a.mu.Lock()
	updates := logic.PushSchedule(a.Store.Schedule, games)
	a.mu.Unlock()

	for _, game := range updates {
		if err := a.Feed.PushGame(game); err != nil {
			return err
		}
	}
	return nil
}

// IngestGame stores a newly reported game record in the feed and reconciles
// the schedule against the updated feed. A record without a game number is
// assigned the next free one; a record pairing a team against itself is
// rejected before any write
func (a *API) IngestGame(game external.GameRecord) error {
	if game.Team1.Name != "" && game.Team1.Name == game.Team2.Name {
		return fmt.Errorf("%w: %q", shared.ErrSelfPairedMatch, game.Team1.Name)
	}
	if game.GameNumber == 0 {
		games, err := a.Feed.FetchGames()
		if err != nil {
			return err
		}
		game.GameNumber = logic.NextGameNumber(games)
	}
	if game.Timestamp == "" {
		game.Timestamp = time.Now().Format(time.RFC3339)
	}
	if err := a.Feed.PushGame(game); err != nil {
		return err
	}
	return a.SyncScores()
}

// Leaderboard returns per-team total scores from the feed, highest first
func (a *API) Leaderboard() ([]logic.TeamScore, error) {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return nil, err
	}
	return logic.Leaderboard(games), nil
}

// AverageLeaderboard returns per-team average scores from the feed, highest
// first
func (a *API) AverageLeaderboard() ([]logic.TeamAverage, error) {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return nil, err
	}
	return logic.AverageLeaderboard(games), nil
}

// ScheduleTotals returns per-team totals derived from played matches in the
// schedule, highest first. Works offline since the feed is not consulted
func (a *API) ScheduleTotals() []logic.TeamScore {
	a.mu.Lock()
	defer a.mu.Unlock()
	return logic.ScheduleTotals(a.Store.Schedule)
}

// StartFinals selects the top four teams from the feed by the configured
// metric, builds the bracket and persists it
func (a *API) StartFinals() (*shared.FinalsBracket, error) {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return nil, err
	}

	qualifiers := logic.SelectQualifiers(games, a.Metric)
	bracket, err := logic.BuildBracket(qualifiers)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.bracket = bracket
	if err := a.Finals.Save(bracket); err != nil {
		return nil, err
	}
	b := *bracket
	return &b, nil
}

// RecordFinalsWinner records the winner of a finals match, advances the
// bracket and persists it
func (a *API) RecordFinalsWinner(ref logic.FinalsMatchRef, winner string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bracket == nil {
		return fmt.Errorf("finals have not started")
	}
	if err := logic.RecordWinner(a.bracket, ref, winner); err != nil {
		return err
	}
	return a.Finals.Save(a.bracket)
}

// SetFinalsScores records the score of one finals match and persists the
// bracket
func (a *API) SetFinalsScores(ref logic.FinalsMatchRef, score1, score2 int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bracket == nil {
		return fmt.Errorf("finals have not started")
	}
	if err := logic.SetFinalsScores(a.bracket, ref, score1, score2); err != nil {
		return err
	}
	return a.Finals.Save(a.bracket)
}

// DisplayPayload computes the document display clients render for the next up
// match. With no next up match the payload carries empty team fields but still
// names the table
func (a *API) DisplayPayload() (DisplayPayload, error) {
	games, err := a.Feed.FetchGames()
	if err != nil {
		return DisplayPayload{}, err
	}
	ranks := logic.DisplayRanks(games)

	a.mu.Lock()
	defer a.mu.Unlock()
	payload := DisplayPayload{TableNumber: a.TableNumber}
	idx := a.Store.Schedule.NextUpIndex()
	if idx < 0 {
		return payload, nil
	}

	match := a.Store.Schedule.Matches[idx]
	payload.MatchNumber = strconv.Itoa(idx + 1)
	payload.TeamAName = match.Team1
	payload.TeamARank = ranks[match.Team1]
	payload.TeamBName = match.Team2
	payload.TeamBRank = ranks[match.Team2]
	return payload, nil
}

// TeamNotes returns the per-team operator notes
func (a *API) TeamNotes() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Notes.Load()
}

// SetTeamNote stores a note for a team and persists the notes document
func (a *API) SetTeamNote(team, note string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	notes := a.Notes.Load()
	notes[team] = note
	return a.Notes.Save(notes)
}

// RunSync invokes SyncScores on the given interval until ctx is cancelled.
// The feed is polled, not pushed; reconciliation is idempotent so an overlap
// with a user-triggered sync is harmless
func (a *API) RunSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.SyncScores(); err != nil {
				a.Log.WithError(err).Warn("periodic score sync failed")
			}
		}
	}
}
