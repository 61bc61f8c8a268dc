/* test_mocks.go
 * Contains mock structures and helpers for testing the API package and its
 * consumers (web handlers, bot handlers)
 */

package api

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"scorix-ops/api/external"
	"scorix-ops/api/logic"
	"scorix-ops/api/shared"
	"scorix-ops/api/store"
)

// MockFeed implements the external feed interface for testing
type MockFeed struct {
	// Storage for mock data
	Games []external.GameRecord

	// Captured writes
	Pushed    []external.GameRecord
	Snapshots []external.DisplaySnapshot
	Announced []shared.Match

	// Error injection for testing error paths
	FetchGamesError     error
	PushGameError       error
	PublishDisplayError error
	AnnounceMatchError  error
}

// Ensure MockFeed implements the feed interface
var _ external.Interface = (*MockFeed)(nil)

func (m *MockFeed) FetchGames() ([]external.GameRecord, error) {
	if m.FetchGamesError != nil {
		return nil, m.FetchGamesError
	}
	games := make([]external.GameRecord, len(m.Games))
	copy(games, m.Games)
	return games, nil
}

func (m *MockFeed) PushGame(game external.GameRecord) error {
	if m.PushGameError != nil {
		return m.PushGameError
	}
	m.Pushed = append(m.Pushed, game)
	// Mirror the upsert semantics so follow-up fetches see the write
	for i := range m.Games {
		if m.Games[i].GameNumber == game.GameNumber {
			m.Games[i] = game
			return nil
		}
	}
	m.Games = append(m.Games, game)
	return nil
}

func (m *MockFeed) PublishDisplay(snapshot external.DisplaySnapshot) error {
	if m.PublishDisplayError != nil {
		return m.PublishDisplayError
	}
	m.Snapshots = append(m.Snapshots, snapshot)
	return nil
}

func (m *MockFeed) AnnounceMatch(match shared.Match) error {
	if m.AnnounceMatchError != nil {
		return m.AnnounceMatchError
	}
	m.Announced = append(m.Announced, match)
	return nil
}

func (m *MockFeed) Disconnect(ctx context.Context) error {
	return nil
}

// NewTestAPI creates an API backed by a MockFeed and stores persisting under
// dir, bypassing the mongo connection NewAPI makes. Regeneration shuffling is
// off so match order is deterministic
func NewTestAPI(dir string) (*API, *MockFeed) {
	log := logrus.New()
	feed := &MockFeed{}
	a := &API{
		Store:       store.NewScheduleStore(filepath.Join(dir, "schedule.json"), false, log),
		Finals:      store.NewFinalsStore(filepath.Join(dir, "finals_schedule.json"), log),
		Notes:       store.NewNotesStore(filepath.Join(dir, "team_notes.json"), log),
		Feed:        feed,
		Metric:      logic.MetricTotal,
		TableNumber: "Table 1",
		Log:         log,
	}
	a.Store.Load()
	a.bracket = a.Finals.Load()
	return a, feed
}
