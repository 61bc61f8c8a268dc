/* schedule.go
 * Contains the ScheduleStore: owns the canonical in-memory schedule and its
 * JSON file persistence, plus the roster operations that regenerate the match
 * list. Mutations are in-memory only; callers decide when to Save
 */

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"scorix-ops/api/logic"
	"scorix-ops/api/shared"
)

// ScheduleStore holds the canonical schedule. The store assumes at most one
// mutator at a time; serialization across the refresh timer and user actions
// is the calling application's responsibility.
type ScheduleStore struct {
	Path     string
	Shuffle  bool
	Schedule *shared.Schedule
	Log      *logrus.Logger
}

// NewScheduleStore creates a store persisting to path. Shuffle controls
// whether regenerated match lists are randomly permuted; it is configuration,
// not a per-call decision
func NewScheduleStore(path string, shuffle bool, log *logrus.Logger) *ScheduleStore {
	if log == nil {
		log = logrus.New()
	}
	return &ScheduleStore{
		Path:     path,
		Shuffle:  shuffle,
		Schedule: shared.NewSchedule(),
		Log:      log,
	}
}

// Load reads the schedule from disk. A missing or malformed file yields an
// empty schedule rather than an error so the application stays usable offline;
// the problem is logged as a diagnostic
func (s *ScheduleStore) Load() *shared.Schedule {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Log.WithError(err).WithField("path", s.Path).Warn("could not read schedule file, starting empty")
		}
		s.Schedule = shared.NewSchedule()
		return s.Schedule
	}

	var schedule shared.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		s.Log.WithError(err).WithField("path", s.Path).Warn("malformed schedule file, starting empty")
		s.Schedule = shared.NewSchedule()
		return s.Schedule
	}

	if schedule.Teams == nil {
		schedule.Teams = []string{}
	}
	if schedule.Matches == nil {
		schedule.Matches = []shared.Match{}
	}
	s.Schedule = &schedule
	return s.Schedule
}

// Save writes the schedule to disk. Unlike Load, failures propagate so the
// caller can warn that data was not durably stored
func (s *ScheduleStore) Save() error {
	data, err := json.MarshalIndent(s.Schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}
	return nil
}

// MatchCount infers the current matches-per-pairing replication factor from
// the number of matches involving the first rostered team, with a minimum of 1
func (s *ScheduleStore) MatchCount() int {
	if len(s.Schedule.Teams) == 0 {
		return 1
	}
	first := s.Schedule.Teams[0]
	count := 0
	for i := range s.Schedule.Matches {
		if s.Schedule.Matches[i].Team1 == first || s.Schedule.Matches[i].Team2 == first {
			count++
		}
	}
	// count covers every pairing that involves the first team, one per
	// opponent per repetition
	if opponents := len(s.Schedule.Teams) - 1; opponents > 0 {
		count /= opponents
	}
	if count < 1 {
		return 1
	}
	return count
}

// AddTeam appends a team to the roster and regenerates the entire match list.
// Regeneration deliberately discards in-progress match state: round robin
// pairings change shape when the roster changes
func (s *ScheduleStore) AddTeam(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrEmptyTeamName
	}
	if s.Schedule.HasTeam(name) {
		return fmt.Errorf("%w: %q", shared.ErrDuplicateTeam, name)
	}

	replication := s.MatchCount()
	s.Schedule.Teams = append(s.Schedule.Teams, name)
	s.Schedule.Matches = logic.GenerateRoundRobin(s.Schedule.Teams, replication, s.Shuffle)
	return nil
}

// RemoveTeam drops a team from the roster and regenerates the match list
func (s *ScheduleStore) RemoveTeam(name string) error {
	idx := -1
	for i, t := range s.Schedule.Teams {
		if t == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", shared.ErrTeamNotFound, name)
	}

	replication := s.MatchCount()
	s.Schedule.Teams = append(s.Schedule.Teams[:idx], s.Schedule.Teams[idx+1:]...)
	s.Schedule.Matches = logic.GenerateRoundRobin(s.Schedule.Teams, replication, s.Shuffle)
	return nil
}

// SetMatchCount regenerates the match list with a new replication factor.
// Setting the current factor is a no-op so accidental re-entry does not wipe
// recorded scores
func (s *ScheduleStore) SetMatchCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidMatchCount, n)
	}
	if n == s.MatchCount() {
		return nil
	}
	s.Schedule.Matches = logic.GenerateRoundRobin(s.Schedule.Teams, n, s.Shuffle)
	return nil
}

// Regenerate rebuilds the match list with the current roster and inferred
// replication factor, discarding all match state
func (s *ScheduleStore) Regenerate() {
	s.Schedule.Matches = logic.GenerateRoundRobin(s.Schedule.Teams, s.MatchCount(), s.Shuffle)
}
