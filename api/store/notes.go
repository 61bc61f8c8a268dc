/* notes.go
 * Contains the NotesStore: free-form per-team operator notes persisted as a
 * single JSON document of team name to note text
 */

package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NotesStore persists per-team notes.
type NotesStore struct {
	Path string
	Log  *logrus.Logger
}

// NewNotesStore creates a notes store persisting to path
func NewNotesStore(path string, log *logrus.Logger) *NotesStore {
	if log == nil {
		log = logrus.New()
	}
	return &NotesStore{Path: path, Log: log}
}

// Load reads the notes document; a missing or malformed file yields an empty
// map
func (s *NotesStore) Load() map[string]string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Log.WithError(err).WithField("path", s.Path).Warn("could not read team notes file")
		}
		return map[string]string{}
	}

	var notes map[string]string
	if err := json.Unmarshal(data, &notes); err != nil {
		s.Log.WithError(err).WithField("path", s.Path).Warn("malformed team notes file, ignoring")
		return map[string]string{}
	}
	if notes == nil {
		notes = map[string]string{}
	}
	return notes
}

// Save writes the notes document; failures propagate to the caller
func (s *NotesStore) Save(notes map[string]string) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode team notes: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write team notes file: %w", err)
	}
	return nil
}
