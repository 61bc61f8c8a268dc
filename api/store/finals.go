/* finals.go
 * Contains the FinalsStore: JSON file persistence for the finals bracket,
 * kept in a separate document from the round robin schedule
 */

package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"scorix-ops/api/shared"
)

// FinalsStore persists the finals bracket to its own JSON file.
type FinalsStore struct {
	Path string
	Log  *logrus.Logger
}

// NewFinalsStore creates a finals store persisting to path
func NewFinalsStore(path string, log *logrus.Logger) *FinalsStore {
	if log == nil {
		log = logrus.New()
	}
	return &FinalsStore{Path: path, Log: log}
}

// Load reads the bracket from disk. A missing or malformed file yields nil,
// meaning finals have not started; the problem is logged as a diagnostic
func (s *FinalsStore) Load() *shared.FinalsBracket {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Log.WithError(err).WithField("path", s.Path).Warn("could not read finals file")
		}
		return nil
	}

	var bracket shared.FinalsBracket
	if err := json.Unmarshal(data, &bracket); err != nil {
		s.Log.WithError(err).WithField("path", s.Path).Warn("malformed finals file, ignoring")
		return nil
	}
	return &bracket
}

// Save writes the bracket to disk; failures propagate to the caller
func (s *FinalsStore) Save(bracket *shared.FinalsBracket) error {
	data, err := json.MarshalIndent(bracket, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode finals bracket: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write finals file: %w", err)
	}
	return nil
}
