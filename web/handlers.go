/* handlers.go
 * Contains the HTTP handlers: score ingestion from scoring tablets, the
 * latest raw record, and the display payload for dashboard clients
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"scorix-ops/api/external"
	"scorix-ops/api/shared"
)

// UpdateHandler ingests a game record POSTed by a scoring tablet, reconciles
// the schedule against the feed and responds with the fresh display payload.
// The payload is also broadcast to connected WebSocket dashboards
func (s *Server) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var game external.GameRecord
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		http.Error(w, "invalid game record", http.StatusBadRequest)
		return
	}

	if err := s.api.IngestGame(game); err != nil {
		// A record the tablet itself got wrong is the client's fault, not ours
		if errors.Is(err, shared.ErrSelfPairedMatch) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.WithError(err).Error("failed to ingest game record")
		http.Error(w, "failed to ingest game record", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.latest = &game
	s.mu.Unlock()

	payload, err := s.api.DisplayPayload()
	if err != nil {
		s.log.WithError(err).Error("failed to compute display payload")
		http.Error(w, "failed to compute display payload", http.StatusInternalServerError)
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(payload)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// LatestHandler serves the most recent raw game record received on /update
func (s *Server) LatestHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if latest == nil {
		w.Write([]byte("{}"))
		return
	}
	json.NewEncoder(w).Encode(latest)
}

// DisplayHandler serves the current display payload
func (s *Server) DisplayHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := s.api.DisplayPayload()
	if err != nil {
		s.log.WithError(err).Error("failed to compute display payload")
		http.Error(w, "failed to compute display payload", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
