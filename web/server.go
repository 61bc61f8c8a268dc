//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming
 * connections. Excluded from test coverage as it blocks and requires real
 * network binding.
 */

package web

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Start initializes and starts the HTTP server with the given configuration
func Start(cfg Config) error {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	hub := NewHub(cfg.Log)
	go hub.Run()

	s := &Server{
		api: cfg.API,
		log: cfg.Log,
		hub: hub,
	}

	// Tablets report at most a few updates per minute each; anything beyond
	// this is a retry storm
	limiter := newIPLimiter(30, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/update", limiter.limit(s.UpdateHandler))
	mux.HandleFunc("/latest", s.LatestHandler)
	mux.HandleFunc("/display", s.DisplayHandler)
	mux.HandleFunc("/ws", hub.serveWs)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	cfg.Log.WithField("addr", cfg.Addr).Info("HTTP server listening")
	return srv.ListenAndServe()
}
