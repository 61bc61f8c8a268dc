/* models.go
 * Contains the configuration and server types for the web package
 */

package web

import (
	"sync"

	"github.com/sirupsen/logrus"

	"scorix-ops/api/api"
	"scorix-ops/api/external"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	Log  *logrus.Logger
}

// Server handles score ingestion from scoring tablets and serves display data
// to dashboard clients
type Server struct {
	api *api.API
	log *logrus.Logger
	hub *Hub

	// Most recent raw game record received on /update, served on /latest
	mu     sync.RWMutex
	latest *external.GameRecord
}
