// Package mobile is the gomobile entry point: the app extracts the board view
// and starts a loopback server for its web view.
package mobile

import (
	"log"
	"net/http"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
)

// NewServer builds the handler served by StartServer. An empty dbDir keeps
// the archive in memory.
func NewServer(webDir, dbDir string) (http.Handler, *storage.Storage, error) {
	var (
		store *storage.Storage
		err   error
	)
	if dbDir == "" {
		store, err = storage.OpenInMemory()
	} else {
		store, err = storage.Open(dbDir)
	}
	if err != nil {
		return nil, nil, err
	}
	h := httpserver.NewHandler(game.NewManager(), store, engine.DefaultDepth)
	return httpserver.NewServer(h, webDir), store, nil
}

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// dbDir: app-private directory for the game archive
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, dbDir string, port string) {
	srv, store, err := NewServer(webDir, dbDir)
	if err != nil {
		log.Printf("Server Error: %v", err)
		return
	}

	// Run in background so it doesn't block the Android UI thread
	go func() {
		defer store.Close()
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
