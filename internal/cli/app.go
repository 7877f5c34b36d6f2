// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - shared runtime wiring for all command surfaces.
package cli

import (
	"log"
	"time"

	"github.com/jeranaias/collegegenie-tui/internal/config"
	"github.com/jeranaias/collegegenie-tui/internal/provider"
	"github.com/jeranaias/collegegenie-tui/internal/storage"
	"github.com/jeranaias/collegegenie-tui/internal/tasks"
)

// App bundles the wired runtime every surface needs: configuration, the
// response provider, and the optional history sink.
type App struct {
	Cfg      *config.Config
	Provider *provider.Provider

	// Sink is nil in anonymous mode or when persistence is disabled.
	Sink *storage.Sink

	store *storage.ChatStore
	queue *tasks.Queue
}

// NewApp builds the runtime from configuration. anonymous forces the
// history sink off regardless of config.
//
// RELIABILITY: persistence failures never block startup. If the history
// database cannot be opened the app runs anonymously and logs why.
func NewApp(cfg *config.Config, anonymous bool) *App {
	client := provider.NewClient(provider.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		APIKey:     cfg.API.Key,
		Model:      cfg.API.Model,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.API.MaxRetries,
	})

	app := &App{Cfg: cfg}

	if !anonymous && cfg.PersistenceEnabled() {
		dbPath, err := cfg.DatabasePath()
		if err == nil {
			var store *storage.ChatStore
			store, err = storage.OpenChatStore(dbPath)
			if err == nil {
				app.store = store
				app.queue = tasks.NewQueue()
				app.Sink = storage.NewSink(store, app.queue, cfg.User.OwnerID)
			}
		}
		if err != nil {
			log.Printf("history disabled: %v", err)
		}
	}

	var recorder provider.Recorder
	if app.Sink != nil {
		recorder = app.Sink
	}
	app.Provider = provider.New(client, recorder)

	return app
}

// Saving reports whether chat activity is being persisted.
func (a *App) Saving() bool {
	return a.Sink != nil && a.Sink.Enabled()
}

// Close drains pending history writes and closes the database.
func (a *App) Close() {
	if a.queue != nil {
		a.queue.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("closing history database: %v", err)
		}
	}
}
