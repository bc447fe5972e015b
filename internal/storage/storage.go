// Package storage keeps the bot's durable per-guild records in a datastore
// file: resume snapshots, command history and the hashes of registered
// slash commands.
package storage

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/datastore"
)

const (
	resumePrefix  = "resume:"
	historyPrefix = "history:"
	slashPrefix   = "slash:"

	commandHistoryLimit = 20
)

type Storage struct {
	ds  *datastore.DataStore
	log zerolog.Logger

	historyMu sync.Mutex
}

// New opens the datastore file at filePath.
func New(filePath string, logger zerolog.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = logger
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds, log: logger.With().Str("component", "storage").Logger()}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// CommandHistory is one executed command.
type CommandHistory struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Source    string    `json:"source"`
	Datetime  time.Time `json:"datetime"`
}
