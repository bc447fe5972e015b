// Package config loads bot settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/vinny/internal/lavalink"
)

// DefaultCommandPrefix is the text command prefix when COMMAND_PREFIX is unset.
const DefaultCommandPrefix = "~"

type Config struct {
	DiscordToken   string   `env:"DISCORD_TOKEN,required"`
	CommandPrefix  string   `env:"COMMAND_PREFIX" envDefault:"~"`
	OwnerIDs       []string `env:"OWNER_IDS" envSeparator:","`
	GuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`

	StoragePath    string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	PlaylistDBPath string `env:"PLAYLIST_DB_PATH" envDefault:"playlists.db"`

	SearchProvider string        `env:"DEFAULT_SEARCH_PROVIDER" envDefault:"scsearch:"`
	MaxQueueSize   int           `env:"MAX_QUEUE_SIZE" envDefault:"100"`
	DefaultVolume  int           `env:"DEFAULT_VOLUME" envDefault:"100"`
	StatusTTL      time.Duration `env:"STATUS_TTL" envDefault:"15m"`

	ResumeMaxAge      time.Duration `env:"RESUME_MAX_AGE" envDefault:"30m"`
	ResumeConcurrency int           `env:"RESUME_CONCURRENCY" envDefault:"4"`
	RebootExit        bool          `env:"REBOOT_EXIT" envDefault:"true"`
	AnnounceRate      float64       `env:"ANNOUNCE_RATE" envDefault:"5"`

	LavalinkNodes string `env:"LAVALINK_NODES" envDefault:"local|localhost:2333|youshallnotpass"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// LogConsole prints human-readable logs instead of JSON.
	LogConsole bool `env:"LOG_CONSOLE" envDefault:"true"`
}

// Load reads .env files (missing ones are ignored) and parses the
// environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("MAX_QUEUE_SIZE must be positive, got %d", c.MaxQueueSize)
	}
	if c.DefaultVolume < 0 || c.DefaultVolume > 150 {
		return fmt.Errorf("DEFAULT_VOLUME must be between 0 and 150, got %d", c.DefaultVolume)
	}
	if c.ResumeConcurrency <= 0 {
		return fmt.Errorf("RESUME_CONCURRENCY must be positive, got %d", c.ResumeConcurrency)
	}
	if c.AnnounceRate <= 0 {
		return fmt.Errorf("ANNOUNCE_RATE must be positive, got %v", c.AnnounceRate)
	}
	if _, err := c.Nodes(); err != nil {
		return err
	}
	return nil
}

// Nodes parses LAVALINK_NODES.
func (c *Config) Nodes() ([]lavalink.Node, error) {
	nodes, err := lavalink.ParseNodes(c.LavalinkNodes)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.New("LAVALINK_NODES is empty")
	}
	return nodes, nil
}

// IsOwner reports whether userID may run owner-only commands.
func (c *Config) IsOwner(userID string) bool {
	return userID != "" && slices.Contains(c.OwnerIDs, userID)
}

// IsGuildBlacklisted reports whether the bot must leave guildID.
func (c *Config) IsGuildBlacklisted(guildID string) bool {
	return slices.Contains(c.GuildBlacklist, guildID)
}
