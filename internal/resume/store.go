// Package resume carries playback sessions across a planned restart: the
// reboot sweep snapshots every active guild before exit and the coordinator
// restores them on the next start.
package resume

import "github.com/keshon/vinny/internal/voice"

// Store is durable snapshot storage keyed by guild.
type Store interface {
	Put(snap voice.ResumeSnapshot) error
	Get(guildID string) (voice.ResumeSnapshot, bool, error)
	Remove(guildID string) error
	RemoveAll() error
	All() ([]voice.ResumeSnapshot, error)
}
