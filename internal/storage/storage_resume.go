package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/vinny/internal/voice"
)

// ResumeStore persists one resume snapshot per guild. Every write is flushed
// to disk before it returns so a snapshot survives an immediate exit.
type ResumeStore struct {
	s *Storage
}

// Resume returns the snapshot store backed by s.
func (s *Storage) Resume() *ResumeStore {
	return &ResumeStore{s: s}
}

func (r *ResumeStore) Put(snap voice.ResumeSnapshot) error {
	if snap.GuildID == "" {
		return errors.New("snapshot has no guild ID")
	}
	if err := r.s.ds.Put(resumePrefix+snap.GuildID, snap); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return r.flush()
}

// Get returns the snapshot of guildID, reporting false when there is none.
func (r *ResumeStore) Get(guildID string) (voice.ResumeSnapshot, bool, error) {
	var snap voice.ResumeSnapshot
	ok, err := r.s.ds.Get(resumePrefix+guildID, &snap)
	if err != nil {
		return voice.ResumeSnapshot{}, false, err
	}
	return snap, ok, nil
}

func (r *ResumeStore) Remove(guildID string) error {
	if err := r.s.ds.Delete(resumePrefix + guildID); err != nil {
		return err
	}
	return r.flush()
}

// RemoveAll drops every stored snapshot.
func (r *ResumeStore) RemoveAll() error {
	for _, key := range r.s.ds.Keys(resumePrefix) {
		if err := r.s.ds.Delete(key); err != nil {
			return err
		}
	}
	return r.flush()
}

// All returns every stored snapshot ordered by guild ID. Entries that cannot
// be decoded are logged and skipped.
func (r *ResumeStore) All() ([]voice.ResumeSnapshot, error) {
	keys := r.s.ds.Keys(resumePrefix)
	out := make([]voice.ResumeSnapshot, 0, len(keys))
	for _, key := range keys {
		snap, ok, err := r.Get(strings.TrimPrefix(key, resumePrefix))
		if err != nil {
			r.s.log.Warn().Err(err).Str("key", key).Msg("skipping unreadable snapshot")
			continue
		}
		if ok {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (r *ResumeStore) flush() error {
	if err := r.s.ds.SaveToFile(); err != nil {
		return fmt.Errorf("failed to flush datastore: %w", err)
	}
	return nil
}
