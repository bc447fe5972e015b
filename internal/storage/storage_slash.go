package storage

import "fmt"

// SlashHashes returns the definition hashes of the slash commands last
// registered in a guild, keyed by command name.
func (s *Storage) SlashHashes(guildID string) (map[string]string, error) {
	hashes := make(map[string]string)
	if _, err := s.ds.Get(slashPrefix+guildID, &hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}

func (s *Storage) SetSlashHashes(guildID string, hashes map[string]string) error {
	if err := s.ds.Put(slashPrefix+guildID, hashes); err != nil {
		return fmt.Errorf("failed to store slash command hashes: %w", err)
	}
	return nil
}
