package storage

import "fmt"

// AppendCommandToHistory records a command for a guild, keeping only the most
// recent entries.
func (s *Storage) AppendCommandToHistory(guildID string, rec CommandHistory) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history, err := s.CommandsHistory(guildID)
	if err != nil {
		return err
	}

	history = append(history, rec)
	if len(history) > commandHistoryLimit {
		history = history[len(history)-commandHistoryLimit:]
	}
	if err := s.ds.Put(historyPrefix+guildID, history); err != nil {
		return fmt.Errorf("failed to store command history: %w", err)
	}
	return nil
}

// CommandsHistory returns the recorded commands of a guild, oldest first.
func (s *Storage) CommandsHistory(guildID string) ([]CommandHistory, error) {
	var history []CommandHistory
	if _, err := s.ds.Get(historyPrefix+guildID, &history); err != nil {
		return nil, err
	}
	return history, nil
}
