package playlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Track is one entry of a stored playlist. Ref is what gets loaded again:
// usually the track URL.
type Track struct {
	Ref   string
	Title string
}

type Playlist struct {
	ID         int64
	GuildID    string
	Name       string
	CreatedBy  string
	CreatedAt  time.Time
	TrackCount int
	Tracks     []Track // only filled by GetPlaylistByID
}

// Refs returns the track references in play order.
func (p *Playlist) Refs() []string {
	refs := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		refs[i] = t.Ref
	}
	return refs
}

// SavePlaylist stores tracks under name for a guild, replacing a playlist of
// the same name.
func (s *Store) SavePlaylist(ctx context.Context, guildID, name, createdBy string, tracks []Track) (*Playlist, error) {
	if name == "" {
		return nil, errors.New("playlist name is empty")
	}
	if len(tracks) == 0 {
		return nil, errors.New("playlist has no tracks")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE guild_id = ? AND name = ?`, guildID, name); err != nil {
		return nil, fmt.Errorf("replacing playlist: %w", err)
	}

	p := &Playlist{GuildID: guildID, Name: name, CreatedBy: createdBy, TrackCount: len(tracks), Tracks: tracks}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO playlists (guild_id, name, created_by) VALUES (?, ?, ?) RETURNING id, created_at`,
		guildID, name, createdBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO playlist_tracks (playlist_id, position, ref, title) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	for i, t := range tracks {
		if _, err := stmt.ExecContext(ctx, p.ID, i, t.Ref, t.Title); err != nil {
			return nil, fmt.Errorf("adding track %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlaylistByID returns a playlist with its tracks, or nil when it does not
// exist.
func (s *Store) GetPlaylistByID(ctx context.Context, id int64) (*Playlist, error) {
	var p Playlist
	err := s.db.QueryRowContext(ctx,
		`SELECT id, guild_id, name, created_by, created_at FROM playlists WHERE id = ?`, id,
	).Scan(&p.ID, &p.GuildID, &p.Name, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting playlist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ref, title FROM playlist_tracks WHERE playlist_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("listing playlist tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.Ref, &t.Title); err != nil {
			return nil, err
		}
		p.Tracks = append(p.Tracks, t)
	}
	p.TrackCount = len(p.Tracks)
	return &p, rows.Err()
}

// ListPlaylists returns the playlists of a guild ordered by name, without
// their tracks.
func (s *Store) ListPlaylists(ctx context.Context, guildID string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.guild_id, p.name, p.created_by, p.created_at, COUNT(t.position)
		FROM playlists p LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		WHERE p.guild_id = ?
		GROUP BY p.id
		ORDER BY p.name`, guildID)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	defer rows.Close()

	playlists := []Playlist{}
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.GuildID, &p.Name, &p.CreatedBy, &p.CreatedAt, &p.TrackCount); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// DeletePlaylist removes a playlist of a guild. It reports false when there
// was nothing to delete.
func (s *Store) DeletePlaylist(ctx context.Context, guildID string, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ? AND guild_id = ?`, id, guildID)
	if err != nil {
		return false, fmt.Errorf("deleting playlist: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
