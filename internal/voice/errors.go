package voice

import (
	"errors"
	"fmt"
)

var (
	ErrNoTrackPlaying = errors.New("no track is currently playing")
	ErrNotConnected   = errors.New("not connected to a voice channel")
	ErrNoVoiceChannel = errors.New("voice channel ID is not set")
)

// UserVisibleError is an expected condition that is shown to the requester
// and never treated as a fault.
type UserVisibleError struct {
	Key  string
	Args []any
}

func (e *UserVisibleError) Error() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	return fmt.Sprintf("%s %v", e.Key, e.Args)
}

// NewUserVisible builds a UserVisibleError for a translation key.
func NewUserVisible(key string, args ...any) *UserVisibleError {
	return &UserVisibleError{Key: key, Args: args}
}

// CapacityError reports that the queue cap cut an enqueue short. Entries up
// to the cap were kept.
type CapacityError struct {
	Added   int
	Dropped int
	Max     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("queue is full (max %d): added %d, dropped %d", e.Max, e.Added, e.Dropped)
}

// BackendLoadError reports a query the audio backend could not resolve.
type BackendLoadError struct {
	Query     string
	NoMatches bool
	Reason    string
	Err       error
}

func (e *BackendLoadError) Error() string {
	switch {
	case e.NoMatches:
		return fmt.Sprintf("no matches for %q", e.Query)
	case e.Err != nil:
		return fmt.Sprintf("failed to load %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("failed to load %q: %s", e.Query, e.Reason)
}

func (e *BackendLoadError) Unwrap() error { return e.Err }

// PersistenceError reports a resume snapshot that could not be written.
type PersistenceError struct {
	GuildID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to store resume snapshot for guild %s: %v", e.GuildID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// TransportError reports a failed send, edit or delete on the messaging layer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("message %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsUserFacing reports whether err has already been reported to the user by
// the pipeline and should not be logged as a fault.
func IsUserFacing(err error) bool {
	var (
		uv  *UserVisibleError
		ce  *CapacityError
		ble *BackendLoadError
	)
	return errors.As(err, &uv) || errors.As(err, &ce) || errors.As(err, &ble)
}
