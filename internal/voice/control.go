package voice

// Source tells which kind of user action produced a ControlEvent.
type Source int

const (
	SourceSlash Source = iota
	SourceText
	SourceMenu
)

func (s Source) String() string {
	switch s {
	case SourceSlash:
		return "slash"
	case SourceText:
		return "text"
	case SourceMenu:
		return "menu"
	}
	return "unknown"
}

// ControlEvent is the uniform view of one user action, whatever surface it
// came from. A new one is built per action and dropped after its last status
// update.
type ControlEvent interface {
	// Reply sends a one-shot acknowledgement visible to the requester.
	Reply(text string) error
	// UpdateStatus creates the status message of this action on first use and
	// edits it in place afterwards.
	UpdateStatus(text string) error
	Locale() string
	RequestingUser() User
	TextChannel() string
	Source() Source
	// Closed reports whether the action's reply lifecycle is over.
	Closed() bool
}

// QueueEntry is one queued track. The originating event is only borrowed to
// announce the entry once it starts; the queue never keeps it alive longer.
type QueueEntry struct {
	Track       Track
	RequestedBy User
	origin      ControlEvent
}

// NewQueueEntry builds an entry for track requested through ev. ev may be nil.
func NewQueueEntry(track Track, ev ControlEvent) *QueueEntry {
	e := &QueueEntry{Track: track, origin: ev}
	if ev != nil {
		e.RequestedBy = ev.RequestingUser()
	}
	return e
}

// takeOrigin hands out the origin at most once.
func (e *QueueEntry) takeOrigin() ControlEvent {
	o := e.origin
	e.origin = nil
	if o == nil || o.Closed() {
		return nil
	}
	return o
}
