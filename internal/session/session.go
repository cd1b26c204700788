// Package session tracks which document is active and whether its
// initial cursor restoration has completed, so a move notification
// caused by our own programmatic repositioning can be told apart from
// genuine user navigation.
package session

// Phase is the restoration progress of the active document.
type Phase int

const (
	// Opening means a document just became active and no stored
	// position has been applied yet.
	Opening Phase = iota

	// Restoring means a programmatic move to the stored position was
	// issued and its echo notification is still outstanding.
	Restoring

	// Settled means restoration completed (or was not needed); move
	// notifications are now authoritative.
	Settled
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Restoring:
		return "restoring"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// State is the per-active-document state machine. The zero value has no
// active document. State is not synchronized; it is owned and serialized
// by the lifecycle coordinator.
type State struct {
	key    string
	phase  Phase
	active bool
}

// Activate makes key the active document and resets the phase to
// Opening, discarding any previous session.
func (s *State) Activate(key string) {
	s.key = key
	s.phase = Opening
	s.active = true
}

// Deactivate discards the session, e.g. when the active document closes.
func (s *State) Deactivate() {
	s.key = ""
	s.phase = Opening
	s.active = false
}

// MarkRestoring records that a programmatic move was issued for the
// active document.
func (s *State) MarkRestoring() {
	if s.active {
		s.phase = Restoring
	}
}

// Settle records that restoration completed for the active document.
func (s *State) Settle() {
	if s.active {
		s.phase = Settled
	}
}

// Rename retargets the session to newKey, preserving the phase. Used
// when the active document is renamed without being re-opened.
func (s *State) Rename(newKey string) {
	if s.active {
		s.key = newKey
	}
}

// IsActive reports whether key is the active document.
func (s *State) IsActive(key string) bool {
	return s.active && s.key == key
}

// ActiveKey returns the active document key, or "" if none.
func (s *State) ActiveKey() string {
	if !s.active {
		return ""
	}
	return s.key
}

// Phase returns the restoration phase of the active document.
func (s *State) Phase() Phase {
	return s.phase
}

// Settled reports whether move notifications are authoritative.
func (s *State) Settled() bool {
	return s.active && s.phase == Settled
}
