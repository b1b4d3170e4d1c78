package domain

import (
	"fmt"
	"time"
)

// SessionSnapshot is the serializable form of a Session plus the metadata a
// store keeps alongside it.
type SessionSnapshot struct {
	ID           string     `json:"id"`
	TextID       int        `json:"textId"`
	Questions    []Question `json:"questions"`
	CurrentIndex int        `json:"currentIndex"`
	Answers      []Answer   `json:"answers"`
	Revealed     bool       `json:"revealed"`
	Submitted    bool       `json:"submitted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Snapshot copies the session state into a SessionSnapshot. Metadata fields
// are left for the caller to fill.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Questions:    s.Questions(),
		CurrentIndex: s.current,
		Answers:      s.Answers(),
		Revealed:     s.revealed,
		Submitted:    s.submitted,
	}
}

// RestoreSession rebuilds a Session, rejecting snapshots that break the
// session invariants.
func RestoreSession(snap SessionSnapshot) (*Session, error) {
	if len(snap.Questions) == 0 {
		if snap.CurrentIndex != 0 || len(snap.Answers) != 0 || snap.Revealed || snap.Submitted {
			return nil, NewInternalError("corrupt session snapshot", fmt.Errorf("unloaded session %q carries state", snap.ID))
		}
		return NewSession(), nil
	}
	if len(snap.Answers) != len(snap.Questions) {
		return nil, NewInternalError("corrupt session snapshot",
			fmt.Errorf("session %q has %d answers for %d questions", snap.ID, len(snap.Answers), len(snap.Questions)))
	}
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= len(snap.Questions) {
		return nil, NewInternalError("corrupt session snapshot",
			fmt.Errorf("session %q position %d out of range", snap.ID, snap.CurrentIndex))
	}
	for i, a := range snap.Answers {
		if !a.IsAnswered() {
			continue
		}
		if err := snap.Questions[i].Accepts(a); err != nil {
			return nil, NewInternalError("corrupt session snapshot", err)
		}
	}
	if snap.Revealed && !snap.Answers[snap.CurrentIndex].IsAnswered() {
		return nil, NewInternalError("corrupt session snapshot",
			fmt.Errorf("session %q revealed without an answer", snap.ID))
	}
	if snap.Submitted && (!snap.Revealed || snap.CurrentIndex != len(snap.Questions)-1) {
		return nil, NewInternalError("corrupt session snapshot",
			fmt.Errorf("session %q submitted before the last question was revealed", snap.ID))
	}

	s := NewSession()
	if err := s.Load(snap.Questions); err != nil {
		return nil, err
	}
	copy(s.answers, snap.Answers)
	s.current = snap.CurrentIndex
	s.revealed = snap.Revealed
	s.submitted = snap.Submitted
	return s, nil
}
