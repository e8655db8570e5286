// Package store holds the document being edited plus the last load error.
//
// Every mutation is total: it never fails, and it does nothing when no
// document is loaded or an index is out of range. Mutations return the
// snapshot taken under the same lock, and a boolean reporting whether the
// document changed as requested.
package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abianche/uoo-cooldown-manager/internal/models"
)

// Snapshot is a deep copy of the store state at one revision.
type Snapshot struct {
	Session  string           `json:"session"`
	Revision uint64           `json:"revision"`
	Document *models.Document `json:"document"`
	Error    *string          `json:"error"`
}

// Listener is called after every state change with the new snapshot.
type Listener func(Snapshot)

type Store struct {
	mu        sync.Mutex
	session   uuid.UUID
	revision  uint64
	doc       *models.Document
	errMsg    *string
	listeners []Listener
}

func New() *Store {
	return &Store{session: uuid.New()}
}

func (s *Store) Session() uuid.UUID {
	return s.session
}

// Subscribe registers fn for change notifications. Listeners run synchronously
// after the mutation, outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Document returns a copy of the current document, or nil.
func (s *Store) Document() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Session:  s.session.String(),
		Revision: s.revision,
		Document: s.doc.Clone(),
	}
	if s.errMsg != nil {
		msg := *s.errMsg
		snap.Error = &msg
	}
	return snap
}

// mutate runs fn under the lock and notifies listeners when fn reports a change.
func (s *Store) mutate(fn func() bool) (Snapshot, bool) {
	s.mu.Lock()
	if !fn() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false
	}
	s.revision++
	snap := s.snapshotLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap, true
}

// mutateDoc is mutate restricted to a loaded document.
func (s *Store) mutateDoc(fn func(doc *models.Document) bool) (Snapshot, bool) {
	return s.mutate(func() bool {
		if s.doc == nil {
			return false
		}
		return fn(s.doc)
	})
}

// SetDocument replaces the document wholesale and clears the error.
func (s *Store) SetDocument(doc *models.Document) Snapshot {
	snap, _ := s.mutate(func() bool {
		s.doc = doc.Clone()
		s.errMsg = nil
		return true
	})
	return snap
}

// SetError sets the error message; an empty message clears it.
func (s *Store) SetError(msg string) Snapshot {
	snap, _ := s.mutate(func() bool {
		if msg == "" {
			s.errMsg = nil
			return true
		}
		s.errMsg = &msg
		return true
	})
	return snap
}

func (s *Store) ClearError() Snapshot {
	return s.SetError("")
}

// AddEntry appends a default entry and backfills missing settings.
func (s *Store) AddEntry() (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		doc.EnsureSettings()
		doc.Entries = append(doc.Entries, models.NewEntry())
		return true
	})
}

// UpdateEntry replaces the entry at index. Unknown enum values fall back to
// their defaults and characters XML cannot carry are dropped.
func (s *Store) UpdateEntry(index int, entry models.Entry) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		if !inRange(index, len(doc.Entries)) {
			return false
		}
		doc.Entries[index] = normalizeEntry(entry)
		return true
	})
}

func (s *Store) DeleteEntry(index int) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		if !inRange(index, len(doc.Entries)) {
			return false
		}
		doc.Entries = append(doc.Entries[:index], doc.Entries[index+1:]...)
		return true
	})
}

// ReorderEntries moves the entry at from so that it ends up at to. to is an
// index into the sequence after the entry has been removed.
func (s *Store) ReorderEntries(from, to int) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		n := len(doc.Entries)
		if !inRange(from, n) || !inRange(to, n) {
			return false
		}
		if from == to {
			return true
		}
		moved := doc.Entries[from]
		rest := append(doc.Entries[:from:from], doc.Entries[from+1:]...)
		out := make([]models.Entry, 0, n)
		out = append(out, rest[:to]...)
		out = append(out, moved)
		out = append(out, rest[to:]...)
		doc.Entries = out
		return true
	})
}

// UpdateGeneralSettings merges the non-nil fields of patch into the settings.
func (s *Store) UpdateGeneralSettings(patch models.SettingsPatch) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		doc.EnsureSettings()
		merged := doc.Settings.Apply(patch)
		doc.Settings = &merged
		return true
	})
}

func (s *Store) AddTrigger(entryIndex int) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		if !inRange(entryIndex, len(doc.Entries)) {
			return false
		}
		e := &doc.Entries[entryIndex]
		e.Triggers = append(e.Triggers, models.NewTrigger())
		return true
	})
}

func (s *Store) UpdateTrigger(entryIndex, triggerIndex int, trigger models.Trigger) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		if !inRange(entryIndex, len(doc.Entries)) {
			return false
		}
		e := &doc.Entries[entryIndex]
		if !inRange(triggerIndex, len(e.Triggers)) {
			return false
		}
		e.Triggers[triggerIndex] = normalizeTrigger(trigger)
		return true
	})
}

func (s *Store) DeleteTrigger(entryIndex, triggerIndex int) (Snapshot, bool) {
	return s.mutateDoc(func(doc *models.Document) bool {
		if !inRange(entryIndex, len(doc.Entries)) {
			return false
		}
		e := &doc.Entries[entryIndex]
		if !inRange(triggerIndex, len(e.Triggers)) {
			return false
		}
		e.Triggers = append(e.Triggers[:triggerIndex], e.Triggers[triggerIndex+1:]...)
		return true
	})
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

// normalizeEntry keeps edited entries inside the closed enums and copies the
// trigger slice so callers cannot alias store state.
func normalizeEntry(e models.Entry) models.Entry {
	e = e.Clone()
	e.Name = xmlText(e.Name)
	e.CooldownBarType = models.ParseCooldownBarType(string(e.CooldownBarType))
	for i := range e.Triggers {
		e.Triggers[i] = normalizeTrigger(e.Triggers[i])
	}
	return e
}

func normalizeTrigger(t models.Trigger) models.Trigger {
	t.TriggerType = models.ParseTriggerType(string(t.TriggerType))
	t.TriggerText = xmlText(t.TriggerText)
	return t
}

// xmlText drops runes outside the XML 1.0 Char production, which the encoder
// would otherwise replace with U+FFFD on export.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
