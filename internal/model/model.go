package model

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is the slot the list lives in unless configured otherwise.
const DefaultKey = "todos"

// ErrEmptyText is returned by Add and Edit for text that is blank once trimmed.
var ErrEmptyText = errors.New("todo text cannot be empty")

// Options tune a Model. The zero value is usable.
type Options struct {
	Key    string   // slot key, DefaultKey when empty
	IDs    IDPolicy // how new ids are picked
	Logger *log.Logger
}

// Model is the single source of truth for the list. It is not safe for
// concurrent use; callers deliver mutations one at a time.
type Model struct {
	slot     store.Slot
	key      string
	ids      IDPolicy
	seq      int
	items    []Item
	listener Listener
	log      *log.Logger
}

// New loads the list from slot. Missing or unreadable contents start an
// empty list; only a failing slot read is reported.
func New(slot store.Slot, opt Options) (*Model, error) {
	m := &Model{
		slot: slot,
		key:  opt.Key,
		ids:  opt.IDs,
		log:  opt.Logger,
	}
	if m.key == "" {
		m.key = DefaultKey
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}

	items, err := m.load()
	if err != nil {
		return nil, err
	}
	m.items = items

	if m.ids == CounterIDs {
		seq, err := m.loadSeq()
		if err != nil {
			return nil, err
		}
		m.seq = max(seq, maxID(items))
	}
	m.log.Debug("list loaded", "key", m.key, "items", len(m.items), "ids", m.ids)
	return m, nil
}

func (m *Model) load() ([]Item, error) {
	b, err := m.slot.Get(m.key)
	if errors.Is(err, store.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", m.key, err)
	}
	items, err := Decode(b)
	if err != nil {
		m.log.Warn("ignoring unreadable list", "key", m.key, "err", err)
		// Keep the raw bytes; the next commit overwrites the key.
		if err := m.slot.Set(m.badKey(), b); err != nil {
			return nil, fmt.Errorf("save %s: %w", m.badKey(), err)
		}
		m.log.Warn("unreadable list saved", "key", m.badKey())
		return []Item{}, nil
	}
	return items, nil
}

func (m *Model) seqKey() string { return m.key + ".seq" }

// badKey holds the last list that could not be decoded.
func (m *Model) badKey() string { return m.key + ".bad" }

func (m *Model) loadSeq() (int, error) {
	b, err := m.slot.Get(m.seqKey())
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", m.seqKey(), err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || n < 0 {
		m.log.Warn("ignoring unreadable id counter", "key", m.seqKey(), "value", string(b))
		return 0, nil
	}
	return n, nil
}

// Subscribe registers the change listener, replacing any previous one.
// A nil listener unsubscribes.
func (m *Model) Subscribe(l Listener) {
	m.listener = l
}

// Items returns a copy of the current list.
func (m *Model) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Stats counts done and pending items.
func (m *Model) Stats() (done, pending int) {
	for _, it := range m.items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends a new pending item and returns its id.
func (m *Model) Add(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}
	id, err := m.nextID()
	if err != nil {
		return 0, err
	}
	m.items = append(m.items, Item{ID: id, Text: text})
	return id, m.commit()
}

func (m *Model) nextID() (int, error) {
	switch m.ids {
	case NextFreeIDs:
		return nextFreeID(m.items), nil
	case LengthIDs:
		return lengthID(m.items), nil
	}
	next := m.seq + 1
	if err := m.slot.Set(m.seqKey(), []byte(strconv.Itoa(next))); err != nil {
		return 0, fmt.Errorf("persist %s: %w", m.seqKey(), err)
	}
	m.seq = next
	return next, nil
}

// Edit replaces the text of every item with id, keeping its done flag and
// position. An unknown id leaves the list as it was.
func (m *Model) Edit(id int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Text = text
		}
	}
	return m.commit()
}

// Delete removes every item with id. An unknown id leaves the list as it was.
func (m *Model) Delete(id int) error {
	kept := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return m.commit()
}

// Toggle flips the done flag of every item with id. An unknown id leaves
// the list as it was.
func (m *Model) Toggle(id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Done = !m.items[i].Done
		}
	}
	return m.commit()
}

// commit writes the whole list, then notifies the listener. When the write
// fails the listener is skipped and the in-memory list keeps the change.
func (m *Model) commit() error {
	b, err := Encode(m.items)
	if err != nil {
		return err
	}
	if err := m.slot.Set(m.key, b); err != nil {
		m.log.Error("persist failed", "key", m.key, "err", err)
		return fmt.Errorf("persist %s: %w", m.key, err)
	}
	m.log.Debug("list committed", "key", m.key, "items", len(m.items))
	if m.listener != nil {
		m.listener(m.Items())
	}
	return nil
}
