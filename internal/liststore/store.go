// Package liststore owns the shopping list collection.
//
// Every mutation goes through a *Store. After each successful mutation the
// store notifies its subscribers synchronously, in the order they
// subscribed. Notifications carry no payload: subscribers re-read Items.
package liststore

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/shelf/internal/model"
)

var (
	ErrEmptyName = errors.New("empty item name")
	ErrNotFound  = errors.New("item not found")
)

type subscriber struct {
	id int
	fn func()
}

// Store is the single owner of the ordered item collection.
// It is not safe for concurrent use; callers drive it from one event loop.
type Store struct {
	items  []model.Item
	subs   []subscriber
	nextID int
	lastID int64
	now    func() time.Time
	log    zerolog.Logger
}

type Option func(*Store)

// WithClock overrides the time source used to derive item ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(opts ...Option) *Store {
	s := &Store{now: time.Now, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers fn for change notifications and returns a func that
// removes it again.
func (s *Store) Subscribe(fn func()) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	// Copy so a subscriber that unsubscribes mid fan-out does not shift the slice under us.
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn()
	}
}

// Items returns a copy of the collection in display order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Get looks an item up by id.
func (s *Store) Get(id int64) (model.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Add appends a new, incomplete item. Blank names are rejected with
// ErrEmptyName and leave the collection untouched.
func (s *Store) Add(name string) (model.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Item{}, ErrEmptyName
	}
	it := model.Item{ID: s.freshID(), Name: name}
	s.items = append(s.items, it)
	s.log.Debug().Int64("id", it.ID).Int("count", len(s.items)).Msg("item added")
	s.notify()
	return it, nil
}

// Remove drops the item with the given id. An unknown id is not an error;
// the return value reports whether anything was removed.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.log.Debug().Int64("id", id).Msg("item removed")
	}
	s.notify()
	return i >= 0
}

// ToggleComplete flips the complete flag of the item with the given id.
// An unknown id leaves everything unchanged and returns ErrNotFound.
func (s *Store) ToggleComplete(id int64) error {
	i := s.index(id)
	if i < 0 {
		s.log.Warn().Int64("id", id).Msg("toggle on unknown item id ignored")
		return ErrNotFound
	}
	s.items[i].Complete = !s.items[i].Complete
	s.log.Debug().Int64("id", id).Bool("complete", s.items[i].Complete).Msg("item toggled")
	s.notify()
	return nil
}

// Merge appends items restored from durable storage, skipping blank names
// and ids already present. It notifies once if anything was merged and
// returns the number of merged items.
func (s *Store) Merge(items []model.Item) int {
	n := 0
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" || s.index(it.ID) >= 0 {
			continue
		}
		s.items = append(s.items, it)
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
		n++
	}
	if n > 0 {
		s.notify()
	}
	return n
}

// freshID derives an id from the creation time, bumped past every id seen
// so far so two adds within the same millisecond stay distinct.
func (s *Store) freshID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) index(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
