// Package favorites keeps the set of items the user has starred and persists it
// through a key-value capability.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/osintex/cli/internal/catalog"
)

// DefaultKey is the key the favorite list is stored under.
const DefaultKey = "favorites"

const persistTimeout = 10 * time.Second

// Options configures a Store.
type Options struct {
	// Key overrides DefaultKey.
	Key    string
	Logger *slog.Logger
	// OnError receives every load and save failure. Failures are never returned
	// to callers because favorites must not block the UI.
	OnError func(error)
}

// Store is the in-memory favorite set backed by a KV.
//
// Mutations update memory immediately and persist the full set in the
// background. Writes are not retried; a newer snapshot always wins over an
// older one that finishes later.
type Store struct {
	kv      KV
	key     string
	logger  *slog.Logger
	onError func(error)

	mu  sync.Mutex
	ids map[catalog.ItemID]struct{}
	gen uint64

	writeMu sync.Mutex
	written uint64
	pending sync.WaitGroup
}

func New(kv KV, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		kv:      kv,
		key:     opts.Key,
		logger:  opts.Logger,
		onError: opts.OnError,
		ids:     make(map[catalog.ItemID]struct{}),
	}
}

// Load replaces the in-memory set with the persisted one. A missing key, a read
// failure or an undecodable value all leave the set empty.
func (s *Store) Load(ctx context.Context) {
	ids := make(map[catalog.ItemID]struct{})
	defer func() {
		s.mu.Lock()
		s.ids = ids
		s.mu.Unlock()
	}()

	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.report("failed to load favorites", fmt.Errorf("load favorites: %w", err))
		return
	}
	if !found {
		s.logger.Debug("no saved favorites", slog.String("key", s.key))
		return
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		s.report("failed to decode favorites", fmt.Errorf("decode favorites: %w", err))
		return
	}
	for _, id := range list {
		ids[catalog.ItemID(id)] = struct{}{}
	}
	s.logger.Debug("loaded favorites", slog.Int("count", len(ids)))
}

// Toggle flips membership of id, persists the set and reports whether id is
// now a favorite.
func (s *Store) Toggle(id catalog.ItemID) bool {
	s.mu.Lock()
	_, present := s.ids[id]
	if present {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	snapshot, gen := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot, gen)
	return !present
}

// Add marks id as a favorite. It reports false when id already was one.
func (s *Store) Add(id catalog.ItemID) bool {
	if s.Has(id) {
		return false
	}
	s.Toggle(id)
	return true
}

// Remove unmarks id. It reports false when id was not a favorite.
func (s *Store) Remove(id catalog.ItemID) bool {
	if !s.Has(id) {
		return false
	}
	s.Toggle(id)
	return true
}

func (s *Store) Has(id catalog.ItemID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the favorites in sorted order.
func (s *Store) IDs() []catalog.ItemID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Wait blocks until every background write has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

func (s *Store) sortedLocked() []catalog.ItemID {
	out := make([]catalog.ItemID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) snapshotLocked() ([]catalog.ItemID, uint64) {
	s.gen++
	return s.sortedLocked(), s.gen
}

func (s *Store) persist(snapshot []catalog.ItemID, gen uint64) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if gen <= s.written {
			return
		}

		data, err := json.Marshal(snapshot)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			err = s.kv.Set(ctx, s.key, data)
			cancel()
		}
		if err != nil {
			s.report("failed to save favorites", fmt.Errorf("save favorites: %w", err))
			return
		}
		s.written = gen
		s.logger.Debug("saved favorites", slog.Int("count", len(snapshot)))
	}()
}

func (s *Store) report(msg string, err error) {
	s.logger.Error(msg, slog.String("key", s.key), slog.Any("error", err))
	if s.onError != nil {
		s.onError(err)
	}
}
