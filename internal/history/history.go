// Package history records operator results in an embedded BadgerDB so a
// run can be inspected and its configuration recalled later.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
)

var ErrNotFound = errors.New("history: entry not found")

const keyPrefix = "result/"

// Config selects where the store lives.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is true.
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// Container is a stored output container.
type Container struct {
	Name string `json:"name"`
	Bits int64  `json:"bits"`
	Data []byte `json:"data"`
}

// Entry is one recorded operator result.
type Entry struct {
	ID         uuid.UUID    `json:"id"`
	Plugin     string       `json:"plugin"`
	State      plugin.State `json:"state"`
	Containers []Container  `json:"containers"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Restore rebuilds the stored containers, frozen.
func (e Entry) Restore() ([]*bits.Container, error) {
	out := make([]*bits.Container, 0, len(e.Containers))
	for _, c := range e.Containers {
		arr, err := bits.FromBytes(c.Data, c.Bits)
		if err != nil {
			return nil, fmt.Errorf("restoring %q: %w", c.Name, err)
		}
		out = append(out, bits.NewContainer(c.Name, arr).Freeze())
	}
	return out, nil
}

// Store is safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else if cfg.Path == "" {
		return nil, errors.New("history: path is required unless in-memory")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "history")),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the outcome of an operator action under id.
func (s *Store) Record(id uuid.UUID, pluginName string, out plugin.OperatorOutput) (Entry, error) {
	e := Entry{
		ID:        id,
		Plugin:    pluginName,
		State:     out.State.Clone(),
		CreatedAt: time.Now().UTC(),
	}
	for _, c := range out.Containers {
		e.Containers = append(e.Containers, Container{
			Name: c.Name(),
			Bits: c.Len(),
			Data: c.Bits().Bytes(),
		})
	}

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding history entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(id), data)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("writing history entry: %w", err)
	}

	s.logger.Debug("result recorded", slog.String("id", id.String()), slog.String("plugin", pluginName))
	return e, nil
}

func (s *Store) Get(id uuid.UUID) (Entry, error) {
	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("reading history entry: %w", err)
	}
	return e, nil
}

// List returns every entry, newest first. Container data is omitted.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			for i := range e.Containers {
				e.Containers[i].Data = nil
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}
