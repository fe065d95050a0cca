package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"xiangqi/internal/xiangqi"
)

const (
	keyStats      = "stats"
	gameKeyPrefix = "game/"
)

var ErrNotFound = errors.New("record not found")

// GameRecord is the archived form of one game.
type GameRecord struct {
	ID         string         `json:"id"`
	StartFEN   string         `json:"start_fen"`
	Moves      []xiangqi.Move `json:"moves"`
	Winner     string         `json:"winner"` // "red", "black" 或空（未结束）
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Stats aggregates every archived game.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	RedWins     int `json:"red_wins"`
	BlackWins   int `json:"black_wins"`
	Unfinished  int `json:"unfinished"`
}

// RedWinRate returns red's share of decided games as a percentage (0-100).
func (s *Stats) RedWinRate() float64 {
	decided := s.RedWins + s.BlackWins
	if decided == 0 {
		return 0
	}
	return float64(s.RedWins) / float64(decided) * 100
}

// Storage wraps BadgerDB.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir selects
// DatabaseDir.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a throwaway database, used by tests and by runs that
// should not touch the disk.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte { return []byte(gameKeyPrefix + id) }

// SaveGame writes rec and counts it in the stats. Saving the same id twice
// replaces the record without counting it again.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return errors.New("game record without id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(rec.ID))
		isNew := errors.Is(err, badger.ErrKeyNotFound)
		if err != nil && !isNew {
			return err
		}
		if err := txn.Set(gameKey(rec.ID), data); err != nil {
			return err
		}
		if !isNew {
			return nil
		}

		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.GamesPlayed++
		switch rec.Winner {
		case xiangqi.Red.String():
			stats.RedWins++
		case xiangqi.Black.String():
			stats.BlackWins++
		default:
			stats.Unfinished++
		}
		raw, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), raw)
	})
}

func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: game %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGames returns every archived game, oldest first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var out []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinishedAt.Before(out[j].FinishedAt)
	})
	return out, nil
}

// LoadStats returns the aggregate results, zero when nothing was archived yet.
func (s *Storage) LoadStats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := &Stats{}
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}
