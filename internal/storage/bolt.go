package storage

import (
	"context"
	"encoding/json"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/aivta/go-adventure/internal/game"
)

var bucketSessions = []byte("sessions")

// BoltStore persists sessions in a bbolt file, one JSON-encoded record per
// session. The in-memory session store stays the source of truth; bolt is
// durability only.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens or creates a bbolt session store and ensures the bucket
// exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSession writes the session through to bolt.
func (s *BoltStore) SaveSession(_ context.Context, sess *game.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(sess.ID), data)
	})
}

// LoadSessions returns every persisted session.
func (s *BoltStore) LoadSessions(context.Context) ([]*game.Session, error) {
	var sessions []*game.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, v []byte) error {
			var sess game.Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("decode session: %w", err)
			}
			sessions = append(sessions, &sess)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteSession removes the session record.
func (s *BoltStore) DeleteSession(_ context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(id))
	})
}

// Stats computes play aggregates by scanning the bucket.
func (s *BoltStore) Stats(ctx context.Context) (AgentStats, error) {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return AgentStats{}, err
	}

	var stats AgentStats
	stats.TotalSessions = len(sessions)
	for _, sess := range sessions {
		switch sess.Status {
		case game.StatusActive:
			stats.ActiveSessions++
		case game.StatusWon:
			stats.WonGames++
			stats.CompletedGames++
		default:
			stats.CompletedGames++
		}
		stats.TotalActions += len(sess.Path)
	}

	if stats.TotalSessions > 0 {
		stats.SuccessRate = float64(stats.WonGames) / float64(stats.TotalSessions)
		stats.AverageActionsPerGame = float64(stats.TotalActions) / float64(stats.TotalSessions)
	}

	return stats, nil
}
