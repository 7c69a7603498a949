package buffer

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var writesBucket = []byte("pending_writes")

// Store is a FIFO of pending writes in a BoltDB file. Keys are the bucket
// sequence in big-endian, so cursor order is arrival order.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(writesBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Append queues w at the tail and returns its sequence number.
func (s *Store) Append(w Write) (uint64, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	if w.QueuedAt.IsZero() {
		w.QueuedAt = time.Now()
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(writesBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		w.Seq = seq
		payload, err := json.Marshal(w)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), payload)
	})
	return w.Seq, err
}

// Peek returns up to limit writes from the head without removing them.
func (s *Store) Peek(limit int) ([]Write, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}
	writes := make([]Write, 0, limit)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(writesBucket).Cursor()
		for k, v := c.First(); k != nil && len(writes) < limit; k, v = c.Next() {
			var w Write
			if err := json.Unmarshal(v, &w); err != nil {
				continue
			}
			w.Seq = binary.BigEndian.Uint64(k)
			writes = append(writes, w)
		}
		return nil
	})
	return writes, err
}

// Ack removes a replayed or abandoned write.
func (s *Store) Ack(seq uint64) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(writesBucket).Delete(seqKey(seq))
	})
}

// Retry stores w back in place with one more attempt. The write keeps its
// position so later writes to the same record stay behind it.
func (s *Store) Retry(w Write) (Write, error) {
	if s == nil || s.db == nil {
		return w, bolt.ErrDatabaseNotOpen
	}
	w.Attempts++
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(writesBucket)
		if b.Get(seqKey(w.Seq)) == nil {
			return nil
		}
		payload, err := json.Marshal(w)
		if err != nil {
			return err
		}
		return b.Put(seqKey(w.Seq), payload)
	})
	return w, err
}

func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(writesBucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Purge drops writes queued before cutoff and reports how many went.
func (s *Store) Purge(cutoff time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var purged int
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(writesBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var w Write
			if err := json.Unmarshal(v, &w); err != nil || w.QueuedAt.Before(cutoff) {
				if err := c.Delete(); err != nil {
					return err
				}
				purged++
			}
		}
		return nil
	})
	return purged, err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
