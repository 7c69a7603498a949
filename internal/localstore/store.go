// Package localstore keeps the terminal client's session and theme in a
// bbolt file under the user's config directory.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/focus/domain"
)

var bucket = []byte("focus")

const (
	keyToken = "token"
	keyUser  = "user"
	keyTheme = "theme"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(value string) (Theme, error) {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", value)
}

// ErrNoSession means nobody is logged in on this machine.
var ErrNoSession = errors.New("not logged in, run `focus login` first")

// Session is the cached login: token plus the user it belongs to.
type Session struct {
	Token string
	User  domain.User
}

type Store struct {
	db *bolt.DB
}

// Open creates the file and its parent directory when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local state %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSession stores token and user together.
func (s *Store) SaveSession(session Session) error {
	user, err := json.Marshal(session.User)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if err := b.Put([]byte(keyToken), []byte(session.Token)); err != nil {
			return err
		}
		return b.Put([]byte(keyUser), user)
	})
}

// LoadSession returns ErrNoSession unless both token and user are present.
func (s *Store) LoadSession() (*Session, error) {
	var session Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		token := b.Get([]byte(keyToken))
		user := b.Get([]byte(keyUser))
		if len(token) == 0 || len(user) == 0 {
			return ErrNoSession
		}
		session.Token = string(token)
		return json.Unmarshal(user, &session.User)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ClearSession removes token and user. The theme survives logout.
func (s *Store) ClearSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if err := b.Delete([]byte(keyToken)); err != nil {
			return err
		}
		return b.Delete([]byte(keyUser))
	})
}

// Theme defaults to light.
func (s *Store) Theme() (Theme, error) {
	theme := ThemeLight
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(keyTheme)); len(v) > 0 {
			theme = Theme(v)
		}
		return nil
	})
	return theme, err
}

func (s *Store) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(keyTheme), []byte(theme))
	})
}

// ToggleTheme flips light and dark and returns the new value.
func (s *Store) ToggleTheme() (Theme, error) {
	current, err := s.Theme()
	if err != nil {
		return "", err
	}
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	return next, s.SetTheme(next)
}
