package scores

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// FileStore keeps the board in a CSV file. With an empty path it keeps
// scores in memory only.
type FileStore struct {
	mu     sync.Mutex
	path   string
	player string
	board  *Board
}

// NewFileStore loads the board at path, if it exists.
func NewFileStore(path, player string, size int) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		player: player,
		board:  NewBoard(size),
	}
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open board: %w", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, fmt.Errorf("read board: %w", err)
	}
	for _, e := range entries {
		s.board.Consider(e)
	}
	return s, nil
}

// Board exposes the underlying board.
func (s *FileStore) Board() *Board {
	return s.board
}

// Submit records a score for the store's player and returns the category board.
func (s *FileStore) Submit(category string, sc Score) *Request {
	return Done(s.Put(NewEntry(category, s.player, sc)))
}

// Put records an entry as given and saves the board.
func (s *FileStore) Put(e Entry) ([]Entry, error) {
	if rank, ok := s.board.Consider(e); ok {
		slog.Debug("new high score", "entry", e, "rank", rank)
		if err := s.save(); err != nil {
			return s.board.Top(e.Category), err
		}
	}
	return s.board.Top(e.Category), nil
}

// Fetch returns a category's board.
func (s *FileStore) Fetch(category string) *Request {
	return Done(s.board.Top(category), nil)
}

func (s *FileStore) save() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	entries := s.board.All()
	if err := gocsv.MarshalFile(&entries, f); err != nil {
		f.Close()
		return fmt.Errorf("write board: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close board: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace board: %w", err)
	}
	return nil
}
