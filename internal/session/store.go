// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
)

// Store provides access to the session records of a single directory. The
// directory is owned by the otui app; the store never creates it and never
// adds or removes records.
type Store struct {
	dir string
}

// NewStore verifies dir exists and is a directory.
func NewStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat sessions directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store was opened on.
func (s *Store) Dir() string {
	return s.dir
}

// Files returns the paths of the *.json records directly within the
// directory, sorted by name. Subdirectories and other files are ignored.
func (s *Store) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(s.dir, entry.Name()))
	}
	return files, nil
}

// Load reads and parses one record.
func (s *Store) Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return NewRecord(path, data)
}

// Write persists the record back to its original path, re-indented. The
// write goes to a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a truncated record behind. Prior file
// permissions are kept (otui creates sessions 0600).
func (s *Store) Write(r *Record) error {
	perm := fs.FileMode(0o600)
	if info, err := os.Stat(r.Path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(s.dir, ".otuictl-*.json")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnwritableFile, r.Path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(r.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrUnwritableFile, r.Path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrUnwritableFile, r.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrUnwritableFile, r.Path, err)
	}

	if err := os.Rename(tmpPath, r.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrUnwritableFile, r.Path, err)
	}

	log.Debugf("wrote %s", r.Path)
	return nil
}

// Info is the listing view of one record, in the shape the original otui
// session list shows.
type Info struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Model    string    `json:"model" yaml:"model"`
	Messages int       `json:"messages" yaml:"messages"`
	Cached   int       `json:"cached" yaml:"cached"`
	Size     int64     `json:"size" yaml:"size"`
	Updated  time.Time `json:"updated" yaml:"updated"`
}

// List loads every record and returns its listing info, newest first.
func (s *Store) List() ([]Info, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, path := range files {
		r, err := s.Load(path)
		if err != nil {
			return nil, err
		}

		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat session file: %w", err)
		}

		updated, ok := r.UpdatedAt()
		if !ok {
			updated = fi.ModTime()
		}

		infos = append(infos, Info{
			ID:       strings.TrimSuffix(filepath.Base(path), ".json"),
			Name:     r.Get("name").String(),
			Model:    r.Get("model").String(),
			Messages: r.MessageCount(),
			Cached:   r.CachedCount(),
			Size:     fi.Size(),
			Updated:  updated,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Updated.After(infos[j].Updated)
	})

	return infos, nil
}

// DefaultDir returns the sessions directory of a default otui install.
// Linux/Mac: ~/.local/share/otui/sessions
// Windows: %LOCALAPPDATA%\otui\sessions
func DefaultDir() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, "otui", "sessions")
	}

	home := os.Getenv("HOME")
	return filepath.Join(home, ".local", "share", "otui", "sessions")
}
