package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrEmptyDirectory  = errors.New("cache directory cannot be empty")
)

// FileStore stores entries as JSON files in one directory. It is safe for concurrent use.
type FileStore struct {
	directory string
	ttl       time.Duration

	mu sync.RWMutex
}

// NewFileStore creates the directory if needed and returns a store whose entries live for ttl.
func NewFileStore(directory string, ttl time.Duration) (*FileStore, error) {
	if directory == "" {
		return nil, ErrEmptyDirectory
	}
	if err := ValidateTTL(ttl); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(directory, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{directory: directory, ttl: ttl}, nil
}

// Get returns the entry for key.
// It returns ErrCacheNotFound when there is none and ErrCacheExpired (removing the file) when it
// has expired.
func (s *FileStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	entry, err := readEntry(filePath)
	if err != nil {
		return nil, err
	}
	if entry.IsExpired() {
		_ = os.Remove(filePath)
		return nil, ErrCacheExpired
	}
	return entry, nil
}

// Set stores data under key, replacing any previous entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryData, err := json.MarshalIndent(NewEntry(key, data, s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)

	// Write to a temporary file, then rename into place.
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, filePerm); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToFilePath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.entryPaths()
	if err != nil {
		return 0, err
	}
	for i, p := range paths {
		if removeErr := os.Remove(p); removeErr != nil {
			return i, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(p), removeErr)
		}
	}
	return len(paths), nil
}

// CleanupExpired removes expired and unreadable entries and returns how many were removed.
func (s *FileStore) CleanupExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.entryPaths()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range paths {
		entry, readErr := readEntry(p)
		if readErr == nil && !entry.IsExpired() {
			continue
		}
		if os.Remove(p) == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats summarises the store contents.
type Stats struct {
	Directory string        `json:"directory"  yaml:"directory"`
	TTL       time.Duration `json:"ttl"        yaml:"ttl"`
	Entries   int           `json:"entries"    yaml:"entries"`
	Expired   int           `json:"expired"    yaml:"expired"`
	SizeBytes int64         `json:"size_bytes" yaml:"size_bytes"`
}

// Stats counts entries (expired ones included) and their total size on disk.
func (s *FileStore) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Directory: s.directory, TTL: s.ttl}
	paths, err := s.entryPaths()
	if err != nil {
		return stats, err
	}

	for _, p := range paths {
		info, statErr := os.Stat(p)
		if statErr != nil {
			continue
		}
		stats.Entries++
		stats.SizeBytes += info.Size()
		if entry, readErr := readEntry(p); readErr != nil || entry.IsExpired() {
			stats.Expired++
		}
	}
	return stats, nil
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the lifetime of new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

func (s *FileStore) entryPaths() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == cacheFileExtension {
			paths = append(paths, filepath.Join(s.directory, e.Name()))
		}
	}
	return paths, nil
}

// keyToFilePath hashes key into a file name inside the store directory.
func (s *FileStore) keyToFilePath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:])+cacheFileExtension)
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}
	return &entry, nil
}
