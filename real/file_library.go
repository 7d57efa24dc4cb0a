package real

import (
	"fmt"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/opd-ai/daffbind/dataset"
	"github.com/opd-ai/daffbind/interfaces"
)

// FileSystem provides an abstraction over file reads for deterministic testing.
type FileSystem interface {
	// ReadFile returns the contents of the named file.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem implements FileSystem using os.ReadFile.
type OSFileSystem struct{}

// ReadFile reads the named file with os.ReadFile.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileLibrary implements interfaces.ILibrary over dataset documents on disk.
//
// Decoded datasets are shared between readers through a cache keyed by the
// BLAKE2b-256 digest of the file contents, so identical files opened under
// different paths decode once. The cache holds at most
// config.DatasetCacheSize validated entries; 0 disables it.
type FileLibrary struct {
	fs     FileSystem
	config *interfaces.BindingConfig
	cache  *lru.Cache[[blake2b.Size256]byte, *dataset.Dataset] // nil when disabled

	mu      sync.Mutex
	hits    int
	misses  int
	decodes int
}

// NewFileLibrary creates a new file-backed library
func NewFileLibrary(config *interfaces.BindingConfig) *FileLibrary {
	logrus.WithFields(logrus.Fields{
		"function":   "NewFileLibrary",
		"cache_size": config.DatasetCacheSize,
	}).Info("Creating file-backed reader library")

	l := &FileLibrary{
		fs:     OSFileSystem{},
		config: config,
	}
	if config.DatasetCacheSize > 0 {
		cache, err := lru.New[[blake2b.Size256]byte, *dataset.Dataset](config.DatasetCacheSize)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":   "NewFileLibrary",
				"cache_size": config.DatasetCacheSize,
				"error":      err.Error(),
			}).Warn("Dataset cache disabled")
		} else {
			l.cache = cache
		}
	}
	return l
}

// SetFileSystem sets a custom FileSystem implementation (primarily for testing).
func (l *FileLibrary) SetFileSystem(fs FileSystem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fs = fs
}

// NewReader implements ILibrary.NewReader
func (l *FileLibrary) NewReader() (interfaces.IReader, error) {
	return dataset.NewReader(l.load), nil
}

// IsSimulation implements ILibrary.IsSimulation
func (l *FileLibrary) IsSimulation() bool {
	return false
}

func (l *FileLibrary) load(path string) (*dataset.Dataset, error) {
	l.mu.Lock()
	fs := l.fs
	l.mu.Unlock()

	data, err := fs.ReadFile(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FileLibrary.load",
			"path":     path,
			"error":    err.Error(),
		}).Debug("Failed to read dataset file")
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	sum := blake2b.Sum256(data)
	if ds, ok := l.lookup(sum); ok {
		logrus.WithFields(logrus.Fields{
			"function": "FileLibrary.load",
			"path":     path,
			"digest":   fmt.Sprintf("%x", sum[:8]),
		}).Debug("Dataset served from cache")
		return ds, nil
	}

	ds, err := DecodeDataset(path, data)
	l.mu.Lock()
	l.decodes++
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, err := ds.Validate(path); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FileLibrary.load",
			"path":     path,
			"error":    err.Error(),
		}).Debug("Decoded dataset rejected")
		return nil, err
	}
	l.store(sum, ds)

	logrus.WithFields(logrus.Fields{
		"function": "FileLibrary.load",
		"path":     path,
		"bytes":    len(data),
		"records":  len(ds.Records),
	}).Debug("Dataset decoded")

	return ds, nil
}

func (l *FileLibrary) lookup(sum [blake2b.Size256]byte) (*dataset.Dataset, bool) {
	if l.cache == nil {
		l.countLookup(false)
		return nil, false
	}
	ds, ok := l.cache.Get(sum)
	l.countLookup(ok)
	return ds, ok
}

func (l *FileLibrary) countLookup(hit bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if hit {
		l.hits++
	} else {
		l.misses++
	}
}

func (l *FileLibrary) store(sum [blake2b.Size256]byte, ds *dataset.Dataset) {
	if l.cache == nil {
		return
	}
	if evicted := l.cache.Add(sum, ds); evicted {
		logrus.WithFields(logrus.Fields{
			"function": "FileLibrary.store",
			"entries":  l.cache.Len(),
		}).Debug("Evicted least recently used dataset")
	}
}

// CacheStats reports dataset cache activity.
type CacheStats struct {
	Entries int
	Hits    int
	Misses  int
	Decodes int
}

// GetCacheStats returns dataset cache statistics
func (l *FileLibrary) GetCacheStats() CacheStats {
	entries := 0
	if l.cache != nil {
		entries = l.cache.Len()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return CacheStats{
		Entries: entries,
		Hits:    l.hits,
		Misses:  l.misses,
		Decodes: l.decodes,
	}
}
