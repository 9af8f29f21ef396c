package adapters

import (
	"os"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dockerfile-analyzer/internal/ports"
)

// ManifestFileAdapter reads manifest files, keeping their contents until
// the file's modification time changes.
type ManifestFileAdapter struct {
	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

type manifestCacheEntry struct {
	modTime time.Time
	size    int64
	content []byte
}

func NewManifestFileAdapter() *ManifestFileAdapter {
	return &ManifestFileAdapter{cache: map[string]manifestCacheEntry{}}
}

func (a *ManifestFileAdapter) ReadManifest(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		a.mu.Unlock()
		return entry.content, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	a.mu.Lock()
	a.cache[path] = manifestCacheEntry{modTime: info.ModTime(), size: info.Size(), content: content}
	a.mu.Unlock()
	return content, nil
}

var _ ports.ManifestReaderPort = (*ManifestFileAdapter)(nil)
