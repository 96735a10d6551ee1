package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNoArtifact indicates no artifact is currently held.
var ErrNoArtifact = errors.New("no artifact held")

// Artifact is a generated archive held on disk, paired with the
// display filename resolved from the generation response.
type Artifact struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`

	path string
}

// Config holds configuration for Manager.
type Config struct {
	// Dir is where artifact files are written. When empty the manager
	// creates a private temporary directory and removes it on Close.
	Dir string
}

// Manager owns the downloadable artifact. At most one artifact is held
// at a time: materializing a new one releases the previous one, and
// each backing file is removed exactly once.
type Manager struct {
	mu      sync.Mutex
	dir     string
	ownsDir bool
	current *Artifact
}

// NewManager creates a Manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	dir := cfg.Dir
	ownsDir := false

	if dir == "" {
		tmp, err := os.MkdirTemp("", "genforge-")
		if err != nil {
			return nil, fmt.Errorf("create artifact dir: %w", err)
		}
		dir = tmp
		ownsDir = true
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	return &Manager{dir: dir, ownsDir: ownsDir}, nil
}

// Materialize stores data as the current artifact under the given
// display filename, releasing the previous artifact first.
func (m *Manager) Materialize(filename string, data []byte) (*Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.releaseLocked(); err != nil {
		return nil, err
	}

	id, err := nanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate artifact id: %w", err)
	}
	id = "art_" + id

	path := filepath.Join(m.dir, id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	m.current = &Artifact{
		ID:        id,
		Filename:  filename,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
		path:      path,
	}

	return m.current, nil
}

// Release removes the current artifact's backing file and clears it.
// Releasing when nothing is held is a no-op, never an error.
func (m *Manager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.releaseLocked()
}

func (m *Manager) releaseLocked() error {
	if m.current == nil {
		return nil
	}

	path := m.current.path
	m.current = nil

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// Current returns the held artifact's metadata, or nil when none is held.
func (m *Manager) Current() *Artifact {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// Held reports whether an artifact is currently held.
func (m *Manager) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current != nil
}

// Open returns the held artifact and a reader over its bytes. The
// caller closes the reader. Returns ErrNoArtifact when none is held.
func (m *Manager) Open() (*Artifact, io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, nil, ErrNoArtifact
	}

	f, err := os.Open(m.current.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}
	return m.current, f, nil
}

// Close releases the held artifact and removes the manager's directory
// when the manager created it. Used at teardown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.releaseLocked()

	if m.ownsDir {
		if rmErr := os.RemoveAll(m.dir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove artifact dir: %w", rmErr)
		}
	}
	return err
}
