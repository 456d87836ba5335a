package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/paths"
	"github.com/thoreinstein/cec/pkg/fileutil"
)

// PlatformConfig is the persisted state of one platform.
type PlatformConfig struct {
	APIKey   string     `json:"apiKey,omitempty" yaml:"apiKey,omitempty" toml:"apiKey,omitempty"`
	BaseURL  string     `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty" toml:"baseUrl,omitempty"`
	LastUsed *time.Time `json:"lastUsed,omitempty" yaml:"lastUsed,omitempty" toml:"lastUsed,omitempty"`
}

// IsZero reports whether no field is set.
func (c PlatformConfig) IsZero() bool {
	return c.APIKey == "" && c.BaseURL == "" && c.LastUsed == nil
}

// Backend persists PlatformConfig values keyed by platform.
type Backend interface {
	// Load returns the stored config, or the zero value if none exists.
	Load(platform string) (PlatformConfig, error)

	// Update performs a read-modify-write of one platform's config.
	// Concurrent updates of the same platform are serialized and a failed
	// write leaves the previous value intact.
	Update(platform string, fn func(*PlatformConfig) error) error

	// Platforms lists the platforms with stored config, sorted.
	Platforms() ([]string, error)
}

// FileBackend stores one JSON file per platform in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a FileBackend rooted at dir. The directory is
// created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the backing directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Load implements Backend.
func (b *FileBackend) Load(platform string) (PlatformConfig, error) {
	path, err := paths.PlatformFile(b.dir, platform)
	if err != nil {
		return PlatformConfig{}, err
	}

	var cfg PlatformConfig
	if _, err := fileutil.ReadJSON(path, &cfg); err != nil {
		return PlatformConfig{}, errors.Wrapf(err, "loading %s config", platform)
	}
	return cfg, nil
}

// Update implements Backend. The file is locked for the duration of fn and
// written back through a temp file and rename.
func (b *FileBackend) Update(platform string, fn func(*PlatformConfig) error) error {
	path, err := paths.PlatformFile(b.dir, platform)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(b.dir, 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	return fileutil.WithLock(path, func() error {
		var cfg PlatformConfig
		if _, err := fileutil.ReadJSON(path, &cfg); err != nil {
			return errors.Wrapf(err, "loading %s config", platform)
		}
		if err := fn(&cfg); err != nil {
			return err
		}
		if err := fileutil.AtomicWriteJSON(path, cfg); err != nil {
			return errors.Wrapf(err, "writing %s config", platform)
		}
		return nil
	})
}

// Platforms implements Backend.
func (b *FileBackend) Platforms() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading config directory")
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if paths.ValidKey(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MemoryBackend is an in-process Backend for tests and ephemeral use.
type MemoryBackend struct {
	mu      sync.Mutex
	configs map[string]PlatformConfig

	// FailWrites makes Update return this error after fn ran, leaving the
	// stored value unchanged.
	FailWrites error
}

// NewMemoryBackend returns a MemoryBackend seeded with initial.
func NewMemoryBackend(initial map[string]PlatformConfig) *MemoryBackend {
	configs := make(map[string]PlatformConfig, len(initial))
	for k, v := range initial {
		configs[k] = v
	}
	return &MemoryBackend{configs: configs}
}

// Load implements Backend.
func (b *MemoryBackend) Load(platform string) (PlatformConfig, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configs[platform], nil
}

// Update implements Backend.
func (b *MemoryBackend) Update(platform string, fn func(*PlatformConfig) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg := b.configs[platform]
	if err := fn(&cfg); err != nil {
		return err
	}
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.configs[platform] = cfg
	return nil
}

// Platforms implements Backend.
func (b *MemoryBackend) Platforms() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.configs))
	for k := range b.configs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
