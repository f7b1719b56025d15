package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const checksumSuffix = ".checksum"

// ErrWatchUnsupported is returned by Watch when the backing filesystem is
// not the operating system's.
var ErrWatchUnsupported = errors.New("watch requires an OS filesystem")

// prefsDocument is the on-disk YAML layout.
type prefsDocument struct {
	Preferences map[string]string `yaml:"preferences"`
	UpdatedAt   time.Time         `yaml:"updatedAt,omitempty"`
}

// FilePreferences persists preferences in a YAML file with a sidecar SHA256
// checksum. On the OS filesystem writes are serialized across processes with
// a lock file.
type FilePreferences struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
	flk  *flock.Flock
}

// NewFilePreferences prepares a preference file at path on fsys. The file is
// created lazily on the first Set.
func NewFilePreferences(fsys afero.Fs, path string) (*FilePreferences, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	p := &FilePreferences{fs: fsys, path: path}
	if _, ok := fsys.(*afero.OsFs); ok {
		p.flk = flock.New(path + ".lock")
	}
	return p, nil
}

func (p *FilePreferences) lock() error {
	p.mu.Lock()
	if p.flk == nil {
		return nil
	}
	if err := p.flk.Lock(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("could not lock %s: %w", p.path, err)
	}
	return nil
}

func (p *FilePreferences) unlock() {
	if p.flk != nil {
		_ = p.flk.Unlock()
	}
	p.mu.Unlock()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// load reads and verifies the document. A missing file yields an empty one.
func (p *FilePreferences) load() (prefsDocument, error) {
	doc := prefsDocument{Preferences: map[string]string{}}

	data, err := afero.ReadFile(p.fs, p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read %s: %w", p.path, err)
	}

	expected, err := afero.ReadFile(p.fs, p.path+checksumSuffix)
	switch {
	case err == nil:
		if actual := calculateChecksum(data); actual != strings.TrimSpace(string(expected)) {
			return doc, fmt.Errorf("checksum mismatch for %s - file is corrupt or tampered", p.path)
		}
	case errors.Is(err, fs.ErrNotExist):
		// hand-written file without checksum; the next save adds one
	default:
		return doc, fmt.Errorf("failed to read checksum for %s: %w", p.path, err)
	}

	if len(data) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal YAML from %s: %w", p.path, err)
	}
	if doc.Preferences == nil {
		doc.Preferences = map[string]string{}
	}
	return doc, nil
}

// save writes the document and its checksum via temporary files and renames.
func (p *FilePreferences) save(doc prefsDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp := p.path + ".tmp"
	sumPath := p.path + checksumSuffix
	tmpSum := sumPath + ".tmp"
	defer func() { _ = p.fs.Remove(tmp) }()
	defer func() { _ = p.fs.Remove(tmpSum) }()

	if err := afero.WriteFile(p.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := afero.WriteFile(p.fs, tmpSum, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpSum, err)
	}
	if err := p.fs.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	if err := p.fs.Rename(tmpSum, sumPath); err != nil {
		return fmt.Errorf("data file %s updated but checksum was not: %w", p.path, err)
	}
	return nil
}

func (p *FilePreferences) Get(_ context.Context, key string) (string, bool, error) {
	if err := p.lock(); err != nil {
		return "", false, err
	}
	defer p.unlock()

	doc, err := p.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Preferences[key]
	return v, ok, nil
}

func (p *FilePreferences) Set(_ context.Context, key, value string) error {
	if err := p.lock(); err != nil {
		return err
	}
	defer p.unlock()

	doc, err := p.load()
	if err != nil {
		return err
	}
	doc.Preferences[key] = value
	doc.UpdatedAt = time.Now().UTC()
	return p.save(doc)
}

// Watch reports changes to key made by any process writing the same file.
func (p *FilePreferences) Watch(ctx context.Context, key string) (<-chan string, error) {
	if p.flk == nil {
		return nil, ErrWatchUnsupported
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: saves replace the file by rename.
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	last, _, _ := p.Get(ctx, key)
	out := make(chan string, 1)
	target := filepath.Clean(p.path)
	sumTarget := target + checksumSuffix

	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name := filepath.Clean(ev.Name)
				if (name != target && name != sumTarget) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				v, found, err := p.Get(ctx, key)
				if err != nil || !found || v == last {
					continue
				}
				last = v
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

func (p *FilePreferences) Close() error {
	return nil
}

var _ PreferenceWatcher = (*FilePreferences)(nil)
