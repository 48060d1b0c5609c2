// Package configfile owns the on-disk link configuration: loading it with
// schema validation and writing targeted edits back in the same format.
package configfile

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// Mutation edits a loaded configuration in place.
type Mutation func(cfg *domain.Config) error

// Store reads and writes a single configuration file.
//
// Load never caches: every call rereads the file. Writes from golink
// processes are serialized with an advisory file lock; edits made by other
// programs between load and write are overwritten.
type Store struct {
	path        string
	format      Format
	lockDir     string
	lockTimeout time.Duration
	log         logger.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLockDir places the advisory lock file in dir.
func WithLockDir(dir string) Option {
	return func(s *Store) { s.lockDir = dir }
}

// WithLockTimeout bounds how long a write waits for another writer.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// New returns a Store for path. The path must already be expanded.
func New(path string, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		path:        path,
		format:      FormatFor(path),
		lockTimeout: defaultLockTimeout,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lockDir == "" {
		s.lockDir = defaultLockDir()
	}
	return s
}

// Path returns the configuration file path.
func (s *Store) Path() string { return s.path }

// Format returns the encoding chosen from the file extension.
func (s *Store) Format() Format { return s.format }

// Load reads, parses and validates the configuration file.
func (s *Store) Load() (*domain.Config, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return Parse(data, s.format)
}

// Raw returns the file contents as stored, without parsing.
func (s *Store) Raw() ([]byte, error) {
	return s.read()
}

func (s *Store) read() ([]byte, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Errorf(domain.KindConfigNotFound, titleConfigError,
				"Configuration file not found: %s\n\nCheck the config path preference or create the file.", s.path)
		}
		return nil, domain.Wrap(domain.KindConfigUnreadable, titleConfigError,
			fmt.Sprintf("Cannot access configuration file: %s", s.path), err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigUnreadable, titleConfigError,
			fmt.Sprintf("Failed to read configuration file: %s", s.path), err)
	}
	return data, nil
}

// UpdateLink replaces the link whose URL equals originalURL in group
// groupName. Nothing is written when the group or link is missing.
func (s *Store) UpdateLink(groupName, originalURL string, updated domain.Link) error {
	return s.Apply(UpdateLinkMutation(groupName, originalURL, updated))
}

// AddLink appends link to group groupName, creating the group at the end
// when it does not exist. newGroupTitle is required in that case.
func (s *Store) AddLink(groupName string, link domain.Link, newGroupTitle string) error {
	return s.Apply(AddLinkMutation(groupName, link, newGroupTitle))
}

// Apply reloads the file, applies m and writes the result back. The
// whole sequence holds the writer lock.
func (s *Store) Apply(m Mutation) error {
	unlock, err := s.lock()
	if err != nil {
		return domain.Wrap(domain.KindConfigWrite, "Failed to Save", "Another golink process is writing the configuration", err)
	}
	defer unlock()

	cfg, err := s.Load()
	if err != nil {
		return err
	}
	if err := m(cfg); err != nil {
		return err
	}

	data, err := s.encodeChecked(cfg)
	if err != nil {
		return err
	}
	if err := s.write(data); err != nil {
		return err
	}

	s.log.Debug("configuration written",
		logger.String("path", s.path),
		logger.Int("groups", len(cfg.Groups)),
		logger.Int("links", cfg.LinkCount()),
	)
	return nil
}

// Preview returns the current file content and the content Apply(m)
// would write, without touching the file.
func (s *Store) Preview(m Mutation) (before, after []byte, err error) {
	before, err = s.read()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := Parse(before, s.format)
	if err != nil {
		return nil, nil, err
	}
	if err := m(cfg); err != nil {
		return nil, nil, err
	}
	after, err = s.encodeChecked(cfg)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// encodeChecked serializes cfg and refuses output that would not load back.
func (s *Store) encodeChecked(cfg *domain.Config) ([]byte, error) {
	data, err := Encode(cfg, s.format)
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigWrite, "Failed to Save", "Could not serialize configuration", err)
	}

	raw, err := decodeRaw(data, s.format)
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigWrite, "Failed to Save", "Serialized configuration does not parse", err)
	}
	if err := Validate(raw); err != nil {
		return nil, domain.Wrap(domain.KindValidation, "Invalid Link", domain.MessageOf(err), nil)
	}
	return data, nil
}

func (s *Store) write(data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(s.path, data, mode); err != nil {
		return domain.Wrap(domain.KindConfigWrite, "Failed to Save",
			fmt.Sprintf("Could not write configuration file: %s", s.path), err)
	}
	return nil
}

func (s *Store) lock() (func(), error) {
	if err := os.MkdirAll(s.lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}

	fl := flock.New(s.lockPath())
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire config lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("config lock busy: %s", fl.Path())
	}
	return func() { _ = fl.Unlock() }, nil
}

// lockPath derives a per-file lock name so two stores on the same file
// share a lock.
func (s *Store) lockPath() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(s.lockDir, hex.EncodeToString(sum[:8])+".lock")
}

func defaultLockDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "golink", "locks")
	}
	return filepath.Join(os.TempDir(), "golink-locks")
}

// UpdateLinkMutation replaces a link located by group name and URL.
func UpdateLinkMutation(groupName, originalURL string, updated domain.Link) Mutation {
	return func(cfg *domain.Config) error {
		gi := cfg.FindGroup(groupName)
		if gi < 0 {
			return domain.Errorf(domain.KindGroupNotFound, "Failed to Save", "Group '%s' not found", groupName)
		}
		li := cfg.Groups[gi].FindLink(originalURL)
		if li < 0 {
			return domain.Errorf(domain.KindLinkNotFound, "Failed to Save", "Link not found in group '%s': %s", groupName, originalURL)
		}
		cfg.Groups[gi].Links[li] = updated
		return nil
	}
}

// AddLinkMutation appends a link, creating its group when needed.
func AddLinkMutation(groupName string, link domain.Link, newGroupTitle string) Mutation {
	return func(cfg *domain.Config) error {
		if gi := cfg.FindGroup(groupName); gi >= 0 {
			// a title means the caller asked for a new group
			if newGroupTitle != "" {
				return domain.Errorf(domain.KindValidation, "Group Already Exists",
					"A group named '%s' already exists", groupName)
			}
			cfg.Groups[gi].Links = append(cfg.Groups[gi].Links, link)
			return nil
		}

		if strings.TrimSpace(newGroupTitle) == "" {
			return domain.Errorf(domain.KindValidation, "Group Title Required",
				"A title is required to create group '%s'", groupName)
		}
		cfg.Groups = append(cfg.Groups, domain.Group{
			Name:  groupName,
			Title: newGroupTitle,
			Links: []domain.Link{link},
		})
		return nil
	}
}

// Unchanged reports whether a preview produced identical bytes.
func Unchanged(before, after []byte) bool { return bytes.Equal(before, after) }
