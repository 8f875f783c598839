// Package filesystem reads raw documents from local files and directories
// and watches directory trees for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// Metadata keys set on every raw document read from disk.
const (
	MetaFilename  = "filename"
	MetaExtension = "extension"
	MetaSize      = "size"
	MetaModified  = "modified"
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("connector is closed")

// Connector reads documents below a root path. The root may be a single
// file or a directory.
type Connector struct {
	rootPath string
	log      *logger.Logger

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// Option configures a Connector.
type Option func(*Connector)

// WithLogger sets the logger used for watcher errors.
func WithLogger(l *logger.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a connector rooted at rootPath.
func New(rootPath string, opts ...Option) *Connector {
	c := &Connector{rootPath: rootPath, log: logger.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RootPath returns the path the connector reads from.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// Validate checks that the root path exists.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(c.rootPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", domain.ErrNotFound, c.rootPath)
		}
		return fmt.Errorf("stat %s: %w", c.rootPath, err)
	}
	return nil
}

// Load reads every visible file below the root in lexical order.
// A root that names a file is read even when hidden.
func (c *Connector) Load(ctx context.Context) ([]domain.RawDocument, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	info, err := os.Stat(c.rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		doc, err := readFile(c.rootPath)
		if err != nil {
			return nil, err
		}
		return []domain.RawDocument{doc}, nil
	}

	var docs []domain.RawDocument
	err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != c.rootPath && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		doc, err := readFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// LoadPaths reads every path in order. Paths may be files, directories or
// file:// URIs.
func LoadPaths(ctx context.Context, paths ...string) ([]domain.RawDocument, error) {
	var docs []domain.RawDocument
	for _, p := range paths {
		loaded, err := New(LocalPath(p)).Load(ctx)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

// Watch reports file changes below the root until ctx is cancelled or the
// connector is closed. Directories created while watching are watched too.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := c.Validate(ctx); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(watcher, c.rootPath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}
	c.watchers = append(c.watchers, watcher)

	changes := make(chan domain.Change)
	go func() {
		defer watcher.Close()
		c.watchLoop(ctx, watcher.Events, watcher.Errors, func(dir string) error {
			return addTree(watcher, dir)
		}, changes)
	}()
	return changes, nil
}

// watchLoop forwards events as changes and closes changes on return.
// add is called for every directory created below the root.
func (c *Connector) watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	add func(dir string) error, changes chan<- domain.Change) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !c.hidden(event.Name) {
					if err := add(event.Name); err != nil {
						c.log.Warn("watch %s: %v", event.Name, err)
					}
				}
			}
			change := c.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			c.log.Warn("watch %s: %v", c.rootPath, err)
		}
	}
}

// handleFsEvent converts a watcher event into a change, or nil when the
// event is not about a visible regular file.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.Change {
	if c.hidden(event.Name) {
		return nil
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return &domain.Change{
			Type: domain.ChangeDeleted,
			Document: domain.RawDocument{
				URI:      event.Name,
				MIMEType: detectMIMEType(event.Name),
			},
		}
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	doc, err := readFile(event.Name)
	if err != nil {
		return nil
	}
	return &domain.Change{Type: changeType, Document: doc}
}

// hidden reports whether path has a hidden component below the root.
func (c *Connector) hidden(path string) bool {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		rel = path
	}
	return isHidden(rel)
}

// Close stops all watchers. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, w := range c.watchers {
		errs = append(errs, w.Close())
	}
	c.watchers = nil
	return errors.Join(errs...)
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func readFile(path string) (domain.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawDocument{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return domain.RawDocument{
		URI:      path,
		MIMEType: detectMIMEType(name),
		Content:  content,
		Metadata: map[string]any{
			MetaFilename:  name,
			MetaExtension: strings.TrimPrefix(filepath.Ext(name), "."),
			MetaSize:      info.Size(),
			MetaModified:  info.ModTime().UTC(),
		},
	}, nil
}

// textTypes covers extensions the mime package does not know or maps to
// something other than what the normalisers expect.
var textTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".text":     "text/plain",
	".log":      "text/x-log",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
	".htm":      "text/html",
	".html":     "text/html",
	".eml":      "message/rfc822",
}

func detectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "text/plain"
	}
	if t, ok := textTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	return "application/octet-stream"
}

// isHidden reports whether any component of path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}

// LocalPath converts a file:// URI to a local path. Other values pass
// through unchanged.
func LocalPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
