package dbsource

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	defaultNamespace = "databases"
	etcConfDir       = "/etc"
	confDSubdir      = "conf.d"

	logMsgSkippedFile = "skipping unparsable config file"
	logMsgSkippedPath = "skipping unreadable config path"
	logMsgLoadedFile  = "loaded config file"
	logAttrFile       = "file"
	logAttrPath       = "path"
	logAttrError      = "error"
)

// safeFileNamePattern is the conservative filename filter applied during
// a scan: word characters plus dot, plus and hyphen. Combined with the
// leading-dot check it keeps editor temp files and backups out of the
// source set.
var safeFileNamePattern = regexp.MustCompile(`^[\w.+-]+$`)

// Logger interface for scan diagnostics. The library emits nothing
// unless a host wires a logger in; all errors still propagate through
// return values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ConfigParser is the collaborator that turns one configuration file
// into a mapping from section name to key/value fields. The default is
// INIParser; hosts may substitute any format with the same shape.
type ConfigParser interface {
	Parse(path string) (map[string]map[string]string, error)
}

// Sources is the store of named database sources. It is populated
// lazily: the first read operation scans the configured search paths
// and parses every eligible file, after which reads are pure in-memory
// lookups.
//
// Sources assumes single-writer access and carries no internal locking;
// a concurrent host must synchronize Load, Reload and the mutating
// operations externally. Reads after a completed load are safe to
// repeat freely.
type Sources struct {
	namespace   string
	searchPaths []string
	parser      ConfigParser
	logger      Logger
	sources     map[string]Source
	loaded      bool
}

// Option defines a functional option for configuring a Sources store.
type Option func(*Sources) error

// WithNamespace sets the namespace used to derive the default search
// paths: /etc/<namespace>/conf.d and $HOME/.<namespace>. It has no
// effect when WithSearchPaths is also given.
func WithNamespace(namespace string) Option {
	return func(s *Sources) error {
		if namespace == "" {
			return ErrEmptyNamespace
		}

		s.namespace = namespace

		return nil
	}
}

// WithSearchPaths replaces the default search path list. Paths are
// scanned in reverse declared order, so earlier entries take priority
// in the merge.
func WithSearchPaths(paths ...string) Option {
	return func(s *Sources) error {
		s.searchPaths = append([]string(nil), paths...)
		return nil
	}
}

// WithParser sets the configuration file parser.
func WithParser(parser ConfigParser) Option {
	return func(s *Sources) error {
		if parser == nil {
			return ErrNilParser
		}

		s.parser = parser

		return nil
	}
}

// WithLogger sets the logger for scan diagnostics.
//
// Debug level: directories and files as they are scanned
// Warn level: files skipped because they were unreadable or unparsable.
func WithLogger(logger Logger) Option {
	return func(s *Sources) error {
		s.logger = logger
		return nil
	}
}

// New creates a Sources store with optional configuration. Without
// options it reads sources for the "databases" namespace from
// /etc/databases/conf.d and $HOME/.databases, parsing files as INI.
func New(options ...Option) (*Sources, error) {
	s := &Sources{
		namespace: defaultNamespace,
		parser:    INIParser{},
		sources:   make(map[string]Source),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.searchPaths == nil {
		s.searchPaths = defaultSearchPaths(s.namespace)
	}

	return s, nil
}

// defaultSearchPaths derives the standard search locations for a
// namespace. The home directory entry is omitted when no home
// directory can be determined.
func defaultSearchPaths(namespace string) []string {
	paths := []string{filepath.Join(etcConfDir, namespace, confDSubdir)}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+namespace))
	}

	return paths
}

// SearchPaths returns a copy of the current search path list in
// declared (priority) order.
func (s *Sources) SearchPaths() []string {
	return append([]string(nil), s.searchPaths...)
}

// SetSearchPaths replaces the search path list.
func (s *Sources) SetSearchPaths(paths ...string) {
	s.searchPaths = append([]string(nil), paths...)
}

// AddSearchPath appends a path at the end of the list, giving it the
// lowest priority in the merge.
func (s *Sources) AddSearchPath(path string) {
	s.searchPaths = append(s.searchPaths, path)
}

// PrependSearchPath inserts a path at the front of the list, giving it
// the highest priority in the merge.
func (s *Sources) PrependSearchPath(path string) {
	s.searchPaths = append([]string{path}, s.searchPaths...)
}

// RemoveSearchPath removes every occurrence of a path from the list.
func (s *Sources) RemoveSearchPath(path string) {
	kept := s.searchPaths[:0]

	for _, candidate := range s.searchPaths {
		if candidate != path {
			kept = append(kept, candidate)
		}
	}

	s.searchPaths = kept
}

// Load scans the search paths and merges every parsed section into the
// store, then marks the store loaded. Paths are scanned in reverse
// declared order so that sections from earlier paths overwrite
// same-named keys loaded from later ones. Individual files that cannot
// be read or parsed are skipped with a warning; they never abort the
// scan, and the store is marked loaded even after such skips.
//
// Load layers new data over whatever the store already holds: existing
// keys are overwritten, but sources that have disappeared from disk are
// not removed. Use Clear for a full reset.
func (s *Sources) Load() {
	for i := len(s.searchPaths) - 1; i >= 0; i-- {
		s.loadDir(s.searchPaths[i])
	}

	s.loaded = true
}

// Reload clears only the loaded flag; the next read operation runs
// Load again and layers fresh data over the retained sources.
func (s *Sources) Reload() {
	s.loaded = false
}

// Get returns the source with the given name, loading the store first
// if it has not been loaded yet.
func (s *Sources) Get(name string) (Source, bool) {
	s.ensureLoaded()

	src, ok := s.sources[name]

	return src, ok
}

// Has reports whether a source with the given name exists, loading the
// store first if it has not been loaded yet.
func (s *Sources) Has(name string) bool {
	s.ensureLoaded()

	_, ok := s.sources[name]

	return ok
}

// Names returns the sorted names of all known sources, loading the
// store first if it has not been loaded yet.
func (s *Sources) Names() []string {
	s.ensureLoaded()

	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Remove deletes a source from the store. It does not touch the
// loaded flag.
func (s *Sources) Remove(name string) {
	delete(s.sources, name)
}

// Clear empties the store and clears the loaded flag, so the next read
// operation performs a fresh scan.
func (s *Sources) Clear() {
	s.sources = make(map[string]Source)
	s.loaded = false
}

// Resolve turns a SourceRef into a Source record: a Name is looked up
// in the store (loading it first if needed) and fails with
// ErrUnknownSource when absent; an already resolved Source passes
// through unchanged.
func (s *Sources) Resolve(ref SourceRef) (Source, error) {
	switch r := ref.(type) {
	case Name:
		src, ok := s.Get(string(r))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, string(r))
		}

		return src, nil

	case Source:
		return r, nil

	default:
		return nil, fmt.Errorf("%w: nil source reference", ErrUnknownSource)
	}
}

func (s *Sources) ensureLoaded() {
	if !s.loaded {
		s.Load()
	}
}

// loadDir scans one search path directory. A missing directory is
// normal and skipped silently; other traversal errors are skipped with
// a warning. Directory entries are never sources themselves but are
// descended into; only regular files with a safe name are parsed.
func (s *Sources) loadDir(dir string) {
	if _, err := os.Stat(dir); err != nil {
		s.logDebug(logMsgSkippedPath, logAttrPath, dir, logAttrError, err)
		return
	}

	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.logWarn(logMsgSkippedPath, logAttrPath, path, logAttrError, err)
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		if !entry.Type().IsRegular() || !safeFileName(entry.Name()) {
			return nil
		}

		s.loadFile(path)

		return nil
	})
}

// loadFile parses one file and merges its sections into the store.
// Within a single directory the walk order is lexical, so later files
// win on same-named keys.
func (s *Sources) loadFile(path string) {
	parsed, err := s.parser.Parse(path)
	if err != nil {
		s.logWarn(logMsgSkippedFile, logAttrFile, path, logAttrError, err)
		return
	}

	for name, fields := range parsed {
		src, ok := s.sources[name]
		if !ok {
			src = make(Source, len(fields))
			s.sources[name] = src
		}

		for key, value := range fields {
			src[key] = value
		}
	}

	s.logDebug(logMsgLoadedFile, logAttrFile, path)
}

func safeFileName(name string) bool {
	return !strings.HasPrefix(name, ".") && safeFileNamePattern.MatchString(name)
}

// logDebug logs scan progress at debug level if a logger is configured.
func (s *Sources) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logWarn logs skipped files and paths at warn level if a logger is configured.
func (s *Sources) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
