// Package session owns per-user dashboard state: the uploaded dataset and
// the chosen theme. Parsed datasets are memoized by content hash so that
// re-uploading the same file, or several users uploading it, parses once.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"suicidestats/internal/engine"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrSampleNotReady = errors.New("sample dataset is still loading")
	ErrNoSample       = errors.New("no sample dataset configured")
)

// Theme selects the chart template.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Template is the chart template name for the theme.
func (t Theme) Template() string {
	if t == ThemeDark {
		return "plotly_dark"
	}
	return "plotly_white"
}

// Session is a snapshot of one user's state.
type Session struct {
	ID        string
	FileName  string
	Hash      uint64
	Theme     Theme
	Dataset   *engine.Dataset
	CreatedAt time.Time
}

// DashboardOptions returns the engine options for this session.
func (s Session) DashboardOptions(topN int) engine.DashboardOptions {
	return engine.DashboardOptions{Theme: string(s.Theme), Template: s.Theme.Template(), TopN: topN}
}

// Options configures a Manager.
type Options struct {
	MaxSessions  int
	MaxDatasets  int
	DefaultTheme Theme
}

// Manager holds open sessions and the dataset memo.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
	datasets *lru.Cache[uint64, *engine.Dataset]
	loads    singleflight.Group
	theme    Theme

	sampleMu    sync.RWMutex
	sampleName  string
	sampleHash  uint64
	sample      *engine.Dataset
	sampleErr   error
	sampleReady bool
}

// NewManager builds a Manager. Zero sizes fall back to small defaults.
func NewManager(opts Options) (*Manager, error) {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 128
	}
	if opts.MaxDatasets <= 0 {
		opts.MaxDatasets = 8
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = ThemeLight
	}
	sessions, err := lru.New[string, *Session](opts.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	datasets, err := lru.New[uint64, *engine.Dataset](opts.MaxDatasets)
	if err != nil {
		return nil, fmt.Errorf("dataset cache: %w", err)
	}
	return &Manager{sessions: sessions, datasets: datasets, theme: opts.DefaultTheme}, nil
}

// load parses content, reusing a memoized dataset when the bytes were seen
// before. Concurrent loads of identical content share one parse.
func (m *Manager) load(content []byte) (*engine.Dataset, uint64, error) {
	h := xxh3.Hash(content)
	if ds, ok := m.datasets.Get(h); ok {
		return ds, h, nil
	}
	v, err, _ := m.loads.Do(strconv.FormatUint(h, 16), func() (interface{}, error) {
		// a load that finished between the Get above and Do already filled the memo
		if ds, ok := m.datasets.Get(h); ok {
			return ds, nil
		}
		ds, err := engine.Load(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		m.datasets.Add(h, ds)
		return ds, nil
	})
	if err != nil {
		return nil, h, err
	}
	return v.(*engine.Dataset), h, nil
}

// Open parses an upload and starts a session for it.
func (m *Manager) Open(fileName string, content []byte) (Session, error) {
	ds, h, err := m.load(content)
	if err != nil {
		return Session{}, err
	}
	return m.register(fileName, h, ds), nil
}

func (m *Manager) register(fileName string, h uint64, ds *engine.Dataset) Session {
	s := &Session{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Hash:      h,
		Theme:     m.theme,
		Dataset:   ds,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.sessions.Add(s.ID, s)
	m.mu.Unlock()
	return *s
}

// Get returns a snapshot of session id.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions.Get(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	return *s, nil
}

// Replace swaps the dataset of an existing session for a new upload. The
// memo entry of the file it replaces is dropped once nothing else uses it.
func (m *Manager) Replace(id, fileName string, content []byte) (Session, error) {
	if _, err := m.Get(id); err != nil {
		return Session{}, err
	}
	ds, h, err := m.load(content)
	if err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions.Get(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	old := s.Hash
	s.FileName, s.Hash, s.Dataset = fileName, h, ds
	if old != h && !m.inUse(old) {
		m.datasets.Remove(old)
	}
	return *s, nil
}

// inUse reports whether any open session or the sample still holds the
// dataset with this hash. Callers hold m.mu.
func (m *Manager) inUse(hash uint64) bool {
	for _, id := range m.sessions.Keys() {
		if s, ok := m.sessions.Peek(id); ok && s.Hash == hash {
			return true
		}
	}
	m.sampleMu.RLock()
	defer m.sampleMu.RUnlock()
	return m.sampleReady && m.sample != nil && m.sampleHash == hash
}

// SetTheme changes the theme of session id.
func (m *Manager) SetTheme(id string, theme Theme) (Session, error) {
	theme, err := ParseTheme(string(theme))
	if err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions.Get(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	s.Theme = theme
	return *s, nil
}

// Close forgets session id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.sessions.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// Cached reports whether a dataset with this content hash is memoized.
func (m *Manager) Cached(hash uint64) bool {
	return m.datasets.Contains(hash)
}

// Warm loads a sample file in the background. Until it finishes,
// OpenSample returns ErrSampleNotReady.
func (m *Manager) Warm(path string) {
	m.sampleMu.Lock()
	m.sampleName, m.sampleReady, m.sample, m.sampleErr = path, false, nil, nil
	m.sampleMu.Unlock()

	go func() {
		log.Printf("BACKGROUND: Loading sample dataset %s...", path)
		t0 := time.Now()

		var (
			ds *engine.Dataset
			h  uint64
		)
		content, err := os.ReadFile(path)
		if err == nil {
			ds, h, err = m.load(content)
		}

		m.sampleMu.Lock()
		m.sample, m.sampleHash, m.sampleErr, m.sampleReady = ds, h, err, true
		m.sampleMu.Unlock()

		if err != nil {
			log.Printf("BACKGROUND: Sample load failed: %v", err)
			return
		}
		log.Printf("BACKGROUND: Sample ready in %v.", time.Since(t0))
	}()
}

// OpenSample starts a session over the preloaded sample dataset.
func (m *Manager) OpenSample() (Session, error) {
	m.sampleMu.RLock()
	name, ready, ds, h, err := m.sampleName, m.sampleReady, m.sample, m.sampleHash, m.sampleErr
	m.sampleMu.RUnlock()

	switch {
	case name == "":
		return Session{}, ErrNoSample
	case !ready:
		return Session{}, ErrSampleNotReady
	case err != nil:
		return Session{}, err
	}
	return m.register(filepath.Base(name), h, ds), nil
}
