package monitor

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/stopwatch/metrics"
)

const Namespace = "monitor"

var ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

const defaultShards = 16

// ProviderFunc creates the metrics provider backing the monitor identified by key.
type ProviderFunc func(key Key) metrics.Provider

type repositoryConfig struct {
	shards       uint
	providerFunc ProviderFunc
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*repositoryConfig) error

// WithShards sets the number of lock shards. n must be a power of two.
func WithShards(n uint) RepositoryOption {
	return func(cfg *repositoryConfig) error {
		if n == 0 || n&(n-1) != 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("shards", strconv.FormatUint(uint64(n), 10)))
		}
		cfg.shards = n
		return nil
	}
}

// WithProviderFunc sets the factory of per-monitor metric providers.
func WithProviderFunc(f ProviderFunc) RepositoryOption {
	return func(cfg *repositoryConfig) error {
		if f == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("provider", "nil provider func"))
		}
		cfg.providerFunc = f
		return nil
	}
}

type shard struct {
	mu       sync.RWMutex
	monitors map[Key]Monitor
}

// Repository creates monitors on first lookup and returns the same instance afterwards.
// It is safe for concurrent use; keys are spread over independently locked shards.
type Repository struct {
	shards       []shard
	mask         uint64
	providerFunc ProviderFunc
}

// NewRepository creates an empty Repository.
func NewRepository(opts ...RepositoryOption) (*Repository, error) {
	cfg := repositoryConfig{
		shards:       defaultShards,
		providerFunc: func(Key) metrics.Provider { return metrics.NewBasicProvider() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Repository{
		shards:       make([]shard, cfg.shards),
		mask:         uint64(cfg.shards - 1),
		providerFunc: cfg.providerFunc,
	}
	for i := range r.shards {
		r.shards[i].monitors = make(map[Key]Monitor)
	}
	return r, nil
}

func (r *Repository) shardFor(key Key) *shard {
	h := xxhash.Sum64String(key.Category + "\x00" + key.Name)
	return &r.shards[h&r.mask]
}

// Get returns the monitor for key, creating it on first use.
func (r *Repository) Get(key Key) Monitor {
	s := r.shardFor(key)

	s.mu.RLock()
	m, ok := s.monitors[key]
	s.mu.RUnlock()
	if ok {
		return m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// re-check after acquiring write lock
	if m, ok = s.monitors[key]; ok {
		return m
	}
	m = New(key, r.providerFunc(key))
	s.monitors[key] = m
	return m
}

// Lookup returns the monitor for key without creating it.
func (r *Repository) Lookup(key Key) (Monitor, bool) {
	s := r.shardFor(key)
	s.mu.RLock()
	m, ok := s.monitors[key]
	s.mu.RUnlock()
	return m, ok
}

// Remove drops the monitor for key. Stopwatches still holding it keep updating the detached instance.
func (r *Repository) Remove(key Key) bool {
	s := r.shardFor(key)
	s.mu.Lock()
	_, ok := s.monitors[key]
	delete(s.monitors, key)
	s.mu.Unlock()
	return ok
}

// Monitors returns all monitors sorted by category then name.
func (r *Repository) Monitors() []Monitor {
	var all []Monitor
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		for _, m := range s.monitors {
			all = append(all, m)
		}
		s.mu.RUnlock()
	}
	slices.SortFunc(all, func(a, b Monitor) int {
		ka, kb := a.Key(), b.Key()
		if c := strings.Compare(ka.Category, kb.Category); c != 0 {
			return c
		}
		return strings.Compare(ka.Name, kb.Name)
	})
	return all
}

// Snapshots takes a Snapshot of every monitor, in Monitors order.
func (r *Repository) Snapshots() []Snapshot {
	monitors := r.Monitors()
	out := make([]Snapshot, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Take(m))
	}
	return out
}

// Len returns the number of registered monitors.
func (r *Repository) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.monitors)
		s.mu.RUnlock()
	}
	return n
}

// Reset removes every monitor.
func (r *Repository) Reset() {
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		s.monitors = make(map[Key]Monitor)
		s.mu.Unlock()
	}
}
