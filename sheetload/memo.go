package sheetload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"sync"

	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sheetcmp",
		Subsystem: "load",
		Name:      "cache_hits",
		Help:      "Number of loads served from the content cache.",
	})
)

// Memo wraps a Loader, caching tables by the SHA-256 of the input bytes so
// the same file is only parsed once. Each caller gets its own *sheet.Table
// carrying the name it asked for, but the records are shared and must not be
// modified. Memo is safe for concurrent use.
type Memo struct {
	inner  Loader
	logger zerolog.Logger

	mu struct {
		sync.Mutex
		tables map[[sha256.Size]byte]*sheet.Table
	}
}

var _ Loader = (*Memo)(nil)

func NewMemo(inner Loader, logger zerolog.Logger) *Memo {
	m := &Memo{inner: inner, logger: logger}
	m.mu.tables = make(map[[sha256.Size]byte]*sheet.Table)
	return m
}

func (m *Memo) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable(err, name)
	}
	sum := sha256.Sum256(b)

	m.mu.Lock()
	t, ok := m.mu.tables[sum]
	m.mu.Unlock()
	if ok {
		cacheHits.Inc()
		m.logger.Debug().Str("name", name).Hex("sha256", sum[:]).Msgf("using cached table")
		return renamed(t, name), nil
	}

	t, err = m.inner.Load(ctx, name, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	// Keep the first table stored for this content if another load raced us.
	if existing, ok := m.mu.tables[sum]; ok {
		t = renamed(existing, name)
	} else {
		m.mu.tables[sum] = t
	}
	m.mu.Unlock()
	m.logger.Debug().Str("name", name).Hex("sha256", sum[:]).Int("rows", t.NumRows()).Msgf("loaded table")
	return t, nil
}

// renamed returns a shallow copy of t under name.
func renamed(t *sheet.Table, name string) *sheet.Table {
	c := *t
	c.Name = name
	return &c
}

// Len returns the number of cached tables.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mu.tables)
}
