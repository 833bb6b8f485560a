package sheetload

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type countingLoader struct {
	Loader
	mu    sync.Mutex
	calls int
}

func (c *countingLoader) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Loader.Load(ctx, name, r)
}

func TestMemo(t *testing.T) {
	ctx := context.Background()
	inner := &countingLoader{Loader: &CSV{InferTypes: true}}
	m := NewMemo(inner, zerolog.Nop())

	const input = "Code\nA001\nB002\n"
	first, err := m.Load(ctx, "a.csv", strings.NewReader(input))
	require.NoError(t, err)
	second, err := m.Load(ctx, "b.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.Equal(t, "a.csv", first.Name)
	require.Equal(t, "b.csv", second.Name)
	require.Equal(t, first.Columns, second.Columns)
	require.Same(t, &first.Records[0], &second.Records[0])
	require.Equal(t, 1, inner.calls)
	require.Equal(t, 1, m.Len())

	other, err := m.Load(ctx, "c.csv", strings.NewReader("Code\nC003\n"))
	require.NoError(t, err)
	require.NotSame(t, first, other)
	require.Equal(t, 2, inner.calls)
	require.Equal(t, 2, m.Len())

	_, err = m.Load(ctx, "bad.csv", strings.NewReader(""))
	require.Error(t, err)
	require.Equal(t, 2, m.Len())
}

func TestMemoConcurrent(t *testing.T) {
	m := NewMemo(&CSV{InferTypes: true}, zerolog.Nop())
	tables := make([]*sheet.Table, 8)
	g, ctx := errgroup.WithContext(context.Background())
	for i := range tables {
		i := i
		g.Go(func() error {
			var err error
			tables[i], err = m.Load(ctx, "same.csv", strings.NewReader("k\n1\n"))
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1, m.Len())
	for _, tbl := range tables {
		require.Equal(t, 1, tbl.NumRows())
	}
}
