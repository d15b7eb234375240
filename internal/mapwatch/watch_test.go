package mapwatch_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/internal/mapwatch"
)

type sink struct {
	mu     sync.Mutex
	loaded []*grid.Grid
	reject bool
}

func (s *sink) apply(g *grid.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return errors.New("rejected")
	}
	s.loaded = append(s.loaded, g)

	return nil
}

func (s *sink) last() *grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.loaded) == 0 {
		return nil
	}

	return s.loaded[len(s.loaded)-1]
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.loaded)
}

func start(t *testing.T, path string, s *sink) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mapwatch.WatchWithDebounce(ctx, path, 20*time.Millisecond, logger, s.apply) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	time.Sleep(100 * time.Millisecond)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("...\n...\n"), 0o644))
	s := &sink{}
	start(t, path, s)

	require.NoError(t, os.WriteFile(path, []byte("....\n.##.\n....\n"), 0o644))

	require.Eventually(t, func() bool {
		g := s.last()
		return g != nil && g.Rows() == 3 && g.Cols() == 4
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, s.last().Blocked(grid.Cell{Row: 1, Col: 1}))
}

func TestWatch_ReloadsOnRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(path, []byte("[[0,0],[0,0]]"), 0o644))
	s := &sink{}
	start(t, path, s)

	tmp := filepath.Join(dir, "map.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[[0,1,0]]"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		g := s.last()
		return g != nil && g.Rows() == 1 && g.Cols() == 3
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_KeepsPreviousMapOnBadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("..\n..\n"), 0o644))
	s := &sink{}
	start(t, path, s)

	require.NoError(t, os.WriteFile(path, []byte("..\n.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("...\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, s.count(), "malformed map and unrelated files must not be applied")

	s.mu.Lock()
	s.reject = true
	s.mu.Unlock()
	require.NoError(t, os.WriteFile(path, []byte("...\n...\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, s.count())

	s.mu.Lock()
	s.reject = false
	s.mu.Unlock()
	require.NoError(t, os.WriteFile(path, []byte("#.\n..\n"), 0o644))
	require.Eventually(t, func() bool { return s.count() == 1 }, 5*time.Second, 20*time.Millisecond)
	assert.True(t, s.last().Blocked(grid.Cell{Row: 0, Col: 0}))
}

func TestWatch_MissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	err := mapwatch.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "map.txt"), logger,
		func(*grid.Grid) error { return nil })
	require.Error(t, err)
}
