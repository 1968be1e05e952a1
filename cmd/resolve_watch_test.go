package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadorder/internal/config"
)

// syncBuffer is a bytes.Buffer safe for a writer and a reader on different
// goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchedSources(t *testing.T) {
	dir := setupWorkspace(t, appManifests)
	cfgFile := filepath.Join(dir, config.DefaultConfigFileName)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, watchedSources(cfg, &resolveOptions{}), "no config file to watch yet")

	require.NoError(t, os.WriteFile(cfgFile, []byte("sources: [src]\n"), 0o644))
	cfg, err = config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src"), cfgFile}, watchedSources(cfg, &resolveOptions{}))

	flagged := &resolveOptions{sources: []string{filepath.Join(dir, "lib.yaml")}}
	assert.Equal(t, []string{filepath.Join(dir, "lib.yaml"), cfgFile}, watchedSources(cfg, flagged))
	assert.Equal(t, []string{filepath.Join(dir, "lib.yaml")}, flagged.sources, "flag sources are not modified")
}

func TestResolveCommandWatchReloadsConfig(t *testing.T) {
	dir := setupWorkspace(t, appManifests)
	cfgFile := filepath.Join(dir, config.DefaultConfigFileName)
	basePath := filepath.Join(dir, "base.yaml")
	adminPath := filepath.Join(dir, "src", "admin.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	cmd := newResolveCmd()
	cmd.SetContext(ctx)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-q", "--watch"})

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	// The config file is rewritten on every tick until a recomputed order
	// shows up, since the first write may land before the watcher is ready.
	assert.Eventually(t, func() bool {
		printed := out.String()
		if !strings.Contains(printed, adminPath) {
			return false
		}
		_ = os.WriteFile(cfgFile, []byte("exclude: [admin]\n"), 0o644)
		return strings.Count(printed, basePath) >= 2
	}, 10*time.Second, 500*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("resolve --watch did not stop after cancellation")
	}
	assert.Equal(t, 1, strings.Count(out.String(), adminPath), "the excluded unit is dropped after the reload")
}
