package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-gallery-collective/galup/internal/cmd/generate"
	"github.com/open-gallery-collective/galup/internal/view"
)

func TestWatchedInputs(t *testing.T) {
	inputs := watchedInputs(generate.Options{
		DescPath:  "./description.txt",
		StoryPath: "work/story.odt",
		Files:     []string{"work/../cover.png"},
	})

	assert.Equal(t, map[string]bool{
		"description.txt": true,
		"work/story.odt":  true,
		"cover.png":       true,
	}, inputs)
}

func TestWatchedDirs(t *testing.T) {
	dirs := watchedDirs(map[string]bool{
		"description.txt": true,
		"work/story.odt":  true,
		"work/cover.png":  true,
	})

	assert.Len(t, dirs, 2)
	assert.Contains(t, dirs, ".")
	assert.Contains(t, dirs, "work")
}

func TestRunWatch_NothingToWatch(t *testing.T) {
	err := runWatch(context.Background(), generate.Options{}, view.NewRenderer(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to watch")
}

func TestRunWatch_RegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"fa": "UserFA"}`), 0o644))
	descPath := filepath.Join(dir, "description.txt")
	require.NoError(t, os.WriteFile(descPath, []byte("first"), 0o644))

	opts := generate.Options{
		OutputDir:  filepath.Join(dir, "out"),
		ConfigPath: configPath,
		DescPath:   descPath,
	}

	renderer := view.NewRenderer(true)
	renderer.SetWriter(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, opts, renderer) }()

	outFile := filepath.Join(opts.OutputDir, "desc_furaffinity.txt")
	waitForContent(t, outFile, "first\n")

	require.NoError(t, os.WriteFile(descPath, []byte("second"), 0o644))
	waitForContent(t, outFile, "second\n")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func waitForContent(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && string(data) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("%s never contained %q", path, want)
}
