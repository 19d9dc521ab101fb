package preview

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-gallery-collective/galup/internal/view"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func preview(t *testing.T, source string, opts *options) string {
	t.Helper()
	opts.configPath = writeFile(t, "config.json", `{"fa": "UserFA", "weasyl": "UserW"}`)

	var buf bytes.Buffer
	renderer := view.NewRenderer(true)
	renderer.SetWriter(&buf)

	err := runPreview(context.Background(), writeFile(t, "description.txt", source), opts, nil, renderer)
	require.NoError(t, err)
	return buf.String()
}

func TestRunPreview(t *testing.T) {
	out := preview(t, "[b]Hi[/b] from [self][/self]", &options{site: "weasyl"})
	assert.Equal(t, "**Hi** from <!~UserW>\n", out)
}

func TestRunPreview_AliasResolved(t *testing.T) {
	out := preview(t, "[if=site==fa]there[/if]", &options{site: "furaffinity"})
	assert.Equal(t, "there\n", out)
}

func TestRunPreview_Defines(t *testing.T) {
	out := preview(t, "[if=define==hires]4k[/if]", &options{site: "fa", defines: []string{"hires"}})
	assert.Equal(t, "4k\n", out)
}

func TestRunPreview_HTML(t *testing.T) {
	out := preview(t, "[b]Hi[/b]", &options{site: "weasyl", html: true})
	assert.Contains(t, out, "<strong>Hi</strong>")
}

func TestRunPreview_Warnings(t *testing.T) {
	out := preview(t, "x [self][/self]", &options{site: "twitter"})
	assert.Contains(t, out, "! ")
	assert.Contains(t, out, "twitter")
}

func TestRunPreview_UnknownSite(t *testing.T) {
	opts := &options{site: "deviantart"}
	opts.configPath = writeFile(t, "config.json", `{"fa": "UserFA"}`)

	err := runPreview(context.Background(), "description.txt", opts, nil, view.NewRenderer(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown website")
}
