package importcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-gallery-collective/galup/internal/view"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "bold",
			html: "<p>drawn by <strong>someone</strong></p>",
			want: "drawn by [b]someone[/b]",
		},
		{
			name: "italic",
			html: "<p><em>soon</em></p>",
			want: "[i]soon[/i]",
		},
		{
			name: "link",
			html: `<p>see <a href="https://example.com/gallery">the gallery</a></p>`,
			want: "see [url=https://example.com/gallery]the gallery[/url]",
		},
		{
			name: "nested formatting in link text",
			html: `<p><a href="https://example.com"><strong>here</strong></a></p>`,
			want: "[url=https://example.com][b]here[/b][/url]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunImport_ToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(src, []byte("<p><strong>Hi</strong></p>"), 0o644))
	dst := filepath.Join(dir, "description.txt")

	renderer := view.NewRenderer(true)
	renderer.SetWriter(&bytes.Buffer{})

	err := runImport(src, dst, renderer)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "[b]Hi[/b]\n", string(data))
}

func TestRunImport_MissingFile(t *testing.T) {
	err := runImport("/nonexistent.html", "", view.NewRenderer(true))
	require.Error(t, err)
}
