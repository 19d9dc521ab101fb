package office

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-libreoffice")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestLibreOffice_ExtractText(t *testing.T) {
	lo := &LibreOffice{Binary: writeScript(t, `printf '\357\273\277Hello\r\nWorld\n'`)}

	text, err := lo.ExtractText(context.Background(), "story.odt")
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", text, "BOM stripped, line endings normalized")
}

func TestLibreOffice_ExtractTextFailure(t *testing.T) {
	lo := &LibreOffice{Binary: writeScript(t, `echo 'cannot open' >&2; exit 1`)}

	_, err := lo.ExtractText(context.Background(), "missing.odt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open")
}

func TestLibreOffice_ConvertToRTFPath(t *testing.T) {
	lo := &LibreOffice{Binary: writeScript(t, `exit 0`)}

	out, err := lo.ConvertToRTF(context.Background(), "/tmp/work/story.txt", "/tmp/out")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/story.rtf", out)
}

func TestLibreOffice_DefaultBinary(t *testing.T) {
	lo := &LibreOffice{}
	assert.Equal(t, "libreoffice", lo.binary())
}
