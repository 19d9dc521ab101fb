// Package office drives the external word-processing application used to
// extract plain text from story files and to produce formatted documents.
// The rest of the tool depends only on the Converter contract, never on how
// the conversion is implemented.
package office

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// Converter is the document-conversion collaborator: a request/response
// operation that can fail, with no observable state shared with the core.
type Converter interface {
	// ExtractText returns the plain-text content of a document.
	ExtractText(ctx context.Context, path string) (string, error)
	// ConvertToRTF converts a document to RTF in outDir and returns the
	// path of the produced file.
	ConvertToRTF(ctx context.Context, path, outDir string) (string, error)
}

// LibreOffice implements Converter by invoking the libreoffice binary.
type LibreOffice struct {
	// Binary is the executable to invoke; defaults to "libreoffice".
	Binary string
}

func (l *LibreOffice) binary() string {
	if l.Binary == "" {
		return "libreoffice"
	}
	return l.Binary
}

// ExtractText runs `libreoffice --cat` and returns its stdout with the UTF-8
// BOM stripped and line endings normalized.
func (l *LibreOffice) ExtractText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, l.binary(), "--cat", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("path", path).Msg("extracting text")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s --cat %s: %w (%s)", l.binary(), path, err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimPrefix(stdout.String(), "\uFEFF")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// ConvertToRTF runs `libreoffice --convert-to rtf` into outDir.
func (l *LibreOffice) ConvertToRTF(ctx context.Context, path, outDir string) (string, error) {
	cmd := exec.CommandContext(ctx, l.binary(), "--convert-to", "rtf:Rich Text Format", "--outdir", outDir, path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug().Str("path", path).Str("outDir", outDir).Msg("converting to rtf")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s --convert-to rtf %s: %w (%s)", l.binary(), path, err, strings.TrimSpace(stderr.String()))
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".rtf"
	return filepath.Join(outDir, name), nil
}

// WriterRunning reports whether a LibreOffice Writer instance is currently
// open. Conversions started while Writer is running tend to produce empty
// output, so callers warn before proceeding.
func WriterRunning() bool {
	procs, err := process.Processes()
	if err != nil {
		return false
	}
	for _, p := range procs {
		cmdline, err := p.CmdlineSlice()
		if err != nil || len(cmdline) < 2 {
			continue
		}
		if !strings.Contains(cmdline[0], "libreoffice") && !strings.Contains(cmdline[0], "soffice") {
			continue
		}
		for _, arg := range cmdline[1:] {
			if arg == "--writer" {
				return true
			}
		}
	}
	return false
}
