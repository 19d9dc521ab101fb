// Package story converts an author's story document into the per-website
// upload formats: plain text and markdown with Windows line endings for the
// sites that take text uploads, and RTF for the site that takes documents.
package story

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/open-gallery-collective/galup/office"
	"github.com/open-gallery-collective/galup/pkg/desc"
)

// ErrEmptyStory is returned when the extracted story contains no text.
var ErrEmptyStory = errors.New("story contains no text")

// Outputs says which story formats the configured sites need.
type Outputs struct {
	Text     bool // furaffinity, inkbunny, sofurry
	Markdown bool // weasyl
	RTF      bool // aryion
}

// Needed derives the required formats from the configured usernames.
func Needed(users desc.Users) Outputs {
	var out Outputs
	for site := range users {
		switch site {
		case desc.Furaffinity, desc.Inkbunny, desc.Sofurry:
			out.Text = true
		case desc.Weasyl:
			out.Markdown = true
		case desc.Aryion:
			out.RTF = true
		}
	}
	return out
}

// None reports whether no story format is needed at all.
func (o Outputs) None() bool {
	return !o.Text && !o.Markdown && !o.RTF
}

// Options tune the conversion.
type Options struct {
	// IgnoreEmpty writes empty outputs instead of failing when the story
	// has no text.
	IgnoreEmpty bool
}

// Convert extracts the text of the story at path and writes every format the
// configured sites need into outDir. tmpDir holds the intermediate plain-text
// file fed to the RTF conversion. It returns the paths of the files written.
func Convert(ctx context.Context, conv office.Converter, path string, users desc.Users, outDir, tmpDir string, opts Options) ([]string, error) {
	needs := Needed(users)
	if needs.None() {
		return nil, errors.New("no configured site takes a story upload")
	}

	text, err := conv.ExtractText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting story text: %w", err)
	}

	v := buildVariants(text)
	if v.empty && !opts.IgnoreEmpty {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStory, path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var written []string

	if needs.Text {
		dst := filepath.Join(outDir, name+".txt")
		if err := os.WriteFile(dst, []byte(v.text), 0o644); err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	if needs.Markdown {
		dst := filepath.Join(outDir, name+".md")
		if err := os.WriteFile(dst, []byte(v.markdown), 0o644); err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	if needs.RTF {
		dst, err := convertRTF(ctx, conv, v.rtfSource, name, outDir, tmpDir)
		if err != nil {
			return written, err
		}
		written = append(written, dst)
	}

	log.Debug().Strs("files", written).Msg("story converted")
	return written, nil
}

// convertRTF writes the cleaned plain text to tmpDir, converts it to RTF in
// outDir and rewrites the converter's monospace default to the normal style.
func convertRTF(ctx context.Context, conv office.Converter, source, name, outDir, tmpDir string) (string, error) {
	tmp := filepath.Join(tmpDir, name+".txt")
	if err := os.WriteFile(tmp, []byte(source), 0o644); err != nil {
		return "", err
	}

	produced, err := conv.ConvertToRTF(ctx, tmp, outDir)
	if err != nil {
		return "", fmt.Errorf("converting story to rtf: %w", err)
	}

	raw, err := os.ReadFile(produced)
	if err != nil {
		return "", err
	}
	fixed, err := ReplaceStyle(string(raw), "Preformatted Text", "Normal")
	if err != nil {
		return "", fmt.Errorf("rewriting rtf styles: %w", err)
	}
	if err := os.WriteFile(produced, []byte(fixed), 0o644); err != nil {
		return "", err
	}
	return produced, nil
}

type variants struct {
	text      string // CRLF, blank-line runs collapsed to one
	markdown  string // CRLF, markdown metacharacters escaped
	rtfSource string // LF, blank lines removed
	empty     bool
}

// buildVariants normalizes the extracted text: lines are stripped, leading
// blank lines dropped and runs of blank lines collapsed. The RTF source keeps
// no blank lines at all because the document converter turns every line into
// its own paragraph.
func buildVariants(text string) variants {
	var txt, md, rtf strings.Builder
	started := false
	pendingBlank := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pendingBlank = started
			continue
		}

		switch {
		case !started:
			started = true
		case pendingBlank:
			txt.WriteString("\r\n\r\n")
			md.WriteString("\r\n\r\n")
			rtf.WriteString("\n")
		default:
			txt.WriteString("\r\n")
			md.WriteString("\r\n")
			rtf.WriteString("\n")
		}
		pendingBlank = false

		txt.WriteString(line)
		md.WriteString(escapeMarkdown(line))
		rtf.WriteString(line)
	}

	v := variants{empty: !started}
	if started {
		txt.WriteString("\r\n")
		md.WriteString("\r\n")
	}
	v.text = txt.String()
	v.markdown = md.String()
	v.rtfSource = rtf.String()
	return v
}

// escapeMarkdown keeps story text literal when uploaded as markdown:
// asterisks are escaped and runs of equals signs broken up so lines are not
// promoted to headings.
func escapeMarkdown(line string) string {
	line = strings.ReplaceAll(line, "*", `\*`)
	var sb strings.Builder
	sb.Grow(len(line))
	for i := 0; i < len(line); i++ {
		sb.WriteByte(line[i])
		if line[i] == '=' && i+1 < len(line) && line[i+1] == '=' {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
