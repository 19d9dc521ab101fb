// Package importcmd provides the import command: turn an existing HTML
// description, e.g. saved from a gallery page, into bracket-tag source to
// start editing from.
package importcmd

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/view"
)

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <page.html>",
		Short: "Convert an HTML description to bracket-tag source",
		Long: `Convert an HTML description into bracket-tag source.

The result is a starting point, not a finished description: user links come
out as plain [url=...] tags and usually want to be rewritten as [user]
chains by hand.`,
		Example: `  galup import old-description.html -O description.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runImport(args[0], output, view.NewRenderer(noColor))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "O", "", "Write the source to a file instead of stdout")

	return cmd
}

func runImport(path, output string, renderer *view.Renderer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	source, err := Convert(string(data))
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", path, err)
	}

	if output == "" {
		renderer.RenderText(source)
		return nil
	}
	if err := os.WriteFile(output, []byte(source+"\n"), 0o644); err != nil {
		return err
	}
	renderer.Success("source written to " + output)
	return nil
}

var (
	linkRe   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
)

// Convert turns HTML into bracket-tag source by converting to markdown first
// and rewriting the inline markup that has a bracket-tag equivalent.
func Convert(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	// Links before bold and italic: the link syntax contains brackets of
	// its own.
	source := linkRe.ReplaceAllString(markdown, "[url=$2]$1[/url]")
	source = boldRe.ReplaceAllString(source, "[b]$1[/b]")
	source = italicRe.ReplaceAllString(source, "[i]$1[/i]")
	source = strings.ReplaceAll(source, "<u>", "[u]")
	source = strings.ReplaceAll(source, "</u>", "[/u]")

	return strings.TrimSpace(source), nil
}
