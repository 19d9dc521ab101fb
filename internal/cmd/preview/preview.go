// Package preview provides the preview command: render a description for a
// single website to stdout without touching the output directory.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-gallery-collective/galup/internal/config"
	"github.com/open-gallery-collective/galup/internal/view"
	"github.com/open-gallery-collective/galup/office"
	"github.com/open-gallery-collective/galup/pkg/desc"
)

type options struct {
	site       string
	defines    []string
	html       bool
	configPath string
	noColor    bool
}

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "preview <description>",
		Short: "Render a description for one website to stdout",
		Example: `  # See the Weasyl rendering
  galup preview description.txt --site weasyl

  # The same, converted to HTML the way a markdown site would show it
  galup preview description.txt --site weasyl --html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runPreview(cmd.Context(), args[0], opts, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.site, "site", "t", "", "Website to render for (name or alias)")
	cmd.Flags().StringArrayVarP(&opts.defines, "define", "D", nil, "Set a flag for [if=define==...] conditions (repeatable)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Convert the markdown rendering to HTML")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}

func runPreview(ctx context.Context, descPath string, opts *options, conv office.Converter, renderer *view.Renderer) error {
	if renderer == nil {
		renderer = view.NewRenderer(opts.noColor)
	}
	if conv == nil {
		conv = &office.LibreOffice{}
	}

	reg := desc.Builtin()
	site, ok := reg.Canonical(opts.site)
	if !ok {
		return fmt.Errorf("unknown website %q", opts.site)
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath, reg)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'galup init' to configure)", err)
	}

	source, err := readSource(ctx, conv, descPath)
	if err != nil {
		return err
	}
	doc, err := desc.Parse(source, reg)
	if err != nil {
		return fmt.Errorf("%s: %w", descPath, err)
	}

	res := desc.Render(doc, reg, cfg.Users, desc.NewContext(site, opts.defines))
	for _, w := range res.Warnings {
		renderer.Warning(w)
	}

	output := desc.Finalize(res.Output)
	if opts.html {
		md := goldmark.New(goldmark.WithExtensions(extension.Linkify))
		var buf bytes.Buffer
		if err := md.Convert([]byte(output), &buf); err != nil {
			return err
		}
		output = buf.String()
	}
	renderer.RenderText(strings.TrimRight(output, "\n"))
	return nil
}

// readSource mirrors what generate accepts as a description: text formats
// as-is, everything else through the document converter.
func readSource(ctx context.Context, conv office.Converter, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".bbcode":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
	return conv.ExtractText(ctx, path)
}
