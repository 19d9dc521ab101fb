// Package generate provides the generate command, the main entry point of
// galup: it turns a description source and an optional story document into
// one upload-ready file per configured website.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/config"
	"github.com/open-gallery-collective/galup/internal/logging"
	"github.com/open-gallery-collective/galup/internal/view"
	"github.com/open-gallery-collective/galup/office"
	"github.com/open-gallery-collective/galup/pkg/desc"
	"github.com/open-gallery-collective/galup/pkg/story"
)

type options struct {
	outputDir   string
	configPath  string
	defines     []string
	storyPath   string
	descPath    string
	files       []string
	keepOutDir  bool
	ignoreEmpty bool
	noColor     bool
}

// Options configures one generation run for callers outside this package,
// such as the watch command.
type Options struct {
	OutputDir   string
	ConfigPath  string
	Defines     []string
	StoryPath   string
	DescPath    string
	Files       []string
	KeepOutDir  bool
	IgnoreEmpty bool
	NoColor     bool
}

// Run performs a full generation run with the given options.
func Run(ctx context.Context, o Options) error {
	return runGenerate(ctx, &options{
		outputDir:   o.OutputDir,
		configPath:  o.ConfigPath,
		defines:     o.Defines,
		storyPath:   o.StoryPath,
		descPath:    o.DescPath,
		files:       o.Files,
		keepOutDir:  o.KeepOutDir,
		ignoreEmpty: o.IgnoreEmpty,
		noColor:     o.NoColor,
	}, nil, nil)
}

// defineRe matches the flag names accepted by -D; anything else would be
// impossible to reference from an [if=define==...] condition.
var defineRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewCmdGenerate creates the generate command.
func NewCmdGenerate() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate per-website upload files",
		Long: `Generate the upload files for every website named in the configuration.

The description source is parsed once and rendered once per website, so a
single source produces the right markup (BBCode, markdown or plain text),
the right user links and the right conditional text everywhere. A story
document is converted to the formats the configured websites accept.`,
		Example: `  # Description only
  galup generate -d description.txt

  # Description, story and a picture, keeping previous output
  galup generate -d description.txt -s story.odt -f cover.png -k

  # Set a flag tested by [if=define==hires]
  galup generate -d description.txt -D hires`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runGenerate(cmd.Context(), opts, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "out", "Directory the upload files are written to")
	cmd.Flags().StringArrayVarP(&opts.defines, "define", "D", nil, "Set a flag for [if=define==...] conditions (repeatable)")
	cmd.Flags().StringVarP(&opts.storyPath, "story", "s", "", "Story document to convert")
	cmd.Flags().StringVarP(&opts.descPath, "description", "d", "", "Description source to render")
	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "Additional file to copy to the output directory (repeatable)")
	cmd.Flags().BoolVarP(&opts.keepOutDir, "keep-out-dir", "k", false, "Keep existing files in the output directory")
	cmd.Flags().BoolVarP(&opts.ignoreEmpty, "ignore-empty-files", "I", false, "Allow empty story and attached files instead of failing")

	return cmd
}

func runGenerate(ctx context.Context, opts *options, conv office.Converter, renderer *view.Renderer) error {
	logger := logging.GetLogger("generate")

	if opts.descPath == "" && opts.storyPath == "" && len(opts.files) == 0 {
		return fmt.Errorf("nothing to generate: use --description, --story or --file")
	}
	for _, def := range opts.defines {
		if !defineRe.MatchString(def) {
			return fmt.Errorf("invalid flag name %q: use letters, digits, '-' and '_'", def)
		}
	}

	if renderer == nil {
		renderer = view.NewRenderer(opts.noColor)
	}
	if conv == nil {
		conv = &office.LibreOffice{}
	}

	reg := desc.Builtin()
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath, reg)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'galup init' to configure)", err)
	}
	for _, w := range cfg.Warnings {
		renderer.Warning(w)
	}

	staged, err := stageOutputDir(opts.outputDir, opts.keepOutDir)
	if err != nil {
		return err
	}
	done := false
	defer func() {
		if !done {
			staged.Rollback()
		}
	}()

	if opts.storyPath != "" && office.WriterRunning() {
		renderer.Warning("a word processor window is open; document conversion may produce empty files")
	}

	if opts.descPath != "" {
		if err := generateDescriptions(ctx, opts, conv, renderer, reg, cfg.Users); err != nil {
			return err
		}
	}

	if opts.storyPath != "" {
		if err := convertStory(ctx, opts, conv, renderer, cfg.Users); err != nil {
			return err
		}
	}

	for _, src := range opts.files {
		if err := copyFile(src, opts.outputDir, opts.ignoreEmpty); err != nil {
			return err
		}
		logger.Debug().Str("file", src).Msg("file copied")
	}

	done = true
	staged.Commit()
	renderer.Success("output written to " + opts.outputDir)
	return nil
}

// generateDescriptions parses the description source once and writes one
// rendered file per configured website.
func generateDescriptions(ctx context.Context, opts *options, conv office.Converter, renderer *view.Renderer, reg *desc.Registry, users desc.Users) error {
	source, err := readDescription(ctx, conv, opts.descPath)
	if err != nil {
		return err
	}

	doc, err := desc.Parse(source, reg)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.descPath, err)
	}

	for _, res := range desc.RenderAll(doc, reg, users, opts.defines) {
		site, ok := reg.Get(res.Site)
		if !ok {
			continue
		}
		for _, w := range res.Warnings {
			renderer.Warning(w)
		}

		// An all-conditional source can legitimately leave one site with
		// nothing to say; that stays local to the site.
		output := desc.Finalize(res.Output)
		if strings.TrimSpace(output) == "" {
			renderer.Warning(fmt.Sprintf("description for %s is empty", site.ID))
			output = ""
		}
		dst := filepath.Join(opts.outputDir, site.OutputFile)
		if err := os.WriteFile(dst, []byte(output), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// descTextExts are description sources read as-is; anything else goes
// through the document converter first.
var descTextExts = map[string]bool{
	".txt":    true,
	".md":     true,
	".bbcode": true,
}

func readDescription(ctx context.Context, conv office.Converter, path string) (string, error) {
	if descTextExts[strings.ToLower(filepath.Ext(path))] {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
	return conv.ExtractText(ctx, path)
}

func convertStory(ctx context.Context, opts *options, conv office.Converter, renderer *view.Renderer, users desc.Users) error {
	if story.Needed(users).None() {
		renderer.Warning("no configured website takes a story upload, skipping " + opts.storyPath)
		return nil
	}

	tmpDir, err := os.MkdirTemp("", "galup-story-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	_, err = story.Convert(ctx, conv, opts.storyPath, users, opts.outputDir, tmpDir, story.Options{
		IgnoreEmpty: opts.ignoreEmpty,
	})
	return err
}

func copyFile(src, outDir string, ignoreEmpty bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.Size() == 0 && !ignoreEmpty {
		return fmt.Errorf("%s is empty (use -I to allow empty files)", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(outDir, filepath.Base(src)))
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
