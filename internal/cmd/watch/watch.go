// Package watch provides the watch command: re-run generation whenever one
// of the input files changes.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/cmd/generate"
	"github.com/open-gallery-collective/galup/internal/logging"
	"github.com/open-gallery-collective/galup/internal/view"
)

// debounceDelay groups the burst of events an editor emits for one save.
const debounceDelay = 200 * time.Millisecond

// NewCmdWatch creates the watch command.
func NewCmdWatch() *cobra.Command {
	opts := generate.Options{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-generate whenever an input file changes",
		Long: `Watch the description, story and attached files and re-run generation on
every change. Useful while drafting a description: keep a preview of the
output files open and edit the source.`,
		Example: `  galup watch -d description.txt -s story.odt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.NoColor, _ = cmd.Flags().GetBool("no-color")
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			return runWatch(cmd.Context(), opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "out", "Directory the upload files are written to")
	cmd.Flags().StringArrayVarP(&opts.Defines, "define", "D", nil, "Set a flag for [if=define==...] conditions (repeatable)")
	cmd.Flags().StringVarP(&opts.StoryPath, "story", "s", "", "Story document to convert")
	cmd.Flags().StringVarP(&opts.DescPath, "description", "d", "", "Description source to render")
	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "Additional file to copy to the output directory (repeatable)")
	cmd.Flags().BoolVarP(&opts.IgnoreEmpty, "ignore-empty-files", "I", false, "Allow empty story and attached files instead of failing")

	return cmd
}

func runWatch(ctx context.Context, opts generate.Options, renderer *view.Renderer) error {
	logger := logging.GetLogger("watch")

	if renderer == nil {
		renderer = view.NewRenderer(opts.NoColor)
	}

	inputs := watchedInputs(opts)
	if len(inputs) == 0 {
		return errors.New("nothing to watch: use --description, --story or --file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent directories: editors typically replace the file on
	// save, which would silently drop a watch on the file itself.
	for _, dir := range watchedDirs(inputs) {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	runOnce := func() {
		if err := generate.Run(ctx, opts); err != nil {
			renderer.Error(err.Error())
		}
	}
	runOnce()

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !inputs[filepath.Clean(event.Name)] {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("input changed")
			debounce.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			renderer.Error(err.Error())

		case <-debounce.C:
			runOnce()
		}
	}
}

// watchedInputs returns the set of input paths, cleaned for comparison with
// event names.
func watchedInputs(opts generate.Options) map[string]bool {
	inputs := make(map[string]bool)
	if opts.DescPath != "" {
		inputs[filepath.Clean(opts.DescPath)] = true
	}
	if opts.StoryPath != "" {
		inputs[filepath.Clean(opts.StoryPath)] = true
	}
	for _, f := range opts.Files {
		inputs[filepath.Clean(f)] = true
	}
	return inputs
}

// watchedDirs returns the distinct parent directories of the inputs.
func watchedDirs(inputs map[string]bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range inputs {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
