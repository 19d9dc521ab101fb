// Package sites provides the sites command, listing the supported websites.
package sites

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/view"
	"github.com/open-gallery-collective/galup/pkg/desc"
)

// NewCmdSites creates the sites command.
func NewCmdSites() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the supported websites",
		Long: `List every website galup can generate upload files for, with the aliases
accepted in description tags and configuration keys, and the description
file written for it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(noColor)
			runSites(desc.Builtin(), renderer)
			return nil
		},
	}

	return cmd
}

func runSites(reg *desc.Registry, renderer *view.Renderer) {
	headers := []string{"WEBSITE", "NAME", "ALIASES", "OUTPUT"}
	var rows [][]string

	for _, site := range reg.Sites() {
		var aliases []string
		for _, a := range site.Aliases {
			if a != string(site.ID) {
				aliases = append(aliases, a)
			}
		}
		rows = append(rows, []string{
			string(site.ID),
			site.Name,
			strings.Join(aliases, ", "),
			site.OutputFile,
		})
	}

	renderer.RenderTable(headers, rows)
}
