// Package init provides the init command for galup.
package init

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/config"
	"github.com/open-gallery-collective/galup/pkg/desc"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the galup configuration",
		Long: `Initialize galup by entering your username on each website you upload to.

Leave a website blank to skip it: only the websites with a username get
upload files generated. The configuration is saved as JSON and can be
edited by hand later.`,
		Example: `  # Interactive setup, saved under the user config directory
  galup init

  # Save next to the current project instead
  galup init --local`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				if local {
					configPath = config.LocalConfigFile
				} else {
					configPath = config.DefaultPath()
				}
			}
			return runInit(configPath)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Save the configuration in the working directory")

	return cmd
}

func runInit(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	sites := desc.Builtin().Sites()
	usernames := make([]string, len(sites))

	fields := make([]huh.Field, 0, len(sites))
	for i, site := range sites {
		fields = append(fields, huh.NewInput().
			Title(site.Name).
			Description("Your username on "+site.Name+" (blank to skip)").
			Value(&usernames[i]))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	entries := make(map[string]string)
	for i, site := range sites {
		if usernames[i] != "" {
			entries[string(site.ID)] = usernames[i]
		}
	}
	if len(entries) == 0 {
		return fmt.Errorf("no username entered, nothing to save")
	}

	if err := config.Save(configPath, entries); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  galup generate -d description.txt")

	return nil
}
