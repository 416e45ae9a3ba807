package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/l3aro/igv-query/internal/config"
	"github.com/l3aro/igv-query/pkg/filter"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize igvq configuration interactively",
	Long: `Guides you through setting up igvq configuration step by step.
Creates a config file with the default filter expression and export format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	defaultFilter := cfg.DefaultFilter
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default filter expression").
				Description("Applied when no --filter flag is given, e.g. g < 10 and 'foo' in method(g)").
				Placeholder(defaultFilter).
				Validate(func(src string) error {
					if src == "" {
						return nil
					}
					_, err := filter.Compile(src)
					return err
				}).
				Value(&defaultFilter),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if defaultFilter != "" {
		cfg.DefaultFilter = defaultFilter
	}

	var exportFormat string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default export format").
				Options(
					huh.NewOption("msgpack (compact, reloadable)", "msgpack"),
					huh.NewOption("JSON (human-readable)", "json"),
				).
				Value(&exportFormat),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	cfg.ExportFormat = config.ExportFormat(exportFormat)

	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Verbose logging").
				Description("Print debug information to standard error by default?").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.Verbose),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var saveLocationChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Save Configuration").
				Description("Where to save the configuration file?").
				Options(
					huh.NewOption(fmt.Sprintf("Global (%s)", config.GlobalPath()), "global"),
					huh.NewOption(fmt.Sprintf("Project (%s)", config.ProjectPath()), "project"),
				).
				Value(&saveLocationChoice),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	configPath := config.ProjectPath()
	if saveLocationChoice == "global" {
		configPath = config.GlobalPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", configPath)
	fmt.Printf("Default filter: %s\n", cfg.DefaultFilter)
	fmt.Printf("Export format: %s\n", cfg.ExportFormat)
	fmt.Printf("Verbose: %v\n", cfg.Verbose)
	fmt.Println("=============================")

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration saved to: %s\n", configPath)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
