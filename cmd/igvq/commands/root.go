// Package commands provides the CLI commands for the igvq tool.
package commands

import (
	"fmt"

	"github.com/l3aro/igv-query/internal/config"
	"github.com/l3aro/igv-query/internal/log"
	"github.com/l3aro/igv-query/pkg/filter"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "igvq",
	Short: "igvq - Query compiler IR graphs from IGV XML dumps",
	Long: `igvq reads IGV XML dumps emitted by the HotSpot JVM and converts each
graph snapshot into an in-memory IR graph, optionally with its control-flow
graph.

Commands:
  list        List (id, method, phase) for each graph in a dump
  show        Load graphs and print structural summaries
  export      Load graphs and serialize the collection
  init        Initialize igvq configuration interactively

Graphs are selected with a filter expression over three symbols: the graph
ordinal g, and method(g)/phase(g) returning the enclosing method's short
name and the compiler phase name. Example: --filter 'g < 10 and "foo" in method(g)'

Use "igvq [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug information to standard error")
}

// setup loads the configuration and applies the verbosity flags. Every
// subcommand calls it first.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose || cfg.Verbose {
		log.Default().SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

// resolveFilter compiles the --filter flag, falling back to the configured
// default expression when the flag was not given.
func resolveFilter(cmd *cobra.Command, cfg *config.Config) (*filter.Filter, error) {
	src := cfg.DefaultFilter
	if cmd.Flags().Changed("filter") {
		src, _ = cmd.Flags().GetString("filter")
	}
	f, err := filter.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}
	return f, nil
}
