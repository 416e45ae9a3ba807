package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/l3aro/igv-query/internal/config"
	"github.com/l3aro/igv-query/internal/log"
	"github.com/l3aro/igv-query/pkg/igv"
	"github.com/l3aro/igv-query/pkg/loader"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Load graphs from an IGV dump and serialize the collection",
	Long: `Fully loads the selected graphs of an IGV XML dump and writes the
collection to a file, as msgpack (compact, reloadable by downstream tools)
or as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		f, err := resolveFilter(cmd, cfg)
		if err != nil {
			return err
		}

		format := cfg.ExportFormat
		if cmd.Flags().Changed("format") {
			v, _ := cmd.Flags().GetString("format")
			format = config.ExportFormat(v)
		}
		if format != config.FormatMsgpack && format != config.FormatJSON {
			return fmt.Errorf("unknown format: %s (use 'msgpack' or 'json')", format)
		}

		outPath, _ := cmd.Flags().GetString("output")

		logger := log.Default()
		logger.Debug("parsing input file", "path", args[0])
		doc, err := igv.ParseFile(args[0])
		if err != nil {
			return err
		}

		logger.Debug("converting XML to graphs")
		graphs, err := loader.Load(doc, loader.Options{Filter: f})
		if err != nil {
			return err
		}

		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()

		switch format {
		case config.FormatMsgpack:
			if err := graphs.Save(out); err != nil {
				return err
			}
		case config.FormatJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(graphs.Snapshot()); err != nil {
				return fmt.Errorf("encoding collection: %w", err)
			}
		}

		logger.Info("exported collection", "graphs", len(graphs), "path", outPath, "format", string(format))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("filter", "f", "", "Predicate selecting which graphs to export")
	exportCmd.Flags().StringP("output", "o", "", "Output file path")
	exportCmd.Flags().String("format", "", "Output format: msgpack or json (default from config)")
	_ = exportCmd.MarkFlagRequired("output")
	RootCmd.AddCommand(exportCmd)
}
