package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pageseg/ingest"
)

// convertCmd rewrites any supported input as a page fixture
var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert an input file to a JSON or YAML page fixture",
	Long: `Read pages from a fixture or hOCR file and print them as a page fixture.

Examples:
  # Turn OCR output into an editable YAML fixture
  pageseg convert scan.hocr > scan.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("format", "yaml", "output format (yaml, json)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	pages, err := ingest.LoadFile(args[0])
	if err != nil {
		return err
	}
	doc := ingest.FromPages(pages)

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "writing JSON")
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "writing YAML")
		}
		return errors.Wrap(enc.Close(), "writing YAML")
	default:
		return errors.Errorf("invalid format %q, must be yaml or json", format)
	}
}
