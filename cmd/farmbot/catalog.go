package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/FarmBot_Go/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect game catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog file, or the embedded catalog when no path is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c    *catalog.Catalog
			err  error
			name = "embedded catalog"
		)
		if len(args) == 1 {
			name = args[0]
			c, err = loadCatalogFile(name)
		} else {
			c, err = catalog.Default()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: OK\n", name)
		fmt.Fprintf(out, "  version:   %d\n", c.Version())
		fmt.Fprintf(out, "  digest:    %s\n", c.Digest())
		fmt.Fprintf(out, "  crops:     %d\n", len(c.Crops()))
		fmt.Fprintf(out, "  max plots: %d\n", c.MaxPlots())
		fmt.Fprintf(out, "  max level: %d\n", c.MaxPlotLevel())
		return nil
	},
}

// loadCatalogFile reports schema violations before semantic ones
func loadCatalogFile(path string) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := catalog.FormatFromPath(path)
	if err := catalog.CheckSchema(raw, format); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return catalog.Parse(raw, format)
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
