package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "outfitctl",
		Short: "Inspect WeatherChap outfit rules and wardrobe files offline",
		Long: `outfitctl evaluates the outfit rules against a hand-entered forecast and
checks wardrobe documents before they are deployed.

Examples:
  # What would a cold, rainy day recommend?
  outfitctl advise --temp-max 35 --precip 70

  # Same, with custom labels from a wardrobe file, as YAML
  outfitctl advise --temp-max 35 --precip 70 --wardrobe ./wardrobe.json -o yaml

  # Validate a wardrobe document
  outfitctl wardrobe check ./wardrobe.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAdviseCmd(), newWardrobeCmd())
	return root
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q (json, yaml)", format)
	}
}
