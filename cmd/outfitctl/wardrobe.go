package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
)

type checkReport struct {
	Path     string         `json:"path" yaml:"path"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Items    map[string]int `json:"items" yaml:"items"`
	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newWardrobeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Work with wardrobe documents",
	}
	cmd.AddCommand(newWardrobeCheckCmd())
	return cmd
}

func newWardrobeCheckCmd() *cobra.Command {
	var (
		output string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "check PATH",
		Short: "Validate a wardrobe document and report skipped entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read wardrobe: %w", err)
			}
			w, warnings, err := outfit.DecodeWardrobe(data)
			if err != nil {
				return err
			}
			report := checkReport{Path: path, Valid: len(warnings) == 0, Items: map[string]int{}, Warnings: warnings}
			for slot, items := range w {
				report.Items[string(slot)] = len(items)
			}
			if err := writeOutput(cmd.OutOrStdout(), output, report); err != nil {
				return err
			}
			if strict && !report.Valid {
				return fmt.Errorf("%s: %d entries skipped", path, len(warnings))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any entry would be skipped")
	return cmd
}
