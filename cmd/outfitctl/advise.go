package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
	"github.com/yanqian/weatherchap/internal/infra/wardrobe"
	"github.com/yanqian/weatherchap/pkg/logger"
)

type adviceReport struct {
	Weather outfit.Observation    `json:"weather" yaml:"weather"`
	Advice  outfit.Recommendation `json:"advice" yaml:"advice"`
}

func newAdviseCmd() *cobra.Command {
	var (
		obs          outfit.Observation
		wardrobePath string
		output       string
	)
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Derive an outfit from forecast values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if obs.PrecipProb < 0 || obs.PrecipProb > 100 {
				return fmt.Errorf("--precip must be between 0 and 100, got %v", obs.PrecipProb)
			}
			advice := outfit.DeriveAdvice(obs)
			if wardrobePath != "" {
				loader := wardrobe.NewLoader(wardrobe.NewFileFetcher(wardrobePath), 0, logger.Discard())
				outfit.ApplyWardrobe(&advice, loader.Load(context.Background()))
			}
			return writeOutput(cmd.OutOrStdout(), output, adviceReport{Weather: obs, Advice: advice})
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&obs.TempMax, "temp-max", 70, "forecast high in °F")
	flags.Float64Var(&obs.TempMin, "temp-min", 50, "forecast low in °F")
	flags.Float64Var(&obs.CurrentTemp, "current", 60, "current temperature in °F")
	flags.Float64Var(&obs.FeelsLike, "feels-like", 60, "apparent temperature in °F")
	flags.Float64Var(&obs.PrecipProb, "precip", 0, "maximum precipitation probability, 0-100")
	flags.IntVar(&obs.WeatherCode, "weathercode", 0, "WMO weather code")
	flags.StringVar(&wardrobePath, "wardrobe", "", "wardrobe JSON file to apply")
	flags.StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	return cmd
}
