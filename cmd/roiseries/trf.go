package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/config"
	"github.com/sartorproj/roiseries/features"
	"github.com/sartorproj/roiseries/frame"
	"github.com/sartorproj/roiseries/pipeline"
)

func (a *app) trfCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "trf",
		Short: "Reshape a wide ROI export into a training record frame",
		Example: `  roiseries trf --config job.yaml
  ROISERIES_OUTPUT=trf.csv roiseries trf --config job.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			// The job's level applies unless the flag or env already set one.
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != a.v.GetString("log-level") {
				if err := a.setLogger(cfg.LogLevel); err != nil {
					return err
				}
			}
			if cfg.Output == "" {
				return a.runTRF(cfg, cmd.OutOrStdout())
			}

			f, err := os.Create(cfg.Output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := a.runTRF(cfg, f); err != nil {
				f.Close()
				if rmErr := os.Remove(cfg.Output); rmErr != nil {
					a.logger.Warn("partial output left behind", zap.String("output", cfg.Output), zap.Error(rmErr))
				}
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "job.yaml", "job configuration file")
	return cmd
}

func (a *app) runTRF(cfg *config.Config, out io.Writer) error {
	tbl, err := readTimeIndexed(cfg.Input)
	if err != nil {
		return err
	}

	var opts []features.TAFOption
	if sel := cfg.Selector(); sel != nil {
		opts = append(opts, features.WithExclude(sel))
	}
	opts = append(opts, features.WithLogger(a.logger))
	trf, err := features.NewTAFToTRF(cfg.TAFShifts(), opts...)
	if err != nil {
		return err
	}

	records, err := pipeline.MakePipeline(trf).With(pipeline.WithLogger(a.logger)).FitTransform(tbl)
	if err != nil {
		return err
	}
	a.logger.Info("training record frame built",
		zap.String("input", cfg.Input),
		zap.Int("rows", records.Len()),
		zap.Int("columns", records.NumColumns()),
	)
	return frame.WriteTableCSV(out, records, cfg.CSVOptions())
}

// readTimeIndexed reads a wide CSV export and moves its column suffixes
// into the row index.
func readTimeIndexed(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	wide, err := frame.ReadWideCSV(f, nil)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return features.TimeIndexFromColSuffix(wide)
}
