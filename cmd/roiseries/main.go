// Command roiseries runs the ROI time series feature transformers on CSV
// exports.
//
//	roiseries trf --config job.yaml
//	roiseries reltime --input wide.csv
//	roiseries doy --start 2015-01-01 --end 2016-12-31
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/internal/logging"
)

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func main() {
	root, a := newRootCmd()
	if err := root.Execute(); err != nil {
		if a.logger != nil {
			a.logger.Error("command failed", zap.Error(err))
			_ = a.logger.Sync()
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("ROISERIES")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "roiseries",
		Short:         "Feature transformers for region-of-interest time series",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setLogger(a.v.GetString("log-level"))
		},
	}
	root.PersistentFlags().String("log-level", "info", "debug, info, warn, error or fatal (env ROISERIES_LOG_LEVEL)")
	_ = a.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(a.trfCmd(), a.reltimeCmd(), a.doyCmd())
	return root, a
}

func (a *app) setLogger(level string) error {
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	a.logger = logger
	return nil
}
