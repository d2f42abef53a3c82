package main

import (
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/features"
)

func (a *app) reltimeCmd() *cobra.Command {
	var input, dateFormat string

	cmd := &cobra.Command{
		Use:     "reltime",
		Short:   "Print the relative time of each timestamp of a wide ROI export",
		Example: `  roiseries reltime --input wide.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return errors.New("--input is required")
			}
			tbl, err := readTimeIndexed(input)
			if err != nil {
				return err
			}
			times := tbl.Index()
			rel, freq, err := features.RelTimeFromAbsDate(times)
			if err != nil {
				return err
			}
			a.logger.Info("frequency inferred",
				zap.String("freq", freq.String()),
				zap.String("description", freq.Description()),
			)

			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write([]string{tbl.IndexName, "reltime", "freq"}); err != nil {
				return err
			}
			for i, ts := range times {
				record := []string{
					ts.Format(dateFormat),
					strconv.FormatFloat(rel[i], 'f', -1, 64),
					freq.String(),
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "wide CSV export")
	cmd.Flags().StringVar(&dateFormat, "date-format", "2006-01-02", "layout of the printed timestamps")
	return cmd
}
