package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/features"
	"github.com/sartorproj/roiseries/frame"
)

func (a *app) doyCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:     "doy",
		Short:   "Print the circular day-of-year encoding of a daily date range",
		Example: `  roiseries doy --start 2015-01-01 --end 2016-12-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("--start: invalid date %q, expected YYYY-MM-DD", start)
			}
			to, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("--end: invalid date %q, expected YYYY-MM-DD", end)
			}
			if to.Before(from) {
				return fmt.Errorf("--end %s is before --start %s", end, start)
			}

			var dates []time.Time
			for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
				dates = append(dates, d)
			}
			enc, err := features.DOYCircular(dates)
			if err != nil {
				return err
			}
			a.logger.Debug("day of year encoded", zap.Int("days", len(dates)))

			return frame.WriteTableCSV(cmd.OutOrStdout(), enc, nil)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
