package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tithe-dev/tithe/internal/config"
	"github.com/tithe-dev/tithe/internal/tithe"
)

const flagDateFormat = "2006-01-02"

func newReportCommand() *cobra.Command {
	var start, end string
	var needle string
	var rate float64
	var caseSensitive bool
	var format string

	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "report <statement.csv>",
		Short: "Compute tithing for a statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], start, end, needle, rate, caseSensitive, format)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD, inclusive (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	cmd.Flags().StringVar(&needle, "needle", defaults.Filter.DescContains, "description substring to match")
	cmd.Flags().Float64Var(&rate, "rate", defaults.Filter.Rate, "tithe rate between 0 and 1")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", !defaults.Filter.CaseInsensitive, "case-sensitive description match")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")

	return cmd
}

// reportOutput is the JSON shape printed by the report command.
type reportOutput struct {
	Count         int           `json:"count"`
	TotalDeposits string        `json:"total_deposits"`
	Tithe         string        `json:"tithe"`
	Rows          []tithe.Match `json:"rows"`
	Errors        []string      `json:"errors"`
}

func runReport(cmd *cobra.Command, path, start, end, needle string, rate float64, caseSensitive bool, format string) error {
	if format != "json" && format != "csv" {
		return fmt.Errorf("unknown format %q (want json or csv)", format)
	}

	startDate, err := time.Parse(flagDateFormat, start)
	if err != nil {
		return fmt.Errorf("parsing --start %q: want YYYY-MM-DD", start)
	}
	endDate, err := time.Parse(flagDateFormat, end)
	if err != nil {
		return fmt.Errorf("parsing --end %q: want YYYY-MM-DD", end)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	res, err := tithe.Run(data, tithe.Filter{
		Start:         startDate,
		End:           endDate,
		Needle:        needle,
		Rate:          decimal.NewFromFloat(rate),
		CaseSensitive: caseSensitive,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "csv" {
		return tithe.WriteReport(out, res)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(reportOutput{
		Count:         res.Count,
		TotalDeposits: res.Total.StringFixed(2),
		Tithe:         res.Tithe.StringFixed(2),
		Rows:          res.Rows,
		Errors:        res.Errors,
	})
}
