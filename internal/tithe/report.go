package tithe

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// WriteReport renders a Result as a delimited report: a header row, one row
// per match with an independently rounded per-row contribution, a blank
// separator row, and a TOTAL row. Per-row contributions are each rounded on
// their own, so their sum can differ from the aggregate tithe by a few
// cents.
func WriteReport(w io.Writer, res Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	pct := res.Filter.Rate.Mul(decimal.NewFromInt(100)).IntPart()
	header := []string{"date", "amount", "description", fmt.Sprintf("tithe_%dpct_per_row", pct)}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range res.Rows {
		amount, err := decimal.NewFromString(m.Amount)
		if err != nil {
			return fmt.Errorf("row %d: parsing amount %q: %w", i+1, m.Amount, err)
		}
		per := Tithe(amount, res.Filter.Rate)
		if err := cw.Write([]string{m.Date, amount.StringFixed(2), m.Description, per.StringFixed(2)}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	// Blank separator before the total line.
	if err := cw.Write([]string{""}); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	if err := cw.Write([]string{"TOTAL", res.Total.StringFixed(2), "", res.Tithe.StringFixed(2)}); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	return cw.Error()
}
