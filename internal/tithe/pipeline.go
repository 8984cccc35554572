package tithe

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tithe-dev/tithe/internal/model"
	"github.com/tithe-dev/tithe/internal/statement"
)

// isoDate is the wire format for dates in results.
const isoDate = "2006-01-02"

// Filter selects which statement rows count toward the tithe.
type Filter struct {
	Start         time.Time
	End           time.Time // inclusive
	Needle        string
	Rate          decimal.Decimal // in [0, 1]
	CaseSensitive bool
}

// Validate rejects filters the pipeline must not run with.
func (f Filter) Validate() error {
	if f.Start.IsZero() || f.End.IsZero() {
		return errors.New("start and end dates are required")
	}
	if f.End.Before(f.Start) {
		return errors.New("end must be on/after start")
	}
	if f.Rate.IsNegative() || f.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate %s out of range [0, 1]", f.Rate)
	}
	return nil
}

// matches reports whether a trimmed description contains the needle under
// the filter's case rule.
func (f Filter) matches(desc string) bool {
	if f.CaseSensitive {
		return strings.Contains(desc, f.Needle)
	}
	return strings.Contains(strings.ToLower(desc), strings.ToLower(f.Needle))
}

// Match is one matched deposit as it appears in results.
type Match struct {
	Date        string `json:"date"`   // ISO 8601
	Amount      string `json:"amount"` // fixed 2 decimals
	Description string `json:"description"`
}

// Result is the aggregate of one pipeline run.
type Result struct {
	Filter Filter
	Count  int
	Total  decimal.Decimal
	Tithe  decimal.Decimal
	Rows   []Match
	Errors []string // one per bad row, tagged with its record number
}

// Run decodes, filters, and sums a statement upload in a single forward
// pass. Row-level failures become entries in Result.Errors and never abort
// the pass; only an empty upload or an invalid filter is rejected outright.
func Run(data []byte, f Filter) (Result, error) {
	if len(data) == 0 {
		return Result{}, errors.New("empty upload")
	}
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Filter: f,
		Total:  decimal.Zero,
		Rows:   []Match{},
		Errors: []string{},
	}

	r := statement.NewReader(data)
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}

		txn, skip, err := filterRow(row, f)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}
		if skip {
			continue
		}

		res.Total = res.Total.Add(txn.Amount)
		res.Rows = append(res.Rows, Match{
			Date:        txn.Date.Format(isoDate),
			Amount:      txn.Amount.StringFixed(2),
			Description: txn.Description,
		})
	}

	res.Count = len(res.Rows)
	res.Tithe = Tithe(res.Total, f.Rate)
	return res, nil
}

// filterRow applies the predicate chain to one decoded row. A row can be
// skipped silently (out of range, non-deposit, no match, or the line-1
// header heuristic) or rejected with a diagnostic error.
func filterRow(row statement.Row, f Filter) (model.Transaction, bool, error) {
	date, err := statement.ParseDate(row.Fields[statement.ColDate])
	if err != nil {
		// The first record is likely a header; a date that fails to
		// parse there is not worth a diagnostic.
		if row.Line == 1 {
			return model.Transaction{}, true, nil
		}
		return model.Transaction{}, false, err
	}

	if date.Before(f.Start) || date.After(f.End) {
		return model.Transaction{}, true, nil
	}

	amount, err := statement.ParseAmount(row.Fields[statement.ColAmount])
	if err != nil {
		return model.Transaction{}, false, err
	}
	if !amount.IsPositive() {
		// Deposits only; the source encodes debits as negatives.
		return model.Transaction{}, true, nil
	}

	desc := strings.TrimSpace(row.Fields[statement.ColDesc])
	if !f.matches(desc) {
		return model.Transaction{}, true, nil
	}

	return model.Transaction{Date: date, Amount: amount, Description: desc}, false, nil
}

// Tithe computes the contribution on an amount: amount * rate rounded to
// 2 decimal places. decimal.Round rounds halves away from zero, never to
// even.
func Tithe(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}
