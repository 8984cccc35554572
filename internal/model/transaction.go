package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a statement row that survived filtering: a deposit inside
// the requested window whose description matched. It only lives long enough
// to be folded into the aggregate.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // always positive; debits are filtered out
	Description string          // trimmed
}
