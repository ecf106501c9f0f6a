package common

import (
	decimal2 "github.com/govalues/decimal"
)

// Decimal is the fixed-width DECIMAL scalar type: a grouping-key and
// SUM/MIN/MAX payload type, deliberately absent from the AVG dispatch
// table (ScalarType.AvgDispatchable).
type Decimal struct {
	decimal2.Decimal
}

func (dec Decimal) Add(rhs Decimal) Decimal {
	res, err := dec.Decimal.Add(rhs.Decimal)
	if err != nil {
		panic(err)
	}
	return Decimal{res}
}

func (dec Decimal) Less(rhs Decimal) bool {
	return dec.Decimal.Cmp(rhs.Decimal) < 0
}

func (dec Decimal) Greater(rhs Decimal) bool {
	return dec.Decimal.Cmp(rhs.Decimal) > 0
}
