package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money values are computed with shopspring/decimal and persisted as BSON
// Decimal128 so that totals round-trip verbatim. Binary floats are never used.

func ToDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.Decimal.String always yields a valid decimal literal.
		panic(err)
	}
	return v
}

func FromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
