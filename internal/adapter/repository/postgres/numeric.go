package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// decimalToNumeric encodes a money value for a NUMERIC column.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// toDecimal decodes a NUMERIC. SQL NULL, as produced by SUM over no rows,
// decodes to zero.
func toDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, fmt.Errorf("numeric value is not finite")
	}

	if n.Int == nil {
		return decimal.Zero, nil
	}

	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// numericToDecimal is toDecimal for columns the schema guarantees finite.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	d, _ := toDecimal(n)
	return d
}
