package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// One DISTINCT ON query for the whole batch; a price lookup per instrument
// per report would be an N+1 against the quotes table.
const latestPricesSQL = `
SELECT DISTINCT ON (instrument) instrument, price
FROM instrument_prices
WHERE instrument = ANY($1)
ORDER BY instrument, quoted_at DESC`

// LatestPrices returns the latest known quote per instrument. Instruments
// with no quote are simply absent from the result.
func (db *Database) LatestPrices(ctx context.Context, instruments []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(instruments))
	if len(instruments) == 0 {
		return prices, nil
	}

	rows, err := db.conn.Query(ctx, latestPricesSQL, instruments)
	if err != nil {
		return nil, fmt.Errorf("query latest prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var instrument string
		var price decimal.Decimal
		if err := rows.Scan(&instrument, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices[instrument] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}
