package repository

import (
	"context"
	"fmt"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

const listEventsSQL = `
SELECT instrument, side, quantity, price, traded_at
FROM trade_events
WHERE NOT voided
  AND ($1 = '' OR instrument = $1)
  AND ($2::timestamptz IS NULL OR traded_at >= $2)
  AND ($3::timestamptz IS NULL OR traded_at <= $3)
ORDER BY traded_at, id`

// eventRow is the raw shape scanned from the journal table.
type eventRow struct {
	Instrument string
	Side       string
	Quantity   int64
	Price      decimal.Decimal
	TradedAt   time.Time
}

// ListEvents returns the journal in trade-time order, ties broken by row id.
// Voided (corrected) entries never leave the database.
func (db *Database) ListEvents(ctx context.Context, instrument string, since, until *time.Time) ([]types.TradeEvent, error) {
	rows, err := db.conn.Query(ctx, listEventsSQL, instrument, since, until)
	if err != nil {
		return nil, fmt.Errorf("query trade events: %w", err)
	}
	defer rows.Close()

	var daos []eventRow
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(&row.Instrument, &row.Side, &row.Quantity, &row.Price, &row.TradedAt); err != nil {
			return nil, fmt.Errorf("scan trade event: %w", err)
		}
		daos = append(daos, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return convertEvents(daos), nil
}

func convertEvents(daos []eventRow) []types.TradeEvent {
	var events []types.TradeEvent
	for _, dao := range daos {
		events = append(events, types.TradeEvent{
			Instrument: dao.Instrument,
			Side:       types.Side(dao.Side),
			Quantity:   dao.Quantity,
			Price:      dao.Price,
			TradedAt:   dao.TradedAt,
		})
	}
	return events
}
