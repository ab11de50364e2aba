package repository

import (
	"testing"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

func TestConvertEvents(t *testing.T) {
	tradedAt := time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC)
	daos := []eventRow{
		{
			Instrument: "ACME",
			Side:       "BUY",
			Quantity:   100,
			Price:      decimal.RequireFromString("10.50"),
			TradedAt:   tradedAt,
		},
		{
			Instrument: "ACME",
			Side:       "SELL",
			Quantity:   40,
			Price:      decimal.RequireFromString("11.25"),
			TradedAt:   tradedAt.AddDate(0, 0, 3),
		},
	}

	events := convertEvents(daos)

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	first := events[0]
	if first.Instrument != "ACME" || first.Side != types.SideTypeBuy {
		t.Errorf("first event = %+v", first)
	}
	if first.Quantity != 100 || !first.Price.Equal(decimal.RequireFromString("10.50")) {
		t.Errorf("first event quantity/price = %d/%s", first.Quantity, first.Price)
	}
	if !first.TradedAt.Equal(tradedAt) {
		t.Errorf("first event time = %s, want %s", first.TradedAt, tradedAt)
	}
	if events[1].Side != types.SideTypeSell {
		t.Errorf("second event side = %s, want SELL", events[1].Side)
	}
}

func TestConvertEventsEmpty(t *testing.T) {
	if events := convertEvents(nil); events != nil {
		t.Errorf("convertEvents(nil) = %v, want nil", events)
	}
}
