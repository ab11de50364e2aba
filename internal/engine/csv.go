package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"tradejournal/types"
)

// WriteClosedLotsCSVFile writes closed lots to a CSV file at the given path.
func WriteClosedLotsCSVFile(path string, lots []types.ClosedLot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create lots file: %w", err)
	}
	defer f.Close()

	return WriteClosedLotsCSV(f, lots)
}

// WriteClosedLotsCSV writes closed lots to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func WriteClosedLotsCSV(w io.Writer, lots []types.ClosedLot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"instrument",
		"quantity",
		"buy_price",
		"sell_price",
		"buy_time", // RFC3339
		"sell_time",
		"cost",
		"revenue",
		"profit",
		"holding_days",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, l := range lots {
		record := []string{
			l.Instrument,
			strconv.FormatInt(l.Quantity, 10),
			l.BuyPrice.String(),
			l.SellPrice.String(),
			l.BuyTime.Format(time.RFC3339),
			l.SellTime.Format(time.RFC3339),
			l.Cost.String(),
			l.Revenue.String(),
			l.Profit.String(),
			strconv.Itoa(l.HoldingDays),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
