package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RaduPetrila-dev/Low-Latency-Order-Book-Simulator/src/engine"
)

func TestNewTradeLoggerEmitsTradeFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	bookID := uuid.New()

	cb := NewTradeLogger(log, bookID)
	cb(engine.Trade{
		BuyOrderID:  1,
		SellOrderID: 2,
		Price:       10000,
		Quantity:    50,
		Timestamp:   3,
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a single JSON log line, got error: %v", err)
	}

	if line["book_id"] != bookID.String() {
		t.Errorf("expected book_id %s, got: %v", bookID.String(), line["book_id"])
	}
	if line["price"] != float64(10000) {
		t.Errorf("expected price 10000, got: %v", line["price"])
	}
	if line["quantity"] != float64(50) {
		t.Errorf("expected quantity 50, got: %v", line["quantity"])
	}
	if line["message"] != "trade executed" {
		t.Errorf("expected message 'trade executed', got: %v", line["message"])
	}
}

func TestNewTradeLoggerWiredAsBookCallback(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ob := engine.NewOrderBook(10, engine.WithTradeCallback(NewTradeLogger(log, uuid.New())))

	if _, err := ob.AddOrder(engine.SideSell, engine.TypeLimit, 10000, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ob.AddOrder(engine.SideBuy, engine.TypeLimit, 10000, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.Len() == 0 {
		t.Error("expected the trade callback to have written a log line")
	}
}
