package telemetry

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RaduPetrila-dev/Low-Latency-Order-Book-Simulator/src/engine"
)

// NewTradeLogger builds an engine.TradeCallback that emits one
// structured log line per trade via log. bookID tags every line so
// fills from several books can be told apart downstream.
//
// The returned callback runs synchronously inside AddOrder — it must
// stay cheap and must never call back into the book that invoked it.
func NewTradeLogger(log zerolog.Logger, bookID uuid.UUID) engine.TradeCallback {
	return func(t engine.Trade) {
		log.Info().
			Str("book_id", bookID.String()).
			Uint64("buy_order_id", uint64(t.BuyOrderID)).
			Uint64("sell_order_id", uint64(t.SellOrderID)).
			Uint64("price", uint64(t.Price)).
			Uint64("quantity", uint64(t.Quantity)).
			Uint64("timestamp", t.Timestamp).
			Msg("trade executed")
	}
}
