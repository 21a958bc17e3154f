package engine

import "github.com/google/uuid"

// defaultPoolCapacity mirrors the reference book's default pool size.
const defaultPoolCapacity = 1_000_000

// Option configures an OrderBook at construction time.
type Option func(*OrderBook)

// WithTradeCallback registers a callback invoked synchronously for
// every trade produced by AddOrder. Equivalent to calling
// SetTradeCallback after construction.
func WithTradeCallback(cb TradeCallback) Option {
	return func(ob *OrderBook) {
		ob.tradeCallback = cb
	}
}

// WithID overrides the book's generated correlation identifier. Useful
// for tests and for embedders that want log lines from several books
// to carry a caller-chosen id instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(ob *OrderBook) {
		ob.id = id
	}
}
