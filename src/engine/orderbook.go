package engine

import (
	"github.com/google/btree"
	"github.com/google/uuid"
)

// bidLevelItem orders price levels descending so the tree's Min is
// always the best bid.
type bidLevelItem struct {
	level *priceLevel
}

func (i *bidLevelItem) Less(than btree.Item) bool {
	return i.level.price > than.(*bidLevelItem).level.price
}

// askLevelItem orders price levels ascending so the tree's Min is
// always the best ask.
type askLevelItem struct {
	level *priceLevel
}

func (i *askLevelItem) Less(than btree.Item) bool {
	return i.level.price < than.(*askLevelItem).level.price
}

// btreeDegree matches the teacher's own choice for the underlying
// b-tree branching factor.
const btreeDegree = 32

// DepthLevel is a single (price, aggregate remaining quantity) pair
// returned by BidDepth / AskDepth.
type DepthLevel struct {
	Price    Price
	Quantity Quantity
}

// OrderBook is the dual price-indexed order book and matching engine
// for a single instrument. It is not safe for concurrent use: every
// method must be called from one goroutine at a time, and a
// registered trade callback must never call back into the book that
// invoked it.
type OrderBook struct {
	id   uuid.UUID
	bids *btree.BTree // bidLevelItem, Min() is the best bid
	asks *btree.BTree // askLevelItem, Min() is the best ask

	orders map[OrderId]*Order
	pool   *orderPool

	nextID           OrderId
	timestampCounter uint64
	tradeCount       uint64
	totalVolume      Quantity

	tradeCallback TradeCallback
}

// NewOrderBook constructs a book with a fixed-capacity order pool.
// capacity must be at least 1; values <= 0 fall back to the reference
// book's default of one million resting orders.
func NewOrderBook(capacity int, opts ...Option) *OrderBook {
	if capacity <= 0 {
		capacity = defaultPoolCapacity
	}
	ob := &OrderBook{
		id:     uuid.New(),
		bids:   btree.New(btreeDegree),
		asks:   btree.New(btreeDegree),
		orders: make(map[OrderId]*Order),
		pool:   newOrderPool(capacity),
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// ID is the book's construction-time correlation identifier. It has
// no effect on matching; it exists so embedders can tag diagnostics
// from several books unambiguously.
func (ob *OrderBook) ID() uuid.UUID {
	return ob.id
}

// SetTradeCallback registers (or clears, with nil) the hook invoked
// synchronously for every trade produced by AddOrder.
func (ob *OrderBook) SetTradeCallback(cb TradeCallback) {
	ob.tradeCallback = cb
}

func (ob *OrderBook) levelAt(side Side, price Price) *priceLevel {
	var item btree.Item
	if side == SideBuy {
		item = ob.bids.Get(&bidLevelItem{level: &priceLevel{price: price}})
	} else {
		item = ob.asks.Get(&askLevelItem{level: &priceLevel{price: price}})
	}
	if item == nil {
		return nil
	}
	if side == SideBuy {
		return item.(*bidLevelItem).level
	}
	return item.(*askLevelItem).level
}

// levelFor returns the level at price on side, creating it on first
// use — the one allocation the hot path permits beyond growing the
// trades slice.
func (ob *OrderBook) levelFor(side Side, price Price) *priceLevel {
	if existing := ob.levelAt(side, price); existing != nil {
		return existing
	}
	level := newPriceLevel(price)
	if side == SideBuy {
		ob.bids.ReplaceOrInsert(&bidLevelItem{level: level})
	} else {
		ob.asks.ReplaceOrInsert(&askLevelItem{level: level})
	}
	return level
}

func (ob *OrderBook) removeLevelIfEmpty(side Side, level *priceLevel) {
	if !level.empty() {
		return
	}
	if side == SideBuy {
		ob.bids.Delete(&bidLevelItem{level: level})
	} else {
		ob.asks.Delete(&askLevelItem{level: level})
	}
}

func (ob *OrderBook) nextOrderID() OrderId {
	ob.nextID++
	return ob.nextID
}

func (ob *OrderBook) nextTimestamp() uint64 {
	ob.timestampCounter++
	return ob.timestampCounter
}

// --- Market data queries ---

// BestBid returns the highest resting buy price, or InvalidPrice if
// the bid side is empty.
func (ob *OrderBook) BestBid() Price {
	item := ob.bids.Min()
	if item == nil {
		return InvalidPrice
	}
	return item.(*bidLevelItem).level.price
}

// BestAsk returns the lowest resting sell price, or InvalidPrice if
// the ask side is empty.
func (ob *OrderBook) BestAsk() Price {
	item := ob.asks.Min()
	if item == nil {
		return InvalidPrice
	}
	return item.(*askLevelItem).level.price
}

// Spread is BestAsk - BestBid, or InvalidPrice if either side is empty.
func (ob *OrderBook) Spread() Price {
	bid, ask := ob.BestBid(), ob.BestAsk()
	if bid == InvalidPrice || ask == InvalidPrice {
		return InvalidPrice
	}
	return ask - bid
}

// VolumeAtPrice returns the aggregate remaining quantity resting at
// price on side, or 0 if there is no such level.
func (ob *OrderBook) VolumeAtPrice(side Side, price Price) Quantity {
	level := ob.levelAt(side, price)
	if level == nil {
		return 0
	}
	return level.totalQuantity
}

// OrderCountAtPrice returns the number of orders resting at price on
// side, or 0 if there is no such level.
func (ob *OrderBook) OrderCountAtPrice(side Side, price Price) uint32 {
	level := ob.levelAt(side, price)
	if level == nil {
		return 0
	}
	return level.orderCount
}

// BidDepth returns up to levels (price, quantity) pairs from the best
// bid downward.
func (ob *OrderBook) BidDepth(levels int) []DepthLevel {
	depth := make([]DepthLevel, 0, levels)
	ob.bids.Ascend(func(item btree.Item) bool {
		if len(depth) >= levels {
			return false
		}
		l := item.(*bidLevelItem).level
		depth = append(depth, DepthLevel{Price: l.price, Quantity: l.totalQuantity})
		return true
	})
	return depth
}

// AskDepth returns up to levels (price, quantity) pairs from the best
// ask upward.
func (ob *OrderBook) AskDepth(levels int) []DepthLevel {
	depth := make([]DepthLevel, 0, levels)
	ob.asks.Ascend(func(item btree.Item) bool {
		if len(depth) >= levels {
			return false
		}
		l := item.(*askLevelItem).level
		depth = append(depth, DepthLevel{Price: l.price, Quantity: l.totalQuantity})
		return true
	})
	return depth
}

// TotalOrders is the number of resting orders across both sides.
func (ob *OrderBook) TotalOrders() int { return len(ob.orders) }

// BidLevels is the number of distinct bid price levels.
func (ob *OrderBook) BidLevels() int { return ob.bids.Len() }

// AskLevels is the number of distinct ask price levels.
func (ob *OrderBook) AskLevels() int { return ob.asks.Len() }

// Empty reports whether the book has no resting orders on either side.
func (ob *OrderBook) Empty() bool { return len(ob.orders) == 0 }

// TotalTrades is the running count of trades ever emitted by this book.
func (ob *OrderBook) TotalTrades() uint64 { return ob.tradeCount }

// TotalVolume is the running sum of traded quantity ever emitted by
// this book.
func (ob *OrderBook) TotalVolume() Quantity { return ob.totalVolume }

// --- Cancellation & modification ---

// CancelOrder removes a resting order from the book and returns its
// slot to the pool. Returns false if id is not currently resting.
func (ob *OrderBook) CancelOrder(id OrderId) bool {
	order, ok := ob.orders[id]
	if !ok {
		return false
	}
	ob.unrest(order)
	order.Status = StatusCancelled
	ob.pool.deallocate(order)
	return true
}

// unrest unlinks a resting order from its price level and the id
// index, removing the level if it becomes empty. It does not touch
// the order's status or return it to the pool.
func (ob *OrderBook) unrest(order *Order) {
	level := ob.levelAt(order.Side, order.Price)
	if level != nil {
		level.removeOrder(order)
		ob.removeLevelIfEmpty(order.Side, level)
	}
	delete(ob.orders, order.ID)
}

// ModifyOrder changes the quantity of a resting order.
//
//   - new_quantity <= filled_quantity behaves like CancelOrder.
//   - a strict decrease preserves time priority: the order keeps its
//     position in its level's queue.
//   - an increase loses time priority: the order is cancelled and a
//     fresh limit order is submitted at the same side and price. The
//     new order's id is not returned; callers only see the boolean.
//   - an equal quantity is a no-op.
//
// Returns false if id is not currently resting.
func (ob *OrderBook) ModifyOrder(id OrderId, newQuantity Quantity) bool {
	order, ok := ob.orders[id]
	if !ok {
		return false
	}

	if newQuantity <= order.FilledQuantity {
		return ob.CancelOrder(id)
	}

	if newQuantity < order.Quantity {
		oldRemaining := order.Remaining()
		order.Quantity = newQuantity
		newRemaining := order.Remaining()

		level := ob.levelAt(order.Side, order.Price)
		if level != nil {
			level.totalQuantity -= oldRemaining - newRemaining
		}
		return true
	}

	if newQuantity > order.Quantity {
		side, price := order.Side, order.Price
		ob.CancelOrder(id)
		ob.AddOrder(side, TypeLimit, price, newQuantity)
		return true
	}

	return true
}
