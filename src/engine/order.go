package engine

// Order is the unit of storage in the pool and the intrusive node of
// its price level's FIFO queue. The book is strictly single-threaded
// (no concurrent submission, no re-entrant callbacks), so no field
// here needs synchronization of its own.
type Order struct {
	ID             OrderId
	Side           Side
	Type           OrderType
	Price          Price // ignored for market orders
	Quantity       Quantity
	FilledQuantity Quantity
	Status         OrderStatus
	Timestamp      uint64

	// Intrusive doubly-linked list pointers, owned by whichever
	// PriceLevel this order currently rests in. Nil when not resting.
	prev *Order
	next *Order

	// poolIndex is this slot's position in the owning pool's backing
	// array. Stamped once at pool construction and never touched by
	// reset, so the pool can map a handle back to a free-list index
	// without pointer arithmetic.
	poolIndex int32
}

// Remaining reports the unfilled quantity. Invariant: 0 <= FilledQuantity <= Quantity.
func (o *Order) Remaining() Quantity {
	return o.Quantity - o.FilledQuantity
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.FilledQuantity >= o.Quantity
}

// reset restores an order record to its default state. Called by the
// pool before handing a slot back out, so a freshly allocated handle
// never leaks a previous tenant's fields.
func (o *Order) reset() {
	o.ID = UnsetOrderId
	o.Side = SideBuy
	o.Type = TypeLimit
	o.Price = InvalidPrice
	o.Quantity = 0
	o.FilledQuantity = 0
	o.Status = StatusNew
	o.Timestamp = 0
	o.prev = nil
	o.next = nil
}

// Trade is a single execution produced by matching an aggressor
// against a resting order. It always prints at the resting order's
// price.
type Trade struct {
	BuyOrderID  OrderId
	SellOrderID OrderId
	Price       Price
	Quantity    Quantity
	Timestamp   uint64
}

// TradeCallback is invoked synchronously for each trade, between the
// book updates that produced it and the return from AddOrder. It must
// not call back into the book that invoked it.
type TradeCallback func(Trade)
