package engine

import "github.com/google/btree"

// OrderResult reports the outcome of a single AddOrder submission.
type OrderResult struct {
	OrderID           OrderId
	Status            OrderStatus
	FilledQuantity    Quantity
	RemainingQuantity Quantity
	Trades            []Trade
}

// tradesSweepReserve is a typical sweep depth: enough trades slots to
// avoid most result-slice growth without over-allocating for the
// common single-fill case.
const tradesSweepReserve = 4

// AddOrder submits a new order. It is first crossed against the
// opposite side of the book (price-time priority, trade prints at the
// resting order's price); any unfilled remainder of a limit order
// rests on its own side, while an unfilled market-order remainder is
// discarded rather than resting.
func (ob *OrderBook) AddOrder(side Side, orderType OrderType, price Price, quantity Quantity) (*OrderResult, error) {
	if quantity == 0 {
		return nil, &InvalidArgumentError{Reason: "quantity must be at least 1"}
	}
	if orderType == TypeLimit && price == InvalidPrice {
		return nil, &InvalidArgumentError{Reason: "limit order price must be positive"}
	}

	order, err := ob.pool.allocate()
	if err != nil {
		return nil, err
	}
	order.ID = ob.nextOrderID()
	order.Side = side
	order.Type = orderType
	order.Price = price
	order.Quantity = quantity
	order.FilledQuantity = 0
	order.Status = StatusActive
	order.Timestamp = ob.nextTimestamp()

	result := &OrderResult{
		OrderID: order.ID,
		Trades:  make([]Trade, 0, tradesSweepReserve),
	}

	ob.cross(order, result)

	switch {
	case order.IsFilled():
		order.Status = StatusFilled
		result.Status = StatusFilled
		result.FilledQuantity = order.FilledQuantity
		result.RemainingQuantity = 0
		ob.pool.deallocate(order)

	case orderType == TypeLimit:
		if order.FilledQuantity > 0 {
			order.Status = StatusPartiallyFilled
		}
		ob.rest(order)
		result.Status = order.Status
		result.FilledQuantity = order.FilledQuantity
		result.RemainingQuantity = order.Remaining()

	default: // unfilled market order: never rests
		result.Status = StatusCancelled
		result.FilledQuantity = order.FilledQuantity
		result.RemainingQuantity = order.Remaining()
		ob.pool.deallocate(order)
	}

	return result, nil
}

// cross walks the opposite side of the book from best price toward
// worst, matching the aggressor against resting orders until it is
// filled, the opposite side runs out, or — for a limit order — the
// opposite best price no longer crosses the aggressor's limit.
func (ob *OrderBook) cross(order *Order, result *OrderResult) {
	if order.Side == SideBuy {
		ob.crossAgainst(order, result, ob.asks, func(levelPrice Price) bool {
			return order.Type == TypeLimit && levelPrice > order.Price
		})
	} else {
		ob.crossAgainst(order, result, ob.bids, func(levelPrice Price) bool {
			return order.Type == TypeLimit && levelPrice < order.Price
		})
	}
}

// crossAgainst drains the given side's best levels into the
// aggressor, stopping early when cutoff reports the level's price no
// longer crosses the aggressor's limit.
func (ob *OrderBook) crossAgainst(order *Order, result *OrderResult, opposite *btree.BTree, cutoff func(Price) bool) {
	oppositeSide := SideSell
	if order.Side == SideSell {
		oppositeSide = SideBuy
	}

	for order.Remaining() > 0 {
		item := opposite.Min()
		if item == nil {
			return
		}

		var level *priceLevel
		var levelPrice Price
		if oppositeSide == SideBuy {
			level = item.(*bidLevelItem).level
			levelPrice = level.price
		} else {
			level = item.(*askLevelItem).level
			levelPrice = level.price
		}

		if cutoff(levelPrice) {
			return
		}

		ob.drainLevel(order, level, oppositeSide, result)

		ob.removeLevelIfEmpty(oppositeSide, level)
	}
}

// drainLevel matches the aggressor against passive orders at one
// price level, oldest first, until either side is exhausted.
func (ob *OrderBook) drainLevel(order *Order, level *priceLevel, passiveSide Side, result *OrderResult) {
	passive := level.front()
	for passive != nil && order.Remaining() > 0 {
		next := passive.next

		qty := order.Remaining()
		if r := passive.Remaining(); qty > r {
			qty = r
		}
		ob.executeTrade(order, passive, qty, level, result)

		if passive.IsFilled() {
			level.removeOrder(passive)
			delete(ob.orders, passive.ID)
			passive.Status = StatusFilled
			ob.pool.deallocate(passive)
		}

		passive = next
	}
}

// executeTrade applies one fill between the aggressor and a resting
// order, printing at the resting order's price.
func (ob *OrderBook) executeTrade(aggressor, passive *Order, qty Quantity, level *priceLevel, result *OrderResult) {
	aggressor.FilledQuantity += qty
	passive.FilledQuantity += qty
	level.totalQuantity -= qty

	trade := Trade{
		Price:     passive.Price,
		Quantity:  qty,
		Timestamp: ob.timestampCounter,
	}
	if aggressor.Side == SideBuy {
		trade.BuyOrderID = aggressor.ID
		trade.SellOrderID = passive.ID
	} else {
		trade.BuyOrderID = passive.ID
		trade.SellOrderID = aggressor.ID
	}

	ob.tradeCount++
	ob.totalVolume += qty
	result.Trades = append(result.Trades, trade)

	if ob.tradeCallback != nil {
		ob.tradeCallback(trade)
	}
}

// rest inserts an order with remaining quantity into its own side,
// creating the price level on first use, and indexes it by id.
func (ob *OrderBook) rest(order *Order) {
	level := ob.levelFor(order.Side, order.Price)
	level.addOrder(order)
	ob.orders[order.ID] = order
}
