package engine

import "testing"

func TestPoolAllocateReportsCapacityAndSize(t *testing.T) {
	pool := newOrderPool(100)

	if pool.Capacity() != 100 {
		t.Errorf("expected capacity 100, got: %d", pool.Capacity())
	}
	if pool.Size() != 0 {
		t.Errorf("expected initial size 0, got: %d", pool.Size())
	}
	if pool.Available() != 100 {
		t.Errorf("expected initial available 100, got: %d", pool.Available())
	}

	o1, err := pool.allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o1 == nil {
		t.Fatal("allocate returned nil handle")
	}
	if pool.Size() != 1 {
		t.Errorf("expected size 1 after allocate, got: %d", pool.Size())
	}
	if pool.Available() != 99 {
		t.Errorf("expected available 99 after allocate, got: %d", pool.Available())
	}
}

func TestPoolReuseProperty(t *testing.T) {
	pool := newOrderPool(10)

	o1, err := pool.allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pool.deallocate(o1)

	o2, err := pool.allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o1 != o2 {
		t.Errorf("expected allocate; deallocate; allocate to reuse the same slot, got different handles")
	}
	if pool.Size() != 1 {
		t.Errorf("expected size 1, got: %d", pool.Size())
	}
}

func TestPoolAllocateResetsSlot(t *testing.T) {
	pool := newOrderPool(4)

	o1, _ := pool.allocate()
	o1.ID = 42
	o1.Quantity = 500
	o1.FilledQuantity = 10
	o1.Status = StatusPartiallyFilled
	pool.deallocate(o1)

	o2, _ := pool.allocate()
	if o2.ID != UnsetOrderId {
		t.Errorf("expected reset ID, got: %d", o2.ID)
	}
	if o2.Quantity != 0 || o2.FilledQuantity != 0 {
		t.Errorf("expected reset quantities, got quantity=%d filled=%d", o2.Quantity, o2.FilledQuantity)
	}
	if o2.Status != StatusNew {
		t.Errorf("expected reset status NEW, got: %s", o2.Status)
	}
}

func TestPoolExhaustion(t *testing.T) {
	pool := newOrderPool(2)

	if _, err := pool.allocate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pool.allocate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := pool.allocate(); err != ErrPoolExhausted {
		t.Errorf("expected ErrPoolExhausted, got: %v", err)
	}
	if pool.Available() != 0 {
		t.Errorf("expected available 0, got: %d", pool.Available())
	}
}

func TestPoolDeallocateAllowsReallocationAfterExhaustion(t *testing.T) {
	pool := newOrderPool(1)

	o1, _ := pool.allocate()
	if _, err := pool.allocate(); err != ErrPoolExhausted {
		t.Fatalf("expected pool to be exhausted, got: %v", err)
	}

	pool.deallocate(o1)

	if _, err := pool.allocate(); err != nil {
		t.Errorf("expected allocation to succeed after deallocate, got: %v", err)
	}
}
