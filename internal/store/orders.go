package store

import (
	"fmt"

	"pasta_admin/internal/models"
)

type NewOrder struct {
	ClientID uint
	VendorID uint
}

type NewOrderItem struct {
	ProductID uint
	Quantity  int
}

func (s *Store) OrderByID(id uint) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.orders, func(o models.Order) uint { return o.ID })
}

func (s *Store) OrdersByVendor(vendorID uint) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := sortedValues(s.orders, func(o models.Order) uint { return o.ID })
	owned := all[:0]
	for _, o := range all {
		if o.VendorID == vendorID {
			owned = append(owned, o)
		}
	}
	return owned
}

func (s *Store) ItemsByOrder(orderID uint) []models.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := sortedValues(s.orderItems, func(i models.OrderItem) uint { return i.ID })
	items := all[:0]
	for _, it := range all {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items
}

// CreateOrderWithItems creates an order and all of its items in one
// critical section. Stock is checked and decremented atomically per
// product, so two concurrent orders cannot both take the last units,
// and the snapshot is written once after order and items are in place:
// no snapshot can ever hold the order without its items.
//
// taxRateBps is the tax rate in basis points (2100 = 21%). UnitPrice on
// each item is the catalog price at this moment and stays frozen.
func (s *Store) CreateOrderWithItems(input NewOrder, items []NewOrderItem, taxRateBps int64) (models.Order, []models.OrderItem, error) {
	if len(items) == 0 {
		return models.Order{}, nil, fmt.Errorf("%w: order needs at least one item", ErrInvalidInput)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return models.Order{}, nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[input.ClientID]; !ok {
		return models.Order{}, nil, fmt.Errorf("%w: client %d", ErrNotFound, input.ClientID)
	}
	// Orders record whoever created them, vendor or admin alike, so
	// only existence is checked here; client ownership is what stays
	// restricted to vendor accounts.
	if _, ok := s.users[input.VendorID]; !ok {
		return models.Order{}, nil, fmt.Errorf("%w: vendor %d", ErrNotFound, input.VendorID)
	}

	// Validate against the summed quantity per product, then decrement,
	// so a failed order leaves nothing half-decremented and an order
	// listing the same product on two lines cannot overdraw stock that
	// each line alone would pass.
	requested := make(map[uint]int)
	for _, it := range items {
		requested[it.ProductID] += it.Quantity
	}
	for productID, quantity := range requested {
		product, ok := s.products[productID]
		if !ok {
			return models.Order{}, nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		if !product.IsActive {
			return models.Order{}, nil, fmt.Errorf("%w: product %d is inactive", ErrInvalidInput, productID)
		}
		if product.Stock < quantity {
			return models.Order{}, nil, fmt.Errorf("%w: product %d has %d left, %d requested",
				ErrInsufficientStock, productID, product.Stock, quantity)
		}
	}
	for productID, quantity := range requested {
		product := s.products[productID]
		product.Stock -= quantity
		s.products[productID] = product
	}

	var subtotal int64
	for _, it := range items {
		subtotal += s.products[it.ProductID].Price * int64(it.Quantity)
	}
	tax := subtotal * taxRateBps / 10000

	s.orderSeq++
	order := models.Order{
		ID:          s.orderSeq,
		ClientID:    input.ClientID,
		VendorID:    input.VendorID,
		TotalAmount: subtotal + tax,
		Status:      models.OrderPending,
		CreatedAt:   s.now(),
	}
	s.orders[order.ID] = order

	created := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		s.orderItemSeq++
		item := models.OrderItem{
			ID:        s.orderItemSeq,
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: s.products[it.ProductID].Price,
		}
		s.orderItems[item.ID] = item
		created = append(created, item)
	}

	s.persistLocked()

	return order, created, nil
}

// UpdateOrderStatus moves an order through its state machine. Canceling
// a not-yet-delivered order returns its units to stock.
func (s *Store) UpdateOrderStatus(id uint, next models.OrderStatus) (models.Order, error) {
	if !next.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if next == models.OrderCanceled {
		for _, it := range s.orderItems {
			if it.OrderID != id {
				continue
			}
			if product, ok := s.products[it.ProductID]; ok {
				product.Stock += it.Quantity
				s.products[it.ProductID] = product
			}
		}
	}

	order.Status = next
	s.orders[id] = order
	s.persistLocked()

	return order, nil
}
