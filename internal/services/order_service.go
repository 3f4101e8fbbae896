package services

import (
	"pasta_admin/internal/models"
	"pasta_admin/internal/store"
)

// OrderService carries the business tax rate into order creation. The
// stock check-and-decrement itself lives inside the store so it happens
// under the store lock.
type OrderService interface {
	CreateOrder(clientID, vendorID uint, items []store.NewOrderItem) (models.Order, []models.OrderItem, error)
	UpdateStatus(orderID uint, next models.OrderStatus) (models.Order, error)
}

type orderService struct {
	store      *store.Store
	taxRateBps int64
}

func NewOrderService(st *store.Store, taxRateBps int64) OrderService {
	return &orderService{store: st, taxRateBps: taxRateBps}
}

func (s *orderService) CreateOrder(clientID, vendorID uint, items []store.NewOrderItem) (models.Order, []models.OrderItem, error) {
	return s.store.CreateOrderWithItems(store.NewOrder{ClientID: clientID, VendorID: vendorID}, items, s.taxRateBps)
}

func (s *orderService) UpdateStatus(orderID uint, next models.OrderStatus) (models.Order, error) {
	return s.store.UpdateOrderStatus(orderID, next)
}
