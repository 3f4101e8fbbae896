package models

// OrderItem is a line of an order. UnitPrice is the product price at
// order time and never changes afterwards, even if the catalog price does.
type OrderItem struct {
	ID        uint  `json:"id"`
	OrderID   uint  `json:"order_id"`
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}
