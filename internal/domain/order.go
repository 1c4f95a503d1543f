package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the status machine allows moving to "to".
// pending -> processing|cancelled, processing -> completed|cancelled;
// completed and cancelled are terminal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusProcessing || to == StatusCancelled
	case StatusProcessing:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// Order is an immutable record created at checkout. Items are snapshots of
// the cart lines at order time; Total is never recomputed afterwards even if
// catalog prices change.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"-"`
	Customer  Customer    `json:"customer"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt string      `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
