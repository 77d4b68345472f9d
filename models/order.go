package models

import (
	"time"

	"github.com/storelane/storefront-api/utils"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // payment confirmed
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // terminal
	OrderStatusCancelled OrderStatus = "cancelled" // terminal
)

// Actor is the resolved identity a status change runs under. System actors
// represent trusted internal callers such as the payment webhook.
type Actor struct {
	UserID   string
	Role     string
	IsSystem bool
}

// transition describes who may move an order between two statuses.
type transition struct {
	admin  bool // any admin
	owner  bool // the user who placed the order
	system bool // payment confirmation path
}

// transitions is the full legal-transition table. Anything absent is
// rejected regardless of actor.
var transitions = map[OrderStatus]map[OrderStatus]transition{
	OrderStatusPending: {
		OrderStatusPaid:      {admin: true, system: true},
		OrderStatusCancelled: {admin: true, owner: true},
	},
	OrderStatusPaid: {
		OrderStatusShipped:   {admin: true},
		OrderStatusCancelled: {admin: true},
	},
	OrderStatusShipped: {
		OrderStatusDelivered: {admin: true},
	},
}

// ParseOrderStatus maps a request string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", utils.NewValidationError("invalid order status %q", s)
}

// CanTransition checks the transition table and the actor's rights against
// the given order. It distinguishes an illegal edge (InvalidTransition) from
// a legal edge the actor may not take (Forbidden).
func CanTransition(order *Order, to OrderStatus, actor Actor) error {
	allowed, ok := transitions[order.Status][to]
	if !ok {
		return utils.NewInvalidTransitionError(string(order.Status), string(to))
	}
	switch {
	case allowed.admin && actor.Role == RoleAdmin:
		return nil
	case allowed.system && actor.IsSystem:
		return nil
	case allowed.owner && actor.UserID == order.UserID:
		return nil
	}
	return utils.NewForbiddenError()
}

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderRef  string `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Discount  float64     `json:"discount"`
	Tax       float64     `json:"tax"`
	Shipping  float64     `json:"shipping"`
	Total     float64     `json:"total"`
	CouponCode string     `json:"coupon_code,omitempty"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	StatusHistory []OrderStatusEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history"`
	ShippingAddress Address   `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	ContactName     string    `json:"contact_name"`
	ContactPhone    string    `json:"contact_phone"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem is an immutable snapshot of a cart line at purchase time.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// OrderStatusEvent is one append-only row of an order's status history.
type OrderStatusEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"index" json:"-"`
	Status    OrderStatus `gorm:"type:VARCHAR(20)" json:"status"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
