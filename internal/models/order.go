package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusToPay     = "to_pay"
	StatusToShip    = "to_ship"
	StatusToReceive = "to_receive"
	StatusCompleted = "completed"
	StatusRefund    = "refund"
	StatusCancelled = "cancelled"
)

// OrderStatuses is the full status enum, in lifecycle order. Transitions are
// intentionally unconstrained: an order may move from any status to any other.
var OrderStatuses = []string{
	StatusToPay,
	StatusToShip,
	StatusToReceive,
	StatusCompleted,
	StatusRefund,
	StatusCancelled,
}

// UnresolvedStatuses are the statuses that block product deletion while an
// order referencing the product carries one of them.
var UnresolvedStatuses = []string{StatusToPay, StatusToShip, StatusToReceive}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of a product at checkout time. Name and price are
// copied from the product document so later edits do not rewrite history.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Subtotal  float64 `bson:"subtotal" json:"subtotal"`
}

// Order defines the persisted order document. TotalAmount equals the sum of
// item subtotals at creation time and is not re-validated afterwards.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"orderId" json:"orderId"`
	UserID      string             `bson:"userId" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	OrderStatus string             `bson:"orderStatus" json:"orderStatus"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
