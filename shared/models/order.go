package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus tracks the lifecycle of a placed order. The client only ever
// creates orders; status transitions happen through the admin surface.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderRejected  OrderStatus = "rejected"
)

// PaymentMethod identifies one of the supported payment rails.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentBkash  PaymentMethod = "bkash"
	PaymentNagad  PaymentMethod = "nagad"
	PaymentRocket PaymentMethod = "rocket"
	PaymentUSDT   PaymentMethod = "usdt"
)

// PaymentMethods lists every rail the checkout offers.
var PaymentMethods = []PaymentMethod{
	PaymentCard, PaymentBkash, PaymentNagad, PaymentRocket, PaymentUSDT,
}

// RequiresManualVerification reports whether the rail's payments are
// confirmed by hand after the fact — the mobile-money and crypto rails,
// which take a sender number and transaction reference instead of card
// details.
func (m PaymentMethod) RequiresManualVerification() bool {
	return m == PaymentBkash || m == PaymentNagad || m == PaymentRocket || m == PaymentUSDT
}

// Valid reports whether the method is one of the supported rails.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is the record a finished checkout persists. It is written once and
// never mutated by the storefront afterwards.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	TrxID         string             `bson:"trxId,omitempty" json:"trxId,omitempty"`
	SenderNumber  string             `bson:"senderNumber,omitempty" json:"senderNumber,omitempty"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
