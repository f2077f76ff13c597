package commerce

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamcipx/portofolio-sub000/shared/models"
	"github.com/teamcipx/portofolio-sub000/shared/store"
	"github.com/teamcipx/portofolio-sub000/shared/validate"
)

// OrdersCollection is where finished checkouts persist their order.
const OrdersCollection = "orders"

// State is a step of the checkout flow. The flow is linear — method,
// details, processing, success — with Back stepping to the immediately
// prior state and success terminal.
type State string

const (
	StateMethod     State = "method"
	StateDetails    State = "details"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
)

// Details carries the delivery email plus the rail-specific fields. Card
// rails use the card fields; mobile-money and crypto rails use the sender
// number and transaction reference.
type Details struct {
	Email        string `json:"email" validate:"required,email"`
	CardNumber   string `json:"cardNumber,omitempty"`
	CardExpiry   string `json:"cardExpiry,omitempty"`
	CardCVC      string `json:"cardCvc,omitempty"`
	SenderNumber string `json:"senderNumber,omitempty"`
	TrxID        string `json:"trxId,omitempty"`
}

var (
	// ErrWrongState is returned when an operation does not apply to the
	// flow's current step.
	ErrWrongState = errors.New("operation not valid in current checkout state")
	// ErrEmptyCart is returned when a checkout starts over nothing.
	ErrEmptyCart = errors.New("cart is empty")
)

// Checkout walks one cart through the payment flow and produces an order.
type Checkout struct {
	mu      sync.Mutex
	cart    *Cart
	st      store.Store
	log     *logrus.Logger
	delay   time.Duration
	state   State
	method  models.PaymentMethod
	details Details
	order   *models.Order
}

// NewCheckout starts a flow in the method step. delay is the simulated
// processing pause before success; tests pass zero.
func NewCheckout(cart *Cart, st store.Store, log *logrus.Logger, delay time.Duration) (*Checkout, error) {
	if cart.Empty() {
		return nil, ErrEmptyCart
	}
	return &Checkout{
		cart:  cart,
		st:    st,
		log:   log,
		delay: delay,
		state: StateMethod,
	}, nil
}

// State returns the current step.
func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Method returns the selected payment rail.
func (c *Checkout) Method() models.PaymentMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

// Order returns the persisted order once the flow has succeeded.
func (c *Checkout) Order() *models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// SelectMethod records the payment rail and advances to the details step.
func (c *Checkout) SelectMethod(m models.PaymentMethod) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMethod {
		return ErrWrongState
	}
	if !m.Valid() {
		return errors.New("unsupported payment method")
	}
	c.method = m
	c.state = StateDetails
	return nil
}

// SubmitDetails validates the rail-specific fields and advances to
// processing. Validation failures keep the flow in the details step.
func (c *Checkout) SubmitDetails(d Details) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDetails {
		return ErrWrongState
	}
	if err := validate.Struct(d); err != nil {
		return err
	}
	if c.method == models.PaymentCard {
		if d.CardNumber == "" || d.CardExpiry == "" || d.CardCVC == "" {
			return errors.New("card number, expiry and cvc are required")
		}
	} else {
		if d.SenderNumber == "" || d.TrxID == "" {
			return errors.New("sender number and transaction id are required")
		}
	}
	c.details = d
	c.state = StateProcessing
	return nil
}

// Process issues the single order insert. On success it waits the simulated
// delay, clears the cart and lands on success. On failure the flow returns
// to details with the cart intact so the visitor can retry. The lock is not
// held across the delay, so State and Order stay responsive while the flow
// is processing.
func (c *Checkout) Process(ctx context.Context) (*models.Order, error) {
	c.mu.Lock()

	if c.state != StateProcessing {
		c.mu.Unlock()
		return nil, ErrWrongState
	}

	status := models.OrderCompleted
	if c.method.RequiresManualVerification() {
		status = models.OrderPending
	}

	items := c.cart.Items()
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.Product.ID.Hex(),
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		UserEmail:     c.details.Email,
		Items:         orderItems,
		Total:         c.cart.Total(),
		PaymentMethod: c.method,
		TrxID:         c.details.TrxID,
		SenderNumber:  c.details.SenderNumber,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := c.st.Insert(ctx, OrdersCollection, order)
	if err != nil {
		c.log.WithError(err).Error("failed to create order")
		c.state = StateDetails
		c.mu.Unlock()
		return nil, err
	}
	if oid, perr := primitive.ObjectIDFromHex(id); perr == nil {
		order.ID = oid
	}
	delay := c.delay
	c.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The flow may have been navigated away from while the delay ran.
	if c.state != StateProcessing {
		return nil, ErrWrongState
	}
	c.cart.Clear()
	c.order = &order
	c.state = StateSuccess
	return &order, nil
}

// Back steps to the immediately prior state. Success is terminal and the
// method step has nowhere to go.
func (c *Checkout) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDetails:
		c.state = StateMethod
		return nil
	case StateProcessing:
		c.state = StateDetails
		return nil
	default:
		return ErrWrongState
	}
}
