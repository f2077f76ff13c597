package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamcipx/portofolio-sub000/commerce"
	"github.com/teamcipx/portofolio-sub000/metrics"
	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// sessionCookie identifies a visitor's cart across requests.
const sessionCookie = "cart_session"

// sessionID reads or mints the visitor's session id.
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(sessionCookie); id != "" {
		return id
	}
	id := primitive.NewObjectID().Hex()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

type cartResponse struct {
	Items []commerce.CartItem `json:"items"`
	Total float64             `json:"total"`
}

func cartJSON(cart *commerce.Cart) cartResponse {
	items := cart.Items()
	if items == nil {
		items = []commerce.CartItem{}
	}
	return cartResponse{Items: items, Total: cart.Total()}
}

// CartHandler returns the visitor's cart.
func CartHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := d.Commerce.Session(sessionID(c))
		return c.JSON(cartJSON(session.Cart))
	}
}

// AddCartItemHandler puts one unit of a product in the cart.
func AddCartItemHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ProductID string `json:"productId"`
		}
		if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "productId is required"})
		}

		var product models.Product
		found, err := d.Store.Get(c.Context(), ProductsCollection, req.ProductID, &product)
		if err != nil {
			d.Log.WithError(err).Error("failed to load product for cart")
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}

		session := d.Commerce.Session(sessionID(c))
		session.Cart.Add(product)
		return c.JSON(cartJSON(session.Cart))
	}
}

// RemoveCartItemHandler deletes a product's line from the cart outright.
func RemoveCartItemHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := d.Commerce.Session(sessionID(c))
		session.Cart.Remove(c.Params("productId"))
		return c.JSON(cartJSON(session.Cart))
	}
}

type checkoutResponse struct {
	State  commerce.State       `json:"state"`
	Method models.PaymentMethod `json:"method,omitempty"`
	Order  *models.Order        `json:"order,omitempty"`
}

func checkoutJSON(co *commerce.Checkout) checkoutResponse {
	return checkoutResponse{State: co.State(), Method: co.Method(), Order: co.Order()}
}

// StartCheckoutHandler begins the payment flow over the visitor's cart.
func StartCheckoutHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := d.Commerce.BeginCheckout(sessionID(c))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(checkoutJSON(co))
	}
}

// CheckoutStateHandler reports where the flow currently stands.
func CheckoutStateHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co := d.Commerce.Checkout(sessionID(c))
		if co == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no checkout in progress"})
		}
		return c.JSON(checkoutJSON(co))
	}
}

// SelectMethodHandler records the payment rail and advances to details.
func SelectMethodHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co := d.Commerce.Checkout(sessionID(c))
		if co == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no checkout in progress"})
		}

		var req struct {
			Method models.PaymentMethod `json:"method"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := co.SelectMethod(req.Method); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(checkoutJSON(co))
	}
}

// SubmitDetailsHandler validates the rail-specific fields and runs the
// order creation. A failed create reports the error and steps the flow back
// to details with the cart untouched.
func SubmitDetailsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co := d.Commerce.Checkout(sessionID(c))
		if co == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no checkout in progress"})
		}

		var details commerce.Details
		if err := c.BodyParser(&details); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := co.SubmitDetails(details); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		order, err := co.Process(c.Context())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "order could not be created, please try again",
				"state": co.State(),
			})
		}

		metrics.OrdersCreatedTotal.WithLabelValues(string(order.PaymentMethod), string(order.Status)).Inc()
		d.Mailer.NotifyOrder(*order)
		return c.JSON(checkoutJSON(co))
	}
}

// CheckoutBackHandler steps to the immediately prior state.
func CheckoutBackHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co := d.Commerce.Checkout(sessionID(c))
		if co == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no checkout in progress"})
		}
		if err := co.Back(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(checkoutJSON(co))
	}
}

// ReceiptHandler serves the locally generated text receipt for a finished
// checkout.
func ReceiptHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co := d.Commerce.Checkout(sessionID(c))
		if co == nil || co.Order() == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no completed order"})
		}

		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt.txt"`)
		return c.SendString(commerce.Receipt(*co.Order()))
	}
}
