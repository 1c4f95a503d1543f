package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printshop/internal/domain"
	applog "printshop/internal/log"
	"printshop/internal/metrics"
	"printshop/internal/services"
	"printshop/internal/validate"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Auth  *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	customer, ok := customerFromForm(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid checkout details")
	}

	o, err := h.Order.Place(sid, customer)
	if err != nil {
		metrics.RecordOrderOperation("place", false)
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "order.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Could not place your order. Your cart has been kept; please try again.",
		})
	}
	metrics.RecordOrderOperation("place", true)
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total})
	return c.Redirect("/order/" + o.ID)
}

func customerFromForm(c *fiber.Ctx) (domain.Customer, bool) {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	address, okAddr := validate.Address(c.FormValue("address"))
	city, okCity := validate.Name(c.FormValue("city"))
	pincode, okPin := validate.Pincode(c.FormValue("pincode"))
	if !okName || !okEmail || !okPhone || !okAddr || !okCity || !okPin {
		applog.Security(c, "validation.fail", map[string]any{"field": "checkout"})
		return domain.Customer{}, false
	}
	return domain.Customer{
		Name: name, Email: email, Phone: phone,
		Address: address, City: city, Pincode: pincode,
	}, true
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, err := h.Order.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Ownership check: session owner sees the order; admins see everything.
	sid := c.Cookies("sid")
	if sid == "" || sid != o.SessionID {
		if u, _ := c.Locals("user").(*domain.User); u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
		}
	}
	return render(c, "order", fiber.Map{"Order": o})
}

// History lists the current session's orders.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.ListBySession(ensureSID(c))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
