package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "printshop/internal/log"
	"printshop/internal/services"
	"printshop/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if err := h.Cart.Add(sid, productID, qty); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product": productID})
		return c.Status(400).SendString("could not add to cart")
	}
	return c.Redirect("/cart")
}

// Update sets one line's quantity exactly; qty=0 removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.QtyOrZero(c.FormValue("qty"))
	if err := h.Cart.SetQuantity(sid, productID, qty); err != nil {
		applog.Error(c, "cart.update", err, map[string]any{"product": productID})
		return c.Status(400).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product": productID})
		return c.Status(400).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}
