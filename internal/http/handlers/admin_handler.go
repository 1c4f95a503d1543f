package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/catalog"
	"printshop/internal/domain"
	applog "printshop/internal/log"
	"printshop/internal/metrics"
	"printshop/internal/repos"
	"printshop/internal/services"
	"printshop/internal/validate"
)

type AdminHandler struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
	Order   *services.OrderService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders, _ := h.Admin.Orders.ListLatest(10)
	products, _ := h.Catalog.Browse(catalog.Query{})
	return render(c, "admin_dashboard", fiber.Map{"Orders": orders, "ProductCount": len(products)})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.Browse(queryFromCtx(c))
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Catalog.ListCategories()
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": cats})
}

// POST /admin/products
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	p, ok := productFromForm(c)
	if !ok {
		return c.Status(400).SendString("invalid product")
	}
	saved, err := h.Admin.SaveProduct(p)
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": p.ID})
		if errors.Is(err, services.ErrUnknownCategory) {
			return c.Status(400).SendString("unknown category")
		}
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": saved.ID})
	return c.Redirect("/admin/products")
}

func productFromForm(c *fiber.Ctx) (domain.Product, bool) {
	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	category, okCat := validate.CategoryName(c.FormValue("category"))
	if !okName || !okPrice || !okCat {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return domain.Product{}, false
	}
	p := domain.Product{
		ID:          c.FormValue("id"), // empty for new products
		Name:        name,
		Description: c.FormValue("description"),
		ImageRef:    c.FormValue("image"),
		Price:       price,
		Category:    category,
		InStock:     c.FormValue("inStock") != "",
		Active:      true,
	}
	if rating, ok := validate.Price(c.FormValue("rating")); ok && rating <= 5 {
		p.Rating = rating
	}
	return p, true
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Admin.DeleteProduct(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// GET /admin/categories
func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	name, ok := validate.CategoryName(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("invalid category name")
	}
	if err := h.Admin.CreateCategory(name); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"category": name})
		if errors.Is(err, repos.ErrCategoryReserved) {
			return c.Status(400).SendString("that name is reserved")
		}
		return c.Status(400).SendString("could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": name})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	name, ok := validate.CategoryName(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("invalid category name")
	}
	if err := h.Admin.DeleteCategory(name); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": name})
		if errors.Is(err, repos.ErrCategoryInUse) {
			return c.Status(fiber.StatusConflict).SendString("category still has products")
		}
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": name})
	return c.Redirect("/admin/categories")
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Admin.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := domain.OrderStatus(c.FormValue("status"))
	if !ok || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Order.UpdateStatus(id, status); err != nil {
		metrics.RecordOrderOperation("status_update", false)
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		if errors.Is(err, services.ErrBadTransition) {
			return c.Status(fiber.StatusConflict).SendString("transition not allowed")
		}
		return c.Status(400).SendString("could not update status")
	}
	metrics.RecordOrderOperation("status_update", true)
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": string(status)})
	return c.Redirect("/admin/orders")
}

// POST /admin/import — bulk product feed in any of the supported shapes.
func (h *AdminHandler) ImportFeed(c *fiber.Ctx) error {
	n, err := h.Admin.ImportFeed(c.Body())
	if err != nil {
		applog.Error(c, "admin.import.fail", err, nil)
		return c.Status(400).SendString("could not import feed")
	}
	applog.Audit(c, "admin.import", map[string]any{"count": n})
	return c.Redirect("/admin/products")
}

// GET /admin/export — full store contents as JSON.
func (h *AdminHandler) ExportData(c *fiber.Ctx) error {
	data, err := h.Admin.ExportData()
	if err != nil {
		applog.Error(c, "admin.export.fail", err, nil)
		return c.Status(500).SendString("could not export data")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="printshop-export.json"`)
	return c.Send(data)
}
