package handlers

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/domain"
	applog "printshop/internal/log"
	"printshop/internal/services"
	"printshop/internal/validate"
)

// APIHandler serves the JSON catalog API consumed by headless storefront
// clients. Responses always use the canonical product shape; legacy envelope
// variants are accepted only on the import side (internal/feed).
type APIHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products
func (h *APIHandler) Products(c *fiber.Ctx) error {
	products, err := h.Catalog.Browse(queryFromCtx(c))
	if err != nil {
		applog.Error(c, "api.products", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *APIHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(p)
}

// GET /api/v1/categories
func (h *APIHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "api.categories", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
	}
	// "All" is a filter value, not a stored category; clients get it first.
	names := make([]string, 0, len(cats)+1)
	names = append(names, domain.CategoryAll)
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	return c.JSON(names)
}
