package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/catalog"
	applog "printshop/internal/log"
	"printshop/internal/services"
	"printshop/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	featured, err := h.Catalog.Browse(catalog.Query{Sort: catalog.SortRating, Page: 1, PageSize: 6})
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured})
}

// Browse renders one category page (or the whole catalog for "All").
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	q := queryFromCtx(c)
	q.Category = name
	if q.Page == 0 {
		q.Page, q.PageSize = 1, services.DefaultPageSize
	}
	products, err := h.Catalog.Browse(q)
	if err != nil {
		applog.Error(c, "catalog.browse", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "catalog", fiber.Map{
		"Category": name, "Products": products, "Count": len(products),
		"Sort": string(q.Sort), "Page": q.Page,
	})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	if _, ok := validate.Q(rawQ); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	q := queryFromCtx(c)
	products, err := h.Catalog.Browse(q)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "search", fiber.Map{
		"Q": q.Term, "Category": q.Category, "Sort": string(q.Sort),
		"Products": products, "Count": len(products),
	})
}
