package handlers

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/catalog"
	"printshop/internal/services"
	"printshop/internal/validate"
)

// queryFromCtx builds a catalog query from request parameters. Unparseable
// values fall back to the engine defaults; the engine itself never errors.
func queryFromCtx(c *fiber.Ctx) catalog.Query {
	q := catalog.Query{
		Category: c.Query("category"),
		Sort:     catalog.ParseSortKey(c.Query("sort")),
	}
	if term, ok := validate.Q(c.Query("q")); ok {
		q.Term = term
	}
	if min, ok := validate.Price(c.Query("minPrice")); ok {
		q.MinPrice = min
	}
	if max, ok := validate.Price(c.Query("maxPrice")); ok {
		q.MaxPrice = max
	}
	if c.Query("page") != "" || c.Query("pageSize") != "" {
		q.Page = validate.Page(c.Query("page"))
		q.PageSize = validate.Page(c.Query("pageSize"))
		if c.Query("pageSize") == "" {
			q.PageSize = services.DefaultPageSize
		}
	}
	return q
}
