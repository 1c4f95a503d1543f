package handlers

import (
	"github.com/jmoiron/sqlx"

	"printshop/internal/config"
	"printshop/internal/repos"
	"printshop/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	APIHandler     *APIHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo)
	adminSvc := services.NewAdminService(prodRepo, catRepo, orderRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Auth: auth},
		APIHandler:     &APIHandler{Catalog: catalogSvc},
		AdminHandler:   &AdminHandler{Admin: adminSvc, Catalog: catalogSvc, Order: orderSvc},
	}
}
