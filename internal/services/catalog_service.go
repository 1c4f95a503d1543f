package services

import (
	"printshop/internal/catalog"
	"printshop/internal/domain"
	"printshop/internal/repos"
)

// DefaultPageSize applies whenever a request paginates without naming a size.
const DefaultPageSize = 12

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// Browse loads the active catalog and applies q in memory. The store supplies
// the collection; all filter/sort/pagination semantics live in the query
// engine.
func (s *CatalogService) Browse(q catalog.Query) ([]domain.Product, error) {
	products, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, q), nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

// Availability reports the advisory stock status for a product. The flag
// never blocks adding to cart; it only informs the storefront.
func (s *CatalogService) Availability(productID string) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Availability{}, err
	}
	if p.InStock && p.Active {
		return domain.Availability{Status: "IN_STOCK"}, nil
	}
	return domain.Availability{Status: "OUT_OF_STOCK"}, nil
}
