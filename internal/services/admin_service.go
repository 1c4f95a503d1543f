package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"printshop/internal/domain"
	"printshop/internal/feed"
	"printshop/internal/repos"
)

var ErrUnknownCategory = errors.New("unknown category")

// AdminService implements the back-office authoring workflows: product and
// category management, bulk feed import and full data export.
type AdminService struct {
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Orders *repos.OrderRepo
}

func NewAdminService(prods *repos.ProductRepo, cats *repos.CategoryRepo, orders *repos.OrderRepo) *AdminService {
	return &AdminService{Prods: prods, Cats: cats, Orders: orders}
}

// SaveProduct creates or updates a product. New products get a generated id;
// the category must already exist ("All" never does, being reserved).
func (s *AdminService) SaveProduct(p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	ok, err := s.Cats.Exists(p.Category)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	if err := s.Prods.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *AdminService) DeleteProduct(id string) error {
	return s.Prods.Delete(id)
}

func (s *AdminService) CreateCategory(name string) error {
	return s.Cats.Create(name)
}

func (s *AdminService) DeleteCategory(name string) error {
	return s.Cats.Delete(name)
}

// ImportFeed normalizes an external product document (any of the known
// shapes) and upserts every product whose category exists, creating missing
// categories on the fly. Returns the number of imported products.
func (s *AdminService) ImportFeed(data []byte) (int, error) {
	products, err := feed.Decode(data)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range products {
		if p.Category == "" || p.Category == domain.CategoryAll {
			continue
		}
		if err := s.Cats.Create(p.Category); err != nil {
			return n, err
		}
		if err := s.Prods.Upsert(p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type Export struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
	Orders     []domain.Order    `json:"orders"`
	ExportedAt string            `json:"exportedAt"`
}

// ExportData returns the full store contents as one JSON document.
func (s *AdminService) ExportData() ([]byte, error) {
	products, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	categories, err := s.Cats.List()
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.ListLatest(1000)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(Export{
		Products:   products,
		Categories: categories,
		Orders:     orders,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
}
