package services

import (
	"printshop/internal/cart"
	"printshop/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// load materializes the session's persisted lines into an aggregator.
func (s *CartService) load(sessionID string) (string, *cart.Cart, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", nil, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", nil, err
	}
	return cartID, cart.Restore(items), nil
}

// Add merges qty of productID into the session cart, capturing the product's
// display fields at this moment.
func (s *CartService) Add(sessionID, productID string, qty int) error {
	cartID, c, err := s.load(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	c.Add(p, qty)
	return s.Carts.Replace(cartID, c.Items())
}

// SetQuantity sets a line's quantity exactly; 0 removes the line and an
// unknown productID leaves the cart untouched.
func (s *CartService) SetQuantity(sessionID, productID string, qty int) error {
	cartID, c, err := s.load(sessionID)
	if err != nil {
		return err
	}
	c.SetQuantity(productID, qty)
	return s.Carts.Replace(cartID, c.Items())
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, c, err := s.load(sessionID)
	if err != nil {
		return err
	}
	c.Remove(productID)
	return s.Carts.Replace(cartID, c.Items())
}

type CartView struct {
	Items     []cart.LineItem
	ItemCount int
	Total     float64
}

func (s *CartService) View(sessionID string) (CartView, error) {
	_, c, err := s.load(sessionID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: c.Items(), ItemCount: c.ItemCount(), Total: c.Total()}, nil
}
