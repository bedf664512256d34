package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
)

// CartStore is the slice of the cart repository the cart service needs.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, c *models.Cart) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type AddToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartView is a cart plus its derived totals.
type CartView struct {
	*models.Cart
	Subtotal  float64 `json:"subtotal"`
	ItemCount int     `json:"itemCount"`
}

// CartService manages per-user carts. Line snapshots are taken from the live
// product at add time; checkout re-validates them.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, creating an empty one on first use.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return view(cart), nil
}

// Add puts qty units of a product into the cart. Adding a product already in
// the cart merges into the existing line. The merged quantity is clamped by
// live stock; requesting more than stock is rejected.
func (s *CartService) Add(ctx context.Context, userID primitive.ObjectID, in AddToCartInput) (*CartView, error) {
	productID, err := primitive.ObjectIDFromHex(in.ProductID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	qty := in.Quantity
	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			qty += cart.Items[i].Quantity
			idx = i
			break
		}
	}
	if qty > p.Stock {
		return nil, &StockError{ProductName: p.Name, Requested: qty, Available: p.Stock}
	}

	if idx >= 0 {
		// Merge in place so re-adding a product keeps its position.
		line := &cart.Items[idx]
		line.Name = p.Name
		line.Price = p.Price
		line.FinalPrice = p.FinalPrice
		line.Image = p.FirstImage()
		line.Quantity = qty
		line.Stock = p.Stock
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price,
			FinalPrice: p.FinalPrice,
			Image:      p.FirstImage(),
			Quantity:   qty,
			Stock:      p.Stock,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

// UpdateQuantity sets the quantity of an existing line, re-checking stock.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*CartView, error) {
	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		p, err := s.products.FindByID(ctx, productID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if qty > p.Stock {
			return nil, &StockError{ProductName: p.Name, Requested: qty, Available: p.Stock}
		}

		cart.Items[i].Quantity = qty
		cart.Items[i].Stock = p.Stock
		cart.Items[i].Price = p.Price
		cart.Items[i].FinalPrice = p.FinalPrice

		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
		return view(cart), nil
	}
	return nil, ErrNotFound
}

// Remove drops a line from the cart. Removing an absent product is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*CartView, error) {
	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}

func (s *CartService) findOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func view(c *models.Cart) *CartView {
	return &CartView{Cart: c, Subtotal: c.Subtotal(), ItemCount: c.ItemCount()}
}
