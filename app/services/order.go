package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/pkg/logger"
	"github.com/shashiranjanraj/fitsetup/pkg/metrics"
)

// OrderStore is the slice of the order repository the order service needs.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// StockReserver is the slice of the product repository checkout needs.
type StockReserver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// OrderNotifier receives order lifecycle events. Implementations must not
// block; checkout calls them inline.
type OrderNotifier interface {
	OrderPlaced(o *models.Order)
	OrderStatusChanged(o *models.Order)
}

type CheckoutInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,in=COD,Card,UPI"`
}

// OrderService places and manages orders. Checkout reserves stock with
// per-line conditional decrements and compensates every reservation already
// taken if any later step fails, so an order document only ever exists with
// its full reservation and stock never goes negative.
type OrderService struct {
	orders   OrderStore
	products StockReserver
	carts    CartStore
	notifier OrderNotifier
}

func NewOrderService(orders OrderStore, products StockReserver, carts CartStore, notifier OrderNotifier) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts, notifier: notifier}
}

type reservation struct {
	productID primitive.ObjectID
	qty       int
}

// Checkout turns the user's cart into an order.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, in CheckoutInput) (*models.Order, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Re-validate every snapshot against the live catalog. Prices and names
	// may have drifted since the item was added; the order always carries
	// current values.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &StockError{ProductName: line.Name, Requested: line.Quantity, Available: 0}
		}
		if err != nil {
			return nil, err
		}
		if line.Quantity > p.Stock {
			metrics.StockRejections.Inc()
			return nil, &StockError{ProductName: p.Name, Requested: line.Quantity, Available: p.Stock}
		}
		items = append(items, models.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price,
			FinalPrice: p.FinalPrice,
			Image:      p.FirstImage(),
			Quantity:   line.Quantity,
		})
	}

	// Reserve stock line by line. A failed line releases everything reserved
	// so far before reporting the shortage.
	reserved := make([]reservation, 0, len(items))
	for _, it := range items {
		ok, err := s.products.DecrementStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			s.release(ctx, reserved)
			return nil, err
		}
		if !ok {
			s.release(ctx, reserved)
			metrics.StockRejections.Inc()
			available := 0
			if p, perr := s.products.FindByID(ctx, it.ProductID); perr == nil {
				available = p.Stock
			}
			return nil, &StockError{ProductName: it.Name, Requested: it.Quantity, Available: available}
		}
		reserved = append(reserved, reservation{productID: it.ProductID, qty: it.Quantity})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatusFor(in.PaymentMethod),
		OrderStatus:     models.OrderProcessing,
	}
	order.TotalAmount = order.Total()

	if err := s.orders.Insert(ctx, order); err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order stands; an uncleaned cart is recoverable by the user.
		logger.WithCtx(ctx).Error("checkout: clear cart", "error", err, "order_id", order.ID.Hex())
	}

	metrics.OrdersCreated.Inc()
	if s.notifier != nil {
		s.notifier.OrderPlaced(order)
	}
	return order, nil
}

// release returns reserved units after a failed checkout. Failures are logged
// and skipped; the remaining lines still get their stock back.
func (s *OrderService) release(ctx context.Context, reserved []reservation) {
	for _, r := range reserved {
		if err := s.products.IncrementStock(ctx, r.productID, r.qty); err != nil {
			logger.WithCtx(ctx).Error("checkout: release reservation",
				"error", err, "product_id", r.productID.Hex(), "qty", r.qty)
		}
	}
}

// Card and UPI payments are simulated: they always succeed and the order is
// Paid immediately. COD stays Pending until delivery.
func paymentStatusFor(method string) string {
	if method == models.PaymentCard || method == models.PaymentUPI {
		return models.PaymentPaid
	}
	return models.PaymentPending
}

func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *OrderService) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	o, err := s.orders.FindByIDForUser(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.All(ctx)
}

// UpdateStatus moves an order through its lifecycle (admin only). Delivering
// a COD order also marks it Paid.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == models.OrderDelivered && o.PaymentMethod == models.PaymentCOD && o.PaymentStatus == models.PaymentPending {
		if err := s.orders.UpdatePaymentStatus(ctx, id, models.PaymentPaid); err != nil {
			return nil, err
		}
		o.PaymentStatus = models.PaymentPaid
	}

	if s.notifier != nil {
		s.notifier.OrderStatusChanged(o)
	}
	return o, nil
}

// UpdatePayment sets the payment status directly (admin only), for manual
// reconciliation of COD collections and failed card captures.
func (s *OrderService) UpdatePayment(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.orders.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}
