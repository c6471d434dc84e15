package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"food-preorder/internal/logger"
	"food-preorder/internal/models"
	"food-preorder/internal/services/menu"
	"food-preorder/internal/services/order"
)

// Carts expire after a week of inactivity; the pickup window has the same
// horizon, so nothing in an older cart could still be ordered as-is.
const cartTTL = 7 * 24 * time.Hour

// Service keeps per-customer carts in Redis and turns them into orders at
// checkout, one order per restaurant represented in the cart.
type Service struct {
	redis  *redis.Client
	menu   menu.Store
	orders *order.Service
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new cart service
func NewService(client *redis.Client, menuStore menu.Store, orders *order.Service, log *logger.Logger) *Service {
	return &Service{
		redis:  client,
		menu:   menuStore,
		orders: orders,
		logger: log,
		now:    time.Now,
	}
}

func cartKey(accountID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", accountID)
}

// Get returns the customer's cart, empty when none is stored.
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (*models.Cart, error) {
	data, err := s.redis.Get(ctx, cartKey(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupt cart is unrecoverable: start over rather than fail
		// every request for this customer.
		s.logger.Error("cart_corrupt", "Discarding unreadable cart", "", err,
			map[string]interface{}{"account_id": accountID.String()})
		return models.NewCart(), nil
	}
	if cart.Entries == nil {
		cart.Entries = make(map[uuid.UUID]*models.CartEntry)
	}
	return &cart, nil
}

// AddItem resolves the menu item and merges it into the cart. The unit price
// recorded here is for display only; checkout re-reads the catalog.
func (s *Service) AddItem(ctx context.Context, accountID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return nil, models.ErrMenuItemNotFound
	}

	item, err := s.menu.Get(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, models.ErrMenuItemUnavailable
	}

	cart, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	cart.Add(models.CartEntry{
		MenuItemID:   item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Quantity:     req.Quantity,
		UnitPrice:    item.Price,
	})

	if err := s.save(ctx, accountID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes one entry from the cart. Removing the last item of a
// restaurant drops that restaurant's group.
func (s *Service) RemoveItem(ctx context.Context, accountID, menuItemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !cart.Remove(menuItemID) {
		return nil, models.ErrMenuItemNotFound
	}

	if err := s.save(ctx, accountID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear discards the customer's cart.
func (s *Service) Clear(ctx context.Context, accountID uuid.UUID) error {
	if err := s.redis.Del(ctx, cartKey(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Checkout converts the cart into one order per restaurant group. All pickup
// times are validated up front, so a rejected time fails the whole checkout
// before any order is created.
func (s *Service) Checkout(ctx context.Context, identity models.Identity, req *models.CheckoutRequest) ([]*models.Order, error) {
	cart, err := s.Get(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, models.ErrCartEmpty
	}

	groups := cart.GroupByRestaurant()

	restaurantIDs := make([]uuid.UUID, 0, len(groups))
	for restaurantID := range groups {
		restaurantIDs = append(restaurantIDs, restaurantID)
	}
	sort.Slice(restaurantIDs, func(i, j int) bool {
		return restaurantIDs[i].String() < restaurantIDs[j].String()
	})

	now := s.now()
	for _, restaurantID := range restaurantIDs {
		raw, ok := req.PickupTimes[restaurantID.String()]
		if !ok {
			return nil, models.ErrPickupTimeMissing
		}
		pickup, err := order.ParsePickupTime(raw)
		if err != nil {
			return nil, err
		}
		if err := order.ValidatePickupWindow(pickup, now); err != nil {
			return nil, err
		}
	}

	orders := make([]*models.Order, 0, len(restaurantIDs))
	for _, restaurantID := range restaurantIDs {
		entries := groups[restaurantID]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})

		lines := make([]models.CreateOrderItemRequest, 0, len(entries))
		for _, entry := range entries {
			lines = append(lines, models.CreateOrderItemRequest{
				MenuItemID: entry.MenuItemID.String(),
				Quantity:   entry.Quantity,
			})
		}

		created, err := s.orders.Create(ctx, identity, &models.CreateOrderRequest{
			RestaurantID:        restaurantID.String(),
			Items:               lines,
			PickupTime:          req.PickupTimes[restaurantID.String()],
			SpecialInstructions: req.SpecialInstructions,
			PaymentMethod:       req.PaymentMethod,
		})
		if err != nil {
			return nil, err
		}
		orders = append(orders, created)
	}

	if err := s.Clear(ctx, identity.AccountID); err != nil {
		s.logger.Error("cart_clear_failed", "Orders created but cart not cleared", "", err,
			map[string]interface{}{"account_id": identity.AccountID.String()})
	}

	return orders, nil
}

func (s *Service) save(ctx context.Context, accountID uuid.UUID, cart *models.Cart) error {
	body, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redis.Set(ctx, cartKey(accountID), body, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}
