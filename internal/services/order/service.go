package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"food-preorder/internal/access"
	"food-preorder/internal/database"
	"food-preorder/internal/logger"
	"food-preorder/internal/messaging"
	"food-preorder/internal/models"
)

// Service owns the order lifecycle: creation with price and name snapshots,
// status transitions, role-scoped reads and the status log.
type Service struct {
	db        *database.DB
	publisher *messaging.Publisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new order service
func NewService(db *database.DB, publisher *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Create places a new order. Item prices and names are read fresh from the
// database (never from the cache) and copied onto the order, so later menu
// edits or deletions leave existing orders untouched.
func (s *Service) Create(ctx context.Context, identity models.Identity, req *models.CreateOrderRequest) (*models.Order, error) {
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, models.ErrRestaurantNotFound
	}

	owner, err := s.restaurantOwner(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindOrder, OwnerID: owner, CustomerID: identity.AccountID}
	if !access.CanAccess(identity, resource, access.ActionCreate) {
		return nil, models.ErrForbidden
	}

	if len(req.Items) == 0 {
		return nil, models.ErrEmptyOrder
	}

	items, err := s.snapshotItems(ctx, restaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	pickup, err := ParsePickupTime(req.PickupTime)
	if err != nil {
		return nil, err
	}
	if err := ValidatePickupWindow(pickup, s.now()); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:                  uuid.New(),
		CustomerID:          identity.AccountID,
		RestaurantID:        restaurantID,
		Items:               items,
		TotalAmount:         models.TotalOf(items),
		Status:              models.StatusPending,
		PickupTime:          pickup,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       models.PaymentMethod(req.PaymentMethod),
		PaymentStatus:       models.PaymentPending,
	}

	if err := s.insertOrder(ctx, order, identity); err != nil {
		return nil, err
	}

	s.publishStatusUpdate(ctx, order, "", identity)

	s.logger.Info("order_created", "Order placed", "", map[string]interface{}{
		"order_id":      order.ID.String(),
		"restaurant_id": order.RestaurantID.String(),
		"total_amount":  order.TotalAmount,
	})

	return order, nil
}

// Get returns one order with its items, subject to the access predicate.
func (s *Service) Get(ctx context.Context, identity models.Identity, id uuid.UUID) (*models.Order, error) {
	order, owner, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindOrder, OwnerID: owner, CustomerID: order.CustomerID}
	if !access.CanAccess(identity, resource, access.ActionRead) {
		return nil, models.ErrForbidden
	}

	order.Items, err = s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List returns the orders visible to the identity: customers see their own,
// restaurant owners see their restaurants' incoming orders, admins see all.
func (s *Service) List(ctx context.Context, identity models.Identity, limit, offset int) ([]*models.Order, int, error) {
	var (
		rows  pgx.Rows
		total int
		err   error
	)

	switch identity.Role {
	case models.RoleAdmin:
		if err = s.db.QueryRow(ctx, database.CountAllOrdersSQL).Scan(&total); err == nil {
			rows, err = s.db.Query(ctx, database.ListAllOrdersSQL, limit, offset)
		}
	case models.RoleRestaurant:
		if err = s.db.QueryRow(ctx, database.CountOrdersByRestaurantOwnerSQL, identity.AccountID).Scan(&total); err == nil {
			rows, err = s.db.Query(ctx, database.ListOrdersByRestaurantOwnerSQL, identity.AccountID, limit, offset)
		}
	default:
		if err = s.db.QueryRow(ctx, database.CountOrdersByCustomerSQL, identity.AccountID).Scan(&total); err == nil {
			rows, err = s.db.Query(ctx, database.ListOrdersByCustomerSQL, identity.AccountID, limit, offset)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, order := range orders {
		if order.Items, err = s.loadItems(ctx, order.ID); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

// UpdateStatus applies a status transition and, when requested, a payment
// status co-update. The status write is conditional on the status the order
// had when loaded; a concurrent transition surfaces as ErrStatusConflict.
func (s *Service) UpdateStatus(ctx context.Context, identity models.Identity, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, owner, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	var target *models.OrderStatus
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		target = &status
	}

	// Cancelling is a distinct permission so customers may cancel their own
	// orders without gaining the general transition right.
	action := access.ActionUpdateStatus
	if target != nil && *target == models.StatusCancelled {
		action = access.ActionCancel
	}

	resource := access.Resource{Kind: access.KindOrder, OwnerID: owner, CustomerID: order.CustomerID}
	if !access.CanAccess(identity, resource, action) {
		return nil, models.ErrForbidden
	}

	if target != nil {
		if !order.Status.CanTransitionTo(*target) {
			return nil, models.ErrIllegalTransition
		}

		oldStatus := order.Status
		affected, err := s.db.Exec(ctx, database.UpdateOrderStatusCASSQL, *target, order.ID, oldStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		if affected == 0 {
			return nil, models.ErrStatusConflict
		}

		if _, err := s.db.Exec(ctx, database.InsertOrderStatusLogSQL,
			order.ID, *target, identity.AccountID.String(), nil); err != nil {
			s.logger.Error("status_log_failed", "Failed to record status change", "", err,
				map[string]interface{}{"order_id": order.ID.String()})
		}

		order.Status = *target
		s.publishStatusUpdate(ctx, order, oldStatus, identity)
	}

	if req.PaymentStatus != nil {
		paymentStatus := models.PaymentStatus(*req.PaymentStatus)
		if _, err := s.db.Exec(ctx, database.UpdateOrderPaymentStatusSQL, paymentStatus, order.ID); err != nil {
			return nil, fmt.Errorf("failed to update payment status: %w", err)
		}
		order.PaymentStatus = paymentStatus
	}

	order.Items, err = s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel transitions the order to cancelled.
func (s *Service) Cancel(ctx context.Context, identity models.Identity, id uuid.UUID) (*models.Order, error) {
	cancelled := string(models.StatusCancelled)
	return s.UpdateStatus(ctx, identity, id, &models.UpdateOrderRequest{Status: &cancelled})
}

// History returns the order's status log in chronological order.
func (s *Service) History(ctx context.Context, identity models.Identity, id uuid.UUID) ([]models.OrderStatusHistory, error) {
	order, owner, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindOrder, OwnerID: owner, CustomerID: order.CustomerID}
	if !access.CanAccess(identity, resource, access.ActionRead) {
		return nil, models.ErrForbidden
	}

	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// snapshotItems resolves each requested line against the live menu and
// captures name and price. Unavailable items or items from a different
// restaurant reject the whole order.
func (s *Service) snapshotItems(ctx context.Context, restaurantID uuid.UUID, reqItems []models.CreateOrderItemRequest) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqItems))
	for _, line := range reqItems {
		menuItemID, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return nil, models.ErrMenuItemNotFound
		}

		var item models.MenuItem
		err = s.db.QueryRow(ctx, database.GetMenuItemByIDSQL, menuItemID).Scan(
			&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category,
			&item.IsVegetarian, &item.IsVegan, &item.IsGlutenFree, &item.PreparationTime,
			&item.IsAvailable, &item.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.ErrMenuItemNotFound
			}
			return nil, fmt.Errorf("failed to resolve menu item: %w", err)
		}
		if item.RestaurantID != restaurantID {
			return nil, models.ErrItemWrongRestaurant
		}
		if !item.IsAvailable {
			return nil, models.ErrMenuItemUnavailable
		}

		items = append(items, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			Price:      item.Price,
		})
	}
	return items, nil
}

func (s *Service) insertOrder(ctx context.Context, order *models.Order, identity models.Identity) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.ID, order.CustomerID, order.RestaurantID, order.TotalAmount, order.Status,
		order.PickupTime, order.SpecialInstructions, order.PaymentMethod, order.PaymentStatus,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID, item.MenuItemID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		order.ID, order.Status, identity.AccountID.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *Service) publishStatusUpdate(ctx context.Context, order *models.Order, oldStatus models.OrderStatus, identity models.Identity) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishStatusUpdate(ctx, &messaging.StatusUpdateMessage{
		OrderID:      order.ID.String(),
		RestaurantID: order.RestaurantID.String(),
		OldStatus:    string(oldStatus),
		NewStatus:    string(order.Status),
		ChangedBy:    identity.AccountID.String(),
		Timestamp:    time.Now(),
	})
	if err != nil {
		s.logger.Error("status_publish_failed", "Failed to publish status update", "", err,
			map[string]interface{}{"order_id": order.ID.String()})
	}
}

func (s *Service) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, uuid.UUID, error) {
	order, err := scanOrder(s.db.QueryRow(ctx, database.GetOrderByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, uuid.Nil, models.ErrOrderNotFound
		}
		return nil, uuid.Nil, fmt.Errorf("failed to get order: %w", err)
	}

	owner, err := s.restaurantOwner(ctx, order.RestaurantID)
	if err != nil && !errors.Is(err, models.ErrRestaurantNotFound) {
		return nil, uuid.Nil, err
	}
	return order, owner, nil
}

func (s *Service) restaurantOwner(ctx context.Context, restaurantID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := s.db.QueryRow(ctx, database.GetRestaurantOwnerSQL, restaurantID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, models.ErrRestaurantNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get restaurant owner: %w", err)
	}
	return owner, nil
}

func (s *Service) loadItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := s.db.Query(ctx, database.GetOrderItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID, &order.CustomerID, &order.RestaurantID, &order.TotalAmount, &order.Status,
		&order.PickupTime, &order.SpecialInstructions, &order.PaymentMethod, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
