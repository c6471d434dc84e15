package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"food-preorder/internal/access"
	"food-preorder/internal/database"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

// Store is the menu catalog interface the handler depends on. Service
// implements it against PostgreSQL; CachedStore decorates it with Redis.
type Store interface {
	List(ctx context.Context, category models.MenuCategory, limit, offset int) ([]models.MenuItem, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error)
	Create(ctx context.Context, identity models.Identity, req *models.UpsertMenuItemRequest) (*models.MenuItem, error)
	Update(ctx context.Context, identity models.Identity, id uuid.UUID, req *models.UpsertMenuItemRequest) (*models.MenuItem, error)
	Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error
}

// Service provides menu catalog operations backed by PostgreSQL
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new menu service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// List returns a page of menu items plus the total count, optionally
// restricted to one category.
func (s *Service) List(ctx context.Context, category models.MenuCategory, limit, offset int) ([]models.MenuItem, int, error) {
	var (
		total int
		rows  pgx.Rows
		err   error
	)

	if category == "" {
		if err = s.db.QueryRow(ctx, database.CountMenuItemsSQL).Scan(&total); err == nil {
			rows, err = s.db.Query(ctx, database.ListMenuItemsSQL, limit, offset)
		}
	} else {
		if err = s.db.QueryRow(ctx, database.CountMenuItemsByCategorySQL, category).Scan(&total); err == nil {
			rows, err = s.db.Query(ctx, database.ListMenuItemsByCategorySQL, category, limit, offset)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items, err := scanMenuItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one menu item by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row := s.db.QueryRow(ctx, database.GetMenuItemByIDSQL, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// ListByRestaurant returns all items of one restaurant's menu.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, database.ListMenuItemsByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant menu: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

// Create adds a menu item to a restaurant the identity owns.
func (s *Service) Create(ctx context.Context, identity models.Identity, req *models.UpsertMenuItemRequest) (*models.MenuItem, error) {
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, models.ErrRestaurantNotFound
	}

	ownerID, err := s.restaurantOwner(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindMenuItem, OwnerID: ownerID}
	if !access.CanAccess(identity, resource, access.ActionUpdate) {
		return nil, models.ErrForbidden
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := &models.MenuItem{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        models.MenuCategory(req.Category),
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		PreparationTime: req.PreparationTime,
		IsAvailable:     available,
	}

	err = s.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Price, item.Category,
		item.IsVegetarian, item.IsVegan, item.IsGlutenFree, item.PreparationTime, item.IsAvailable,
	).Scan(&item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return item, nil
}

// Update replaces a menu item. Only the owning restaurant's account or an
// admin may update.
func (s *Service) Update(ctx context.Context, identity models.Identity, id uuid.UUID, req *models.UpsertMenuItemRequest) (*models.MenuItem, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.restaurantOwner(ctx, existing.RestaurantID)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindMenuItem, OwnerID: ownerID}
	if !access.CanAccess(identity, resource, access.ActionUpdate) {
		return nil, models.ErrForbidden
	}

	available := existing.IsAvailable
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	_, err = s.db.Exec(ctx, database.UpdateMenuItemSQL,
		req.Name, req.Description, req.Price, req.Category,
		req.IsVegetarian, req.IsVegan, req.IsGlutenFree, req.PreparationTime, available, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a menu item. Historical orders keep their name and price
// snapshots, so deletion never breaks order display.
func (s *Service) Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ownerID, err := s.restaurantOwner(ctx, existing.RestaurantID)
	if err != nil {
		return err
	}

	resource := access.Resource{Kind: access.KindMenuItem, OwnerID: ownerID}
	if !access.CanAccess(identity, resource, access.ActionDelete) {
		return models.ErrForbidden
	}

	if _, err := s.db.Exec(ctx, database.DeleteMenuItemSQL, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

// restaurantOwner resolves the owning account of a restaurant.
func (s *Service) restaurantOwner(ctx context.Context, restaurantID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := s.db.QueryRow(ctx, database.GetRestaurantOwnerSQL, restaurantID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, models.ErrRestaurantNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve restaurant owner: %w", err)
	}
	return ownerID, nil
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.IsVegetarian, &item.IsVegan, &item.IsGlutenFree, &item.PreparationTime, &item.IsAvailable,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanMenuItems(rows pgx.Rows) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
