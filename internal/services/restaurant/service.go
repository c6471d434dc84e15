package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"food-preorder/internal/access"
	"food-preorder/internal/database"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

// Service provides restaurant directory operations
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new restaurant service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// List returns all restaurant profiles.
func (s *Service) List(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := s.db.Query(ctx, database.ListRestaurantsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *r)
	}

	return restaurants, rows.Err()
}

// Get returns one restaurant by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	row := s.db.QueryRow(ctx, database.GetRestaurantByIDSQL, id)
	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

// Create creates a restaurant owned by the acting identity.
func (s *Service) Create(ctx context.Context, identity models.Identity, req *models.UpsertRestaurantRequest) (*models.Restaurant, error) {
	if !access.CanAccess(identity, access.Resource{Kind: access.KindRestaurant}, access.ActionCreate) {
		return nil, models.ErrForbidden
	}

	r := &models.Restaurant{
		ID:           uuid.New(),
		OwnerID:      identity.AccountID,
		Name:         req.Name,
		Description:  req.Description,
		Cuisine:      req.Cuisine,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
	}

	hours, err := json.Marshal(r.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal opening hours: %w", err)
	}

	err = s.db.QueryRow(ctx, database.InsertRestaurantSQL,
		r.ID, r.OwnerID, r.Name, r.Description, r.Cuisine,
		r.Address.Street, r.Address.City, r.Address.State, r.Address.Zip, r.Address.Country,
		r.Phone, r.Email, hours,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	return r, nil
}

// Update replaces a restaurant's profile. Only the owner or an admin may
// update.
func (s *Service) Update(ctx context.Context, identity models.Identity, id uuid.UUID, req *models.UpsertRestaurantRequest) (*models.Restaurant, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resource := access.Resource{Kind: access.KindRestaurant, OwnerID: existing.OwnerID}
	if !access.CanAccess(identity, resource, access.ActionUpdate) {
		return nil, models.ErrForbidden
	}

	hours, err := json.Marshal(req.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal opening hours: %w", err)
	}

	_, err = s.db.Exec(ctx, database.UpdateRestaurantSQL,
		req.Name, req.Description, req.Cuisine,
		req.Address.Street, req.Address.City, req.Address.State, req.Address.Zip, req.Address.Country,
		req.Phone, req.Email, hours, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a restaurant. Only the owner or an admin may delete.
func (s *Service) Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	resource := access.Resource{Kind: access.KindRestaurant, OwnerID: existing.OwnerID}
	if !access.CanAccess(identity, resource, access.ActionDelete) {
		return models.ErrForbidden
	}

	if _, err := s.db.Exec(ctx, database.DeleteRestaurantSQL, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

// scanRestaurant scans one restaurant row including its jsonb opening hours.
func scanRestaurant(row pgx.Row) (*models.Restaurant, error) {
	var r models.Restaurant
	var hours []byte

	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Name, &r.Description, &r.Cuisine,
		&r.Address.Street, &r.Address.City, &r.Address.State, &r.Address.Zip, &r.Address.Country,
		&r.Phone, &r.Email, &hours, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &r.OpeningHours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal opening hours: %w", err)
		}
	}

	return &r, nil
}
