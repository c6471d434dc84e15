// Package access holds the authorization predicate mapping an identity and
// role to permitted operations on restaurants, menu items and orders.
// Default is deny: anything not explicitly allowed below is forbidden.
package access

import (
	"github.com/google/uuid"

	"food-preorder/internal/models"
)

// Action is an operation attempted on a resource
type Action string

const (
	ActionRead         Action = "read"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionUpdateStatus Action = "update_status"
	ActionCancel       Action = "cancel"
)

// Resource describes the target of an action. Ownership fields are filled
// by the caller from already-loaded aggregates; the predicate itself never
// touches storage.
type Resource struct {
	Kind       Kind
	OwnerID    uuid.UUID // restaurant owner (restaurant, menu item, order fulfiller)
	CustomerID uuid.UUID // order customer; zero for non-order resources
}

// Kind is the type of resource an action targets
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindMenuItem   Kind = "menu_item"
	KindOrder      Kind = "order"
)

// CanAccess reports whether the identity may perform the action on the
// resource. It is a pure function of its inputs.
func CanAccess(identity models.Identity, resource Resource, action Action) bool {
	if identity.Role == models.RoleAdmin {
		return true
	}

	switch resource.Kind {
	case KindRestaurant, KindMenuItem:
		return canAccessCatalog(identity, resource, action)
	case KindOrder:
		return canAccessOrder(identity, resource, action)
	}
	return false
}

func canAccessCatalog(identity models.Identity, resource Resource, action Action) bool {
	// Catalog data is public to read.
	if action == ActionRead {
		return true
	}

	if identity.Role != models.RoleRestaurant {
		return false
	}

	switch action {
	case ActionCreate:
		return true
	case ActionUpdate, ActionDelete:
		return resource.OwnerID == identity.AccountID
	}
	return false
}

func canAccessOrder(identity models.Identity, resource Resource, action Action) bool {
	switch identity.Role {
	case models.RoleRestaurant:
		// Restaurant owners see and transition orders of their own restaurant.
		if resource.OwnerID != identity.AccountID {
			return false
		}
		switch action {
		case ActionRead, ActionUpdateStatus, ActionCancel:
			return true
		}
		return false

	case models.RoleCustomer:
		switch action {
		case ActionCreate:
			return resource.CustomerID == identity.AccountID
		case ActionRead, ActionCancel:
			// Customers see and cancel their own orders only.
			return resource.CustomerID == identity.AccountID
		}
		return false
	}
	return false
}
