package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"food-preorder/internal/models"
)

func TestCanAccess(t *testing.T) {
	owner := uuid.New()
	customer := uuid.New()
	stranger := uuid.New()

	admin := models.Identity{AccountID: uuid.New(), Role: models.RoleAdmin}
	ownerIdentity := models.Identity{AccountID: owner, Role: models.RoleRestaurant}
	otherOwner := models.Identity{AccountID: stranger, Role: models.RoleRestaurant}
	customerIdentity := models.Identity{AccountID: customer, Role: models.RoleCustomer}
	otherCustomer := models.Identity{AccountID: stranger, Role: models.RoleCustomer}

	restaurant := Resource{Kind: KindRestaurant, OwnerID: owner}
	menuItem := Resource{Kind: KindMenuItem, OwnerID: owner}
	order := Resource{Kind: KindOrder, OwnerID: owner, CustomerID: customer}

	tests := []struct {
		name     string
		identity models.Identity
		resource Resource
		action   Action
		want     bool
	}{
		{"admin may do anything", admin, order, ActionDelete, true},
		{"admin updates any restaurant", admin, restaurant, ActionUpdate, true},

		{"anyone reads restaurants", otherCustomer, restaurant, ActionRead, true},
		{"anyone reads menu items", otherCustomer, menuItem, ActionRead, true},

		{"owner updates own restaurant", ownerIdentity, restaurant, ActionUpdate, true},
		{"owner deletes own restaurant", ownerIdentity, restaurant, ActionDelete, true},
		{"other owner cannot update restaurant", otherOwner, restaurant, ActionUpdate, false},
		{"customer cannot create restaurant", customerIdentity, restaurant, ActionCreate, false},
		{"restaurant role creates restaurants", otherOwner, Resource{Kind: KindRestaurant}, ActionCreate, true},

		{"owner updates own menu item", ownerIdentity, menuItem, ActionUpdate, true},
		{"other owner cannot delete menu item", otherOwner, menuItem, ActionDelete, false},

		{"customer reads own order", customerIdentity, order, ActionRead, true},
		{"customer cancels own order", customerIdentity, order, ActionCancel, true},
		{"customer cannot transition own order", customerIdentity, order, ActionUpdateStatus, false},
		{"other customer cannot read order", otherCustomer, order, ActionRead, false},
		{"other customer cannot cancel order", otherCustomer, order, ActionCancel, false},

		{"fulfilling owner reads order", ownerIdentity, order, ActionRead, true},
		{"fulfilling owner transitions order", ownerIdentity, order, ActionUpdateStatus, true},
		{"fulfilling owner cancels order", ownerIdentity, order, ActionCancel, true},
		{"other owner cannot read order", otherOwner, order, ActionRead, false},
		{"other owner cannot transition order", otherOwner, order, ActionUpdateStatus, false},

		{"customer creates order for self", customerIdentity, Resource{Kind: KindOrder, CustomerID: customer}, ActionCreate, true},
		{"customer cannot create order for someone else", customerIdentity, Resource{Kind: KindOrder, CustomerID: stranger}, ActionCreate, false},
		{"restaurant role cannot create orders", ownerIdentity, Resource{Kind: KindOrder, OwnerID: owner}, ActionCreate, false},

		{"unknown resource kind denied", customerIdentity, Resource{Kind: Kind("invoice")}, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.identity, tt.resource, tt.action))
		})
	}
}
