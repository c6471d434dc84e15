package database

// Account queries
const (
	InsertAccountSQL = `
		INSERT INTO accounts (id, name, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	GetAccountByEmailSQL = `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM accounts WHERE email = $1`

	GetAccountByIDSQL = `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM accounts WHERE id = $1`
)

// Restaurant queries
const (
	InsertRestaurantSQL = `
		INSERT INTO restaurants (id, owner_id, name, description, cuisine,
			street, city, state, zip, country, phone, email, opening_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	GetRestaurantByIDSQL = `
		SELECT id, owner_id, name, description, cuisine,
			   street, city, state, zip, country, phone, email, opening_hours, created_at
		FROM restaurants WHERE id = $1`

	ListRestaurantsSQL = `
		SELECT id, owner_id, name, description, cuisine,
			   street, city, state, zip, country, phone, email, opening_hours, created_at
		FROM restaurants
		ORDER BY created_at DESC`

	UpdateRestaurantSQL = `
		UPDATE restaurants SET name = $1, description = $2, cuisine = $3,
			street = $4, city = $5, state = $6, zip = $7, country = $8,
			phone = $9, email = $10, opening_hours = $11
		WHERE id = $12`

	DeleteRestaurantSQL = `
		DELETE FROM restaurants WHERE id = $1`

	GetRestaurantOwnerSQL = `
		SELECT owner_id FROM restaurants WHERE id = $1`
)

// Menu item queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, category,
			is_vegetarian, is_vegan, is_gluten_free, preparation_time, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	GetMenuItemByIDSQL = `
		SELECT id, restaurant_id, name, description, price, category,
			   is_vegetarian, is_vegan, is_gluten_free, preparation_time, is_available, created_at
		FROM menu_items WHERE id = $1`

	ListMenuItemsByRestaurantSQL = `
		SELECT id, restaurant_id, name, description, price, category,
			   is_vegetarian, is_vegan, is_gluten_free, preparation_time, is_available, created_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name`

	ListMenuItemsSQL = `
		SELECT id, restaurant_id, name, description, price, category,
			   is_vegetarian, is_vegan, is_gluten_free, preparation_time, is_available, created_at
		FROM menu_items
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ListMenuItemsByCategorySQL = `
		SELECT id, restaurant_id, name, description, price, category,
			   is_vegetarian, is_vegan, is_gluten_free, preparation_time, is_available, created_at
		FROM menu_items
		WHERE category = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	CountMenuItemsSQL = `
		SELECT COUNT(*) FROM menu_items`

	CountMenuItemsByCategorySQL = `
		SELECT COUNT(*) FROM menu_items WHERE category = $1`

	UpdateMenuItemSQL = `
		UPDATE menu_items SET name = $1, description = $2, price = $3, category = $4,
			is_vegetarian = $5, is_vegan = $6, is_gluten_free = $7,
			preparation_time = $8, is_available = $9
		WHERE id = $10`

	DeleteMenuItemSQL = `
		DELETE FROM menu_items WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, customer_id, restaurant_id, total_amount, status,
			pickup_time, special_instructions, payment_method, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	GetOrderByIDSQL = `
		SELECT id, customer_id, restaurant_id, total_amount, status, pickup_time,
			   special_instructions, payment_method, payment_status, created_at, updated_at
		FROM orders WHERE id = $1`

	GetOrderItemsSQL = `
		SELECT menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY name`

	ListOrdersByCustomerSQL = `
		SELECT id, customer_id, restaurant_id, total_amount, status, pickup_time,
			   special_instructions, payment_method, payment_status, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	ListOrdersByRestaurantOwnerSQL = `
		SELECT o.id, o.customer_id, o.restaurant_id, o.total_amount, o.status, o.pickup_time,
			   o.special_instructions, o.payment_method, o.payment_status, o.created_at, o.updated_at
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE r.owner_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`

	ListAllOrdersSQL = `
		SELECT id, customer_id, restaurant_id, total_amount, status, pickup_time,
			   special_instructions, payment_method, payment_status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	CountOrdersByCustomerSQL = `
		SELECT COUNT(*) FROM orders WHERE customer_id = $1`

	CountOrdersByRestaurantOwnerSQL = `
		SELECT COUNT(*)
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE r.owner_id = $1`

	CountAllOrdersSQL = `
		SELECT COUNT(*) FROM orders`

	// Conditional write: the transition only lands if the status the caller
	// saw is still the current one.
	UpdateOrderStatusCASSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`

	UpdateOrderPaymentStatusSQL = `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE id = $2`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC`
)
