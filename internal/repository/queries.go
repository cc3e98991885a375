package repository

// Product queries
const (
	insertProductSQL = `
		INSERT INTO products (name, price)
		VALUES ($1, $2)
		RETURNING id, price::float8, created_at, updated_at`

	listProductsSQL = `
		SELECT id, name, price::float8, created_at, updated_at
		FROM products
		WHERE name ILIKE $1
		ORDER BY name, id`

	getProductSQL = `
		SELECT id, name, price::float8, created_at, updated_at
		FROM products WHERE id = $1`

	updateProductSQL = `
		UPDATE products SET name = $1, price = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING price::float8, created_at, updated_at`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

// Table queries
const (
	insertTableSQL = `
		INSERT INTO tables (table_number)
		VALUES ($1)
		RETURNING id`

	listTablesSQL = `
		SELECT id, table_number
		FROM tables
		ORDER BY table_number`

	getTableSQL = `SELECT id, table_number FROM tables WHERE id = $1`
)

// Table session queries
const (
	insertSessionSQL = `
		INSERT INTO tables_sessions (table_id, opened_at)
		VALUES ($1, $2)
		RETURNING id`

	getSessionSQL = `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions WHERE id = $1`

	getOpenSessionByTableSQL = `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions
		WHERE table_id = $1 AND closed_at IS NULL
		ORDER BY opened_at DESC
		LIMIT 1`

	listSessionsSQL = `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions
		ORDER BY closed_at ASC NULLS LAST, id`

	closeSessionSQL = `UPDATE tables_sessions SET closed_at = $1 WHERE id = $2`
)

// Order queries
const (
	insertOrderSQL = `
		INSERT INTO orders (table_session_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	listOrderLinesSQL = `
		SELECT orders.id, orders.table_session_id, orders.product_id, products.name,
			   orders.price::float8, orders.quantity,
			   (orders.price * orders.quantity)::float8 AS total,
			   orders.created_at, orders.updated_at
		FROM orders
		JOIN products ON products.id = orders.product_id
		WHERE orders.table_session_id = $1
		ORDER BY orders.created_at DESC, orders.id DESC`

	orderTotalSQL = `
		SELECT COALESCE(SUM(price * quantity), 0)::float8 AS total,
			   COALESCE(SUM(quantity), 0)::bigint AS quantity
		FROM orders
		WHERE table_session_id = $1`
)
