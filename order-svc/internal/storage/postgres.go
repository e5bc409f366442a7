package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/pricing"

	"github.com/lib/pq"
)

// ListLimit caps an order listing without a date filter.
const ListLimit = 100

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			category TEXT,
			image_url TEXT,
			has_addons BOOLEAN NOT NULL DEFAULT FALSE,
			has_variations BOOLEAN NOT NULL DEFAULT FALSE,
			addons TEXT[],
			variations TEXT[],
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_email TEXT,
			customer_phone TEXT,
			total_amount NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			order_date DATE NOT NULL,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id TEXT NOT NULL,
			item_name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price NUMERIC(10,2) NOT NULL,
			selected_addons TEXT[],
			selected_variation TEXT,
			special_instructions TEXT
		)`,
		"CREATE INDEX IF NOT EXISTS orders_order_date_idx ON orders (order_date)",
		"CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items (order_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Lookup serves the pricer. A missing row is NotFound, not an error.
func (r *PostgresRepository) Lookup(ctx context.Context, itemID string) (pricing.Lookup, error) {
	var (
		entry      pricing.CatalogEntry
		category   sql.NullString
		variations pq.StringArray
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, price, category, variations FROM menu_items WHERE id = $1",
		itemID).Scan(&entry.ID, &entry.Price, &category, &variations)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.NotFound(), nil
	}
	if err != nil {
		return pricing.Lookup{}, err
	}
	entry.Category = category.String
	entry.Variations = variations
	return pricing.Found(entry), nil
}

func (r *PostgresRepository) ListAvailableMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, ''),
		       has_addons, has_variations, addons, variations, available
		FROM menu_items
		WHERE available = TRUE
		ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var (
			item       domain.MenuItem
			addons     pq.StringArray
			variations pq.StringArray
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category, &item.ImageURL,
			&item.HasAddons, &item.HasVariations, &addons, &variations, &item.Available); err != nil {
			return nil, err
		}
		item.Addons = addons
		item.Variations = variations
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateOrder writes the header and every line in one transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, customer_phone, total_amount, status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.TotalAmount, string(order.Status), order.OrderDate).Scan(&order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, item_name, quantity, price,
			                         selected_addons, selected_variation, special_instructions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, order.ID, item.MenuItemID, item.Name, item.Quantity, item.Price,
			pq.Array(item.SelectedAddons), item.SelectedVariation, item.SpecialInstructions); err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	return tx.Commit()
}

const orderColumns = `
	SELECT o.id, o.customer_name, COALESCE(o.customer_email, ''), COALESCE(o.customer_phone, ''),
	       o.total_amount, o.status, to_char(o.order_date, 'YYYY-MM-DD'), o.created_at
	FROM orders o`

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, orderColumns+" WHERE o.id = $1", id).
		Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.TotalAmount, &order.Status, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.orderItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

// ListOrders returns the orders of one day, or the latest ListLimit orders
// when date is empty. Newest first.
func (r *PostgresRepository) ListOrders(ctx context.Context, date string) ([]domain.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = r.DB.QueryContext(ctx, orderColumns+" WHERE o.order_date = $1 ORDER BY o.created_at DESC", date)
	} else {
		rows, err = r.DB.QueryContext(ctx, orderColumns+" ORDER BY o.created_at DESC LIMIT $1", ListLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []string
	)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.TotalAmount, &order.Status, &order.OrderDate, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// orderItems prefers the current menu name and falls back to the snapshot
// taken when the order was placed.
func (r *PostgresRepository) orderItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.order_id, oi.menu_item_id, COALESCE(mi.name, oi.item_name), oi.quantity, oi.price,
		       oi.selected_addons, COALESCE(oi.selected_variation, ''), COALESCE(oi.special_instructions, '')
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id ASC`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
			addons  pq.StringArray
		)
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price,
			&addons, &item.SelectedVariation, &item.SpecialInstructions); err != nil {
			return nil, err
		}
		item.SelectedAddons = addons
		byOrder[orderID] = append(byOrder[orderID], item)
	}
	return byOrder, rows.Err()
}

// UpdateStatusIf moves an order from one status to another. It reports
// false when the order does not exist or is no longer in status from.
func (r *PostgresRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteOrder removes the order; its lines go with it through the cascade.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, id string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, id)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, id string) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", id).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

var _ pricing.Catalog = (*PostgresRepository)(nil)
