package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"shop_automation/config"
	"shop_automation/domain/entities"
)

// ErrProductionGuard is returned when a destructive fixture operation targets
// the production environment.
var ErrProductionGuard = errors.New("destructive operation refused against production")

// DBPool is the subset of pgxpool.Pool the manager needs. Tests substitute a
// pgxmock pool.
type DBPool interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// UserRow mirrors a row of the users fixture table.
type UserRow struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Status    string
}

// ProductRow mirrors a row of the products fixture table.
type ProductRow struct {
	ID            int64
	Name          string
	Description   string
	Price         float64
	StockQuantity int
	Category      string
	Brand         string
}

// Manager seeds and verifies test data directly in the application database.
type Manager struct {
	pool DBPool
	cfg  *config.Config
	log  *logrus.Logger
}

// Connect opens a pgx connection pool against the configured database.
func Connect(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Manager, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Infof("connected to database %s on %s", cfg.DBName, cfg.DBHost)
	return NewManager(pool, cfg, log), nil
}

func NewManager(pool DBPool, cfg *config.Config, log *logrus.Logger) *Manager {
	return &Manager{pool: pool, cfg: cfg, log: log}
}

func (m *Manager) Close() {
	m.pool.Close()
}

// HashPassword matches the application's SHA-256 password storage.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CreateUser inserts a user fixture and returns its generated id.
func (m *Manager) CreateUser(ctx context.Context, user entities.User) (int64, error) {
	const query = `
		INSERT INTO users (first_name, last_name, email, password_hash, phone, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := m.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		HashPassword(user.Password),
		user.Phone,
		time.Now(),
		"active",
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	m.log.Infof("user created with ID: %d", id)
	return id, nil
}

// GetUserByEmail returns the user fixture with the given email, or nil when
// none exists.
func (m *Manager) GetUserByEmail(ctx context.Context, email string) (*UserRow, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, status
		FROM users WHERE email = $1`

	var row UserRow
	err := m.pool.QueryRow(ctx, query, email).Scan(
		&row.ID, &row.FirstName, &row.LastName, &row.Email, &row.Phone, &row.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &row, nil
}

// UpdateUser applies the given column/value pairs to one user. A password
// value is hashed and stored as password_hash.
func (m *Manager) UpdateUser(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	query := "UPDATE users SET "
	args := make([]any, 0, len(fields)+1)
	i := 1
	for field, value := range fields {
		if field == "password" {
			field = "password_hash"
			value = HashPassword(fmt.Sprint(value))
		}
		if i > 1 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", field, i)
		args = append(args, value)
		i++
	}
	query += fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, userID)

	tag, err := m.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	m.log.Infof("updated %d user record(s)", tag.RowsAffected())
	return tag.RowsAffected(), nil
}

// DeleteUser removes a user fixture. Refused against production.
func (m *Manager) DeleteUser(ctx context.Context, userID int64) (int64, error) {
	if m.cfg.IsProduction() {
		return 0, ErrProductionGuard
	}
	tag, err := m.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	m.log.Infof("deleted %d user record(s)", tag.RowsAffected())
	return tag.RowsAffected(), nil
}

// CreateProduct inserts a product fixture and returns its generated id.
func (m *Manager) CreateProduct(ctx context.Context, product ProductRow) (int64, error) {
	const query = `
		INSERT INTO products (name, description, price, stock_quantity, category, brand, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := m.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.Category,
		product.Brand,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	m.log.Infof("product created with ID: %d", id)
	return id, nil
}

// GetProductByName returns the product fixture with the given name, or nil
// when none exists.
func (m *Manager) GetProductByName(ctx context.Context, name string) (*ProductRow, error) {
	const query = `
		SELECT id, name, description, price, stock_quantity, category, brand
		FROM products WHERE name = $1`

	var row ProductRow
	err := m.pool.QueryRow(ctx, query, name).Scan(
		&row.ID, &row.Name, &row.Description, &row.Price,
		&row.StockQuantity, &row.Category, &row.Brand,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &row, nil
}

// UpdateProductStock sets the stock level for a named product.
func (m *Manager) UpdateProductStock(ctx context.Context, productName string, stock int) (int64, error) {
	tag, err := m.pool.Exec(ctx,
		"UPDATE products SET stock_quantity = $1 WHERE name = $2", stock, productName)
	if err != nil {
		return 0, fmt.Errorf("update product stock: %w", err)
	}
	m.log.Infof("updated stock for %s to %d", productName, stock)
	return tag.RowsAffected(), nil
}

// CreateOrder inserts an order fixture and returns its generated row id.
func (m *Manager) CreateOrder(ctx context.Context, order entities.Order) (int64, error) {
	const query = `
		INSERT INTO orders (order_id, user_id, status, payment_status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := m.pool.QueryRow(ctx, query,
		order.OrderID,
		order.UserID,
		order.Status,
		order.PaymentStatus,
		order.TotalAmount,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	m.log.Infof("order created with ID: %d", id)
	return id, nil
}

// GetOrderByID returns the order with the given public order identifier, or
// nil when none exists.
func (m *Manager) GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error) {
	const query = `
		SELECT order_id, user_id, status, payment_status, total_amount
		FROM orders WHERE order_id = $1`

	var order entities.Order
	err := m.pool.QueryRow(ctx, query, orderID).Scan(
		&order.OrderID, &order.UserID, &order.Status,
		&order.PaymentStatus, &order.TotalAmount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order by ID: %w", err)
	}
	return &order, nil
}

// CleanupTestData removes recent test orders and obvious test accounts, and
// restocks test products. Refused against production.
func (m *Manager) CleanupTestData(ctx context.Context) error {
	if m.cfg.IsProduction() {
		return ErrProductionGuard
	}

	statements := []string{
		`DELETE FROM orders WHERE created_at > NOW() - INTERVAL '1 day'`,
		`DELETE FROM users WHERE email LIKE '%test%' OR email LIKE '%example%'`,
		`UPDATE products SET stock_quantity = 100 WHERE name LIKE '%test%'`,
	}
	for _, stmt := range statements {
		if _, err := m.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("cleanup test data: %w", err)
		}
	}
	m.log.Info("test data cleanup completed")
	return nil
}
