package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"plush-store/models"
)

var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, name, price, category, subcategory, images, created_at`

// ProductRepository is the catalog query facade over Postgres. Listing
// queries order by creation time descending so new arrivals come first.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := models.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListByCategory filters on category and subcategory; a nil argument
// leaves that dimension unfiltered.
func (r *ProductRepository) ListByCategory(ctx context.Context, category, subcategory *string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	paramIndex := 1

	if category != nil {
		query += fmt.Sprintf(" AND category = $%d", paramIndex)
		args = append(args, *category)
		paramIndex++
	}
	if subcategory != nil {
		query += fmt.Sprintf(" AND subcategory = $%d", paramIndex)
		args = append(args, *subcategory)
		paramIndex++
	}
	query += " ORDER BY created_at DESC"

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Search matches the term as a case-insensitive substring of the product
// name. A blank term behaves as ListAll.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return r.ListAll(ctx)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE $1 ORDER BY created_at DESC`

	rows, err := models.DB.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := models.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Subcategory, &p.Images, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := models.DB.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

func (r *ProductRepository) ListSubcategories(ctx context.Context, category string) ([]string, error) {
	query := `SELECT DISTINCT subcategory FROM products
	          WHERE category = $1 AND subcategory IS NOT NULL ORDER BY subcategory`

	rows, err := models.DB.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.CreatedAt = time.Now()

	query := `INSERT INTO products (id, name, price, category, subcategory, images, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := models.DB.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Category,
		product.Subcategory, product.Images, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET name = $1, price = $2, category = $3, subcategory = $4, images = $5
	          WHERE id = $6`
	tag, err := models.DB.Exec(ctx, query,
		product.Name, product.Price, product.Category, product.Subcategory,
		product.Images, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := models.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Subcategory, &p.Images, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
