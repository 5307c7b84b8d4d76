package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/pagination"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNameTaken = errors.New("product with this name already exists")
)

// ProductFilter holds optional, AND-combined listing constraints. A nil
// field imposes no constraint. Name matches as a case-insensitive substring.
type ProductFilter struct {
	Name       *string
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID *int64
	OwnerID    *int64
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindPage(ctx context.Context, filter ProductFilter, page pagination.PageRequest) ([]*domain.Product, int, error)
	FindSlice(ctx context.Context, page pagination.PageRequest) ([]*domain.Product, bool, error)
}

// sortColumns maps whitelisted sort fields to their SQL columns. Every listing
// query joins the owner, so owner fields are sortable too.
var sortColumns = map[string]string{
	"id":          "p.id",
	"name":        "p.name",
	"price":       "p.price",
	"createdAt":   "p.created_at",
	"updatedAt":   "p.updated_at",
	"owner.name":  "u.name",
	"owner.email": "u.email",
}

const productColumns = `p.id, p.name, p.description, p.price, p.created_at, p.updated_at,
		       u.id, u.name, u.email`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product and its category links in one transaction.
// The id and timestamps are assigned by the database.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, description, price, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Owner.ID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "products_name_key") {
			return ErrProductNameTaken
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := replaceCategoryLinks(ctx, tx, product.ID, product.Categories); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product creation: %w", err)
	}

	return nil
}

// Update persists a product in place and replaces its category links
// wholesale. The owner column is never touched.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = tx.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrProductNotFound
		}
		if isUniqueViolation(err, "products_name_key") {
			return ErrProductNameTaken
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}

	if err := replaceCategoryLinks(ctx, tx, product.ID, product.Categories); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	return nil
}

// Delete removes a product and its category links
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product with its owner and categories
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	if err := r.attachCategories(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

// ExistsByName reports whether a product with the given name exists
func (r *productRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return exists, nil
}

// FindAll retrieves every product in store-default order
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN users u ON u.id = p.owner_id
		ORDER BY p.id ASC
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachCategories(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// FindPage retrieves one page of products matching the filter, plus the total
// match count. All filter constraints are AND-combined.
func (r *productRepository) FindPage(ctx context.Context, filter ProductFilter, page pagination.PageRequest) ([]*domain.Product, int, error) {
	whereClause, args := buildFilterClause(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM products p
		JOIN users u ON u.id = p.owner_id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN users u ON u.id = p.owner_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, orderByClause(page.Sort), len(args)+1, len(args)+2)

	args = append(args, page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachCategories(ctx, products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindSlice retrieves one page plus a has-next flag without counting the
// total. One extra row is fetched to decide whether a next page exists.
func (r *productRepository) FindSlice(ctx context.Context, page pagination.PageRequest) ([]*domain.Product, bool, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN users u ON u.id = p.owner_id
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, productColumns, orderByClause(page.Sort))

	rows, err := r.db.QueryContext(ctx, query, page.Limit()+1, page.Offset())
	if err != nil {
		return nil, false, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, false, err
	}

	hasNext := len(products) > page.Limit()
	if hasNext {
		products = products[:page.Limit()]
	}

	if err := r.attachCategories(ctx, products); err != nil {
		return nil, false, err
	}

	return products, hasNext, nil
}

// buildFilterClause assembles the parameterized WHERE clause for a filter.
func buildFilterClause(filter ProductFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("p.owner_id = $%d", len(args)))
	}
	if filter.Name != nil && strings.TrimSpace(*filter.Name) != "" {
		args = append(args, "%"+*filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderByClause renders validated sort orders as SQL. Fields were already
// checked against the whitelist, so unknown fields cannot reach here; the
// map lookup is a safety net against injection all the same.
func orderByClause(orders []pagination.Order) string {
	clauses := make([]string, 0, len(orders))
	for _, order := range orders {
		column, ok := sortColumns[order.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		clauses = append(clauses, column+" "+direction)
	}
	if len(clauses) == 0 {
		return "p.id ASC"
	}
	return strings.Join(clauses, ", ")
}

func replaceCategoryLinks(ctx context.Context, tx *sql.Tx, productID int64, categories []domain.Category) error {
	for _, category := range categories {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID,
			category.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to link product category: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{Categories: []domain.Category{}}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Owner.ID,
		&product.Owner.Name,
		&product.Owner.Email,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// attachCategories loads the category sets for the given products in one
// query.
func (r *productRepository) attachCategories(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*domain.Product, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
		byID[product.ID] = product
	}

	query := `
		SELECT pc.product_id, c.id, c.name, c.description, c.created_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		category := domain.Category{}
		err := rows.Scan(&productID, &category.ID, &category.Name, &category.Description, &category.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan product category: %w", err)
		}
		if product, ok := byID[productID]; ok {
			product.Categories = append(product.Categories, category)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating product categories: %w", err)
	}

	return nil
}
