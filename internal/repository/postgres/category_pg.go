// internal/repository/postgres/category_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository implements repository.CategoryRepository for PostgreSQL.
type CategoryRepository struct {
	// Stateless: methods receive a DBExecutor directly
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepository{}
}

const categoryColumns = `id, user_id, name, type, icon, is_default, created_at`

// CreateCategory inserts a new category into the database using the provided DBExecutor.
func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `INSERT INTO categories (user_id, name, type, icon, is_default, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		category.UserID,
		category.Name,
		category.Type,
		category.Icon,
		category.IsDefault,
		category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategoryByIDAndUser retrieves a category by ID scoped to its owner using the provided DBExecutor.
func (r *CategoryRepository) GetCategoryByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Category, error) {
	var category domain.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &category, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %d for user %s: %w", id, userID, err)
	}
	return &category, nil
}

// GetCategoryByNameAndType retrieves a category by owner, name, and type using the provided DBExecutor.
// The name comparison is case-sensitive.
func (r *CategoryRepository) GetCategoryByNameAndType(ctx context.Context, q repository.DBExecutor, userID, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	var category domain.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND name = $2 AND type = $3`
	err := q.GetContext(ctx, &category, query, userID, name, categoryType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category '%s' (%s) for user %s: %w", name, categoryType, userID, err)
	}
	return &category, nil
}

// ListCategoriesByUser retrieves all of a user's categories ordered by type then name.
func (r *CategoryRepository) ListCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Category, error) {
	categories := []domain.Category{}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY type, name`
	err := q.SelectContext(ctx, &categories, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for user %s: %w", userID, err)
	}
	return categories, nil
}

// UpdateCategory persists mutable category fields using the provided DBExecutor.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `UPDATE categories SET name = $1, icon = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, category.Name, category.Icon, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating category %d: %w", category.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category using the provided DBExecutor. Transactions
// referencing it survive with category_id set to NULL by the schema.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting category %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// CountCategoriesByUser returns how many categories a user has.
func (r *CategoryRepository) CountCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID string) (int64, error) {
	var count int64
	err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories for user %s: %w", userID, err)
	}
	return count, nil
}
