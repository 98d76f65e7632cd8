// internal/repository/category_repo.go
package repository

import (
	"context"

	"finledger/internal/domain"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// CreateCategory adds a new category to the database using the provided DBExecutor.
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// GetCategoryByIDAndUser retrieves a category by ID scoped to its owner.
	GetCategoryByIDAndUser(ctx context.Context, q DBExecutor, id int64, userID string) (*domain.Category, error)
	// GetCategoryByNameAndType retrieves a category by owner, name, and type, for
	// uniqueness checks. The name match is case-sensitive.
	GetCategoryByNameAndType(ctx context.Context, q DBExecutor, userID, name string, categoryType domain.CategoryType) (*domain.Category, error)
	// ListCategoriesByUser retrieves all of a user's categories ordered by type then name.
	ListCategoriesByUser(ctx context.Context, q DBExecutor, userID string) ([]domain.Category, error)
	// UpdateCategory persists mutable category fields (name, icon).
	UpdateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// DeleteCategory removes a category. Transactions referencing it keep existing
	// with their category_id set to NULL by the schema's ON DELETE SET NULL.
	DeleteCategory(ctx context.Context, q DBExecutor, id int64) error
	// CountCategoriesByUser returns how many categories a user has, used to make
	// onboarding idempotent.
	CountCategoriesByUser(ctx context.Context, q DBExecutor, userID string) (int64, error)
}
