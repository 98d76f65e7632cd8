// internal/service/category_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
	"finledger/pkg/db"
)

// CreateCategoryInput carries the fields needed to create a category.
type CreateCategoryInput struct {
	Name string
	Type domain.CategoryType
	Icon *string
}

// UpdateCategoryInput carries the optional fields of a category update.
// The type of a category is immutable once created.
type UpdateCategoryInput struct {
	Name *string
	Icon *string
}

// CategoryService defines the interface for category management. Default
// categories (seeded at onboarding) can never be edited or deleted, protecting
// the system taxonomy from corruption. Name uniqueness is enforced per
// (user, name, type) and is case-sensitive.
type CategoryService interface {
	List(ctx context.Context, userID string) ([]domain.Category, error)
	Create(ctx context.Context, userID string, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, userID string, categoryID int64, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, userID string, categoryID int64) error
}

// categoryService implements the CategoryService interface.
type categoryService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	categoryRepo repository.CategoryRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	categoryRepo repository.CategoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) CategoryService {
	return &categoryService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		categoryRepo: categoryRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// List retrieves all of the user's categories, default and user-created.
func (s *categoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create creates a user-created category after checking the (user, name, type)
// uniqueness rule.
func (s *categoryService) Create(ctx context.Context, userID string, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", util.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("category type must be income or expense: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create category: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create category: transaction controller does not implement DBExecutor")
	}

	_, err = s.categoryRepo.GetCategoryByNameAndType(ctx, txExecutor, userID, input.Name, input.Type)
	if err == nil {
		return nil, fmt.Errorf("category with this name already exists: %w", util.ErrDuplicateEntry)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create category: failed to check existing category: %w", err)
	}

	category := domain.NewCategory(userID, input.Name, input.Type, input.Icon)
	if err := s.categoryRepo.CreateCategory(ctx, txExecutor, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create category: failed to commit transaction: %w", err)
	}

	return category, nil
}

// Update renames or re-icons a user-created category. Default categories are
// rejected regardless of ownership.
func (s *categoryService) Update(ctx context.Context, userID string, categoryID int64, input UpdateCategoryInput) (*domain.Category, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update category: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update category: transaction controller does not implement DBExecutor")
	}

	category, err := s.categoryRepo.GetCategoryByIDAndUser(ctx, txExecutor, categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("update category: failed to get category %d: %w", categoryID, err)
	}
	if category.IsDefault {
		return nil, util.ErrDefaultCategory
	}

	if input.Name != nil && *input.Name != category.Name {
		if *input.Name == "" {
			return nil, fmt.Errorf("category name is required: %w", util.ErrInvalidInput)
		}
		existing, err := s.categoryRepo.GetCategoryByNameAndType(ctx, txExecutor, userID, *input.Name, category.Type)
		if err == nil && existing.ID != categoryID {
			return nil, fmt.Errorf("category with this name already exists: %w", util.ErrDuplicateEntry)
		}
		if err != nil && !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("update category: failed to check existing category: %w", err)
		}
		category.Name = *input.Name
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}

	if err := s.categoryRepo.UpdateCategory(ctx, txExecutor, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update category: failed to commit transaction: %w", err)
	}

	return category, nil
}

// Delete removes a user-created category. Transactions that referenced it keep
// existing with a NULL category; no transaction is ever deleted here, so no
// wallet balance changes.
func (s *categoryService) Delete(ctx context.Context, userID string, categoryID int64) error {
	category, err := s.categoryRepo.GetCategoryByIDAndUser(ctx, s.dbExecutor, categoryID, userID)
	if err != nil {
		return fmt.Errorf("delete category: failed to get category %d: %w", categoryID, err)
	}
	if category.IsDefault {
		return util.ErrDefaultCategory
	}

	if err := s.categoryRepo.DeleteCategory(ctx, s.dbExecutor, category.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
