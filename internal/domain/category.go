// internal/domain/category.go
package domain

import "time"

// CategoryType classifies a category as income or expense.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the category type is one of the known values.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a transaction category. Default categories are seeded at
// user onboarding and can never be edited or deleted.
type Category struct {
	ID        int64        `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	UserID    string       `db:"user_id" json:"user_id"`       // Identity provider UID
	Name      string       `db:"name" json:"name"`             // Unique per (user, name, type)
	Type      CategoryType `db:"type" json:"type"`             // income or expense
	Icon      *string      `db:"icon" json:"icon"`             // Optional icon identifier
	IsDefault bool         `db:"is_default" json:"is_default"` // System-seeded vs user-created
	CreatedAt time.Time    `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewCategory creates a new user-created Category instance.
func NewCategory(userID, name string, categoryType CategoryType, icon *string) *Category {
	return &Category{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Icon:      icon,
		IsDefault: false,
		CreatedAt: time.Now().UTC(),
	}
}
