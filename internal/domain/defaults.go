// internal/domain/defaults.go
package domain

// DefaultCategorySeed describes one system-seeded category.
type DefaultCategorySeed struct {
	Name string
	Icon string
}

// Default categories created for every new user at onboarding. These are marked
// is_default and are immutable afterwards.
var (
	DefaultIncomeCategories = []DefaultCategorySeed{
		{Name: "Salary", Icon: "💰"},
		{Name: "Bonus", Icon: "🎁"},
		{Name: "Investment", Icon: "📈"},
		{Name: "Business", Icon: "💼"},
		{Name: "Freelance", Icon: "💻"},
		{Name: "Gift", Icon: "🎉"},
		{Name: "Other", Icon: "➕"},
	}

	DefaultExpenseCategories = []DefaultCategorySeed{
		{Name: "Food & Drink", Icon: "🍔"},
		{Name: "Transport", Icon: "🚗"},
		{Name: "Shopping", Icon: "🛒"},
		{Name: "Entertainment", Icon: "🎬"},
		{Name: "Health", Icon: "🏥"},
		{Name: "Education", Icon: "📚"},
		{Name: "Bills", Icon: "📄"},
		{Name: "Household", Icon: "🏠"},
		{Name: "Clothing", Icon: "👕"},
		{Name: "Beauty", Icon: "💄"},
		{Name: "Sports", Icon: "⚽"},
		{Name: "Gifts & Donations", Icon: "🎁"},
		{Name: "Other", Icon: "➕"},
	}
)

// Default wallet created for every new user at onboarding.
const (
	DefaultWalletName  = "Main Wallet"
	DefaultWalletColor = "#3b82f6"
)
