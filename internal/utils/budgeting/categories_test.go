package budgeting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

func TestMapTransactionCategory_ExactCategoryWins(t *testing.T) {
	// Exact raw category beats a conflicting merchant keyword.
	got := MapTransactionCategory("fuel", "Zomato", "")
	assert.Equal(t, domain.CategoryFuel, got)
}

func TestMapTransactionCategory_Aliases(t *testing.T) {
	assert.Equal(t, domain.CategoryFood, MapTransactionCategory("groceries", "", ""))
	assert.Equal(t, domain.CategoryFuel, MapTransactionCategory("Petrol", "", ""))
	assert.Equal(t, domain.CategorySendHome, MapTransactionCategory("family", "", ""))
	assert.Equal(t, domain.CategoryRecharge, MapTransactionCategory("mobile", "", ""))
}

func TestMapTransactionCategory_MerchantKeywords(t *testing.T) {
	cases := []struct {
		merchant string
		want     domain.BudgetCategory
	}{
		{"Swiggy Instamart", domain.CategoryFood},
		{"Indian Oil Petrol Pump", domain.CategoryFuel},
		{"Uber India", domain.CategoryTransport},
		{"Jio Prepaid", domain.CategoryRecharge},
		{"PVR Cinemas", domain.CategoryEntertainment},
		{"Apollo Pharmacy", domain.CategoryMedical},
	}
	for _, tc := range cases {
		got := MapTransactionCategory("gig_expense", tc.merchant, "")
		assert.Equal(t, tc.want, got, "merchant %q", tc.merchant)
	}
}

func TestMapTransactionCategory_NotesFallback(t *testing.T) {
	// Merchant has no signal, notes do.
	got := MapTransactionCategory("other", "QR 883921", "netflix monthly plan")
	assert.Equal(t, domain.CategoryEntertainment, got)
}

func TestMapTransactionCategory_MerchantBeatsNotes(t *testing.T) {
	got := MapTransactionCategory("other", "Dosa Plaza", "paid before movie")
	assert.Equal(t, domain.CategoryFood, got)
}

func TestMapTransactionCategory_Closure(t *testing.T) {
	valid := make(map[domain.BudgetCategory]bool, len(domain.BudgetCategories))
	for _, c := range domain.BudgetCategories {
		valid[c] = true
	}

	inputs := []struct{ raw, merchant, notes string }{
		{"", "", ""},
		{"gig_payout", "Swiggy Delivery Partner", "weekly payout"},
		{"???", "12345", "!!!"},
		{"FOOD", "", ""},
		{"unknown", "Some Random Shop", "no keywords here at all"},
	}
	for _, in := range inputs {
		got := MapTransactionCategory(in.raw, in.merchant, in.notes)
		assert.True(t, valid[got], "input %+v mapped to %q", in, got)
	}
}

func TestMapTransactionCategory_FallbackMiscellaneous(t *testing.T) {
	got := MapTransactionCategory("unknown", "Corner Shop", "bought something")
	assert.Equal(t, domain.CategoryMiscellaneous, got)
}
