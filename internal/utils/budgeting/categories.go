// Package budgeting holds the pure functions behind budget aggregation:
// category mapping, risk scoring, cashflow classification and jar math.
// Nothing in here touches storage or the clock.
package budgeting

import (
	"strings"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// rawAliases maps raw ledger categories straight to a budget category.
// Exact matches win over keyword scans.
var rawAliases = map[string]domain.BudgetCategory{
	"food":          domain.CategoryFood,
	"groceries":     domain.CategoryFood,
	"fuel":          domain.CategoryFuel,
	"petrol":        domain.CategoryFuel,
	"transport":     domain.CategoryTransport,
	"travel":        domain.CategoryTransport,
	"recharge":      domain.CategoryRecharge,
	"mobile":        domain.CategoryRecharge,
	"entertainment": domain.CategoryEntertainment,
	"medical":       domain.CategoryMedical,
	"health":        domain.CategoryMedical,
	"send_home":     domain.CategorySendHome,
	"family":        domain.CategorySendHome,
	"miscellaneous": domain.CategoryMiscellaneous,
	"misc":          domain.CategoryMiscellaneous,
}

// categoryKeywords is scanned in fixed category order against merchant first,
// then notes. Substring matching, case-insensitive.
var categoryKeywords = map[domain.BudgetCategory][]string{
	domain.CategoryFood: {
		"zomato", "swiggy", "dosa", "idli", "cafe", "chai", "tea stall",
		"tiffin", "mess", "dhaba", "restaurant", "hotel", "biryani",
		"breakfast", "lunch", "dinner", "snack", "juice", "bakery",
	},
	domain.CategoryFuel: {
		"petrol", "diesel", "fuel", "hp ", "indian oil", "bharat petroleum",
		"shell", "cng",
	},
	domain.CategoryTransport: {
		"uber", "ola", "rapido", "metro", "bus", "train", "auto", "rickshaw",
		"toll", "parking", "irctc",
	},
	domain.CategoryRecharge: {
		"jio", "airtel", "vodafone", "vi ", "bsnl", "recharge", "dth",
		"broadband", "wifi", "data pack",
	},
	domain.CategoryEntertainment: {
		"netflix", "hotstar", "prime video", "spotify", "bookmyshow", "movie",
		"cinema", "pvr", "inox", "game", "cricket",
	},
	domain.CategoryMedical: {
		"pharmacy", "medical", "medicine", "chemist", "clinic", "hospital",
		"doctor", "apollo", "1mg", "pharmeasy", "lab test",
	},
	domain.CategorySendHome: {
		"send home", "home transfer", "family transfer", "remittance",
		"money transfer home", "sent to family",
	},
}

// MapTransactionCategory reduces a raw transaction to one budget category.
// Exact raw-category aliases take precedence, then case-insensitive keyword
// matches against the merchant, then the notes. It always returns a member of
// domain.BudgetCategories, falling back to miscellaneous.
func MapTransactionCategory(rawCategory, merchant, notes string) domain.BudgetCategory {
	raw := strings.ToLower(strings.TrimSpace(rawCategory))
	if mapped, ok := rawAliases[raw]; ok {
		return mapped
	}

	merchantLower := strings.ToLower(merchant)
	notesLower := strings.ToLower(notes)
	for _, category := range domain.BudgetCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(merchantLower, keyword) {
				return category
			}
		}
	}
	for _, category := range domain.BudgetCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(notesLower, keyword) {
				return category
			}
		}
	}
	return domain.CategoryMiscellaneous
}
