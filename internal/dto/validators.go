package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// RegisterCustomValidators wires the custom binding rules into gin's
// validator engine. Called once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("budgetcategory", func(fl validator.FieldLevel) bool {
		value := domain.BudgetCategory(fl.Field().String())
		for _, c := range domain.BudgetCategories {
			if value == c {
				return true
			}
		}
		return false
	})
}
