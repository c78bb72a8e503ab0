// Package validator provides the custom validation rules shared by Gin's
// binding engine and snapshot hydration.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// New returns a validator configured with the custom rules, using the
// "validate" struct tag.
func New() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

// RegisterOn installs the custom rules on v. Decimal amounts are exposed to
// the validator as float64, so numeric tags such as gte=0 and gt=0 apply to them.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("sale_type", validateSaleType)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("party_type", validatePartyType)
	_ = v.RegisterValidation("expense_category", validateExpenseCategory)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateSaleType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).IsSale()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validatePartyType(fl validator.FieldLevel) bool {
	switch models.PartyType(fl.Field().String()) {
	case models.PartyTypeCustomer, models.PartyTypeSupplier:
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.ExpenseCategory(fl.Field().String()).Valid()
}
