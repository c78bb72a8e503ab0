package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed operating-expense labels.
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "Rent"
	ExpenseCategoryElectricity ExpenseCategory = "Electricity"
	ExpenseCategorySalaries    ExpenseCategory = "Salaries"
	ExpenseCategoryMaintenance ExpenseCategory = "Maintenance"
	ExpenseCategoryMarketing   ExpenseCategory = "Marketing"
	ExpenseCategoryOthers      ExpenseCategory = "Others"
)

// ExpenseCategories lists the categories in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryRent,
	ExpenseCategoryElectricity,
	ExpenseCategorySalaries,
	ExpenseCategoryMaintenance,
	ExpenseCategoryMarketing,
	ExpenseCategoryOthers,
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is an operating cost. It has no effect on stock or party balances.
type Expense struct {
	ID          string          `json:"id" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Category    ExpenseCategory `json:"category" validate:"expense_category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

// Label is the description, or the category when no description was given.
func (e Expense) Label() string {
	if e.Description != "" {
		return e.Description
	}
	return string(e.Category)
}
