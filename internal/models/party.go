package models

import "github.com/shopspring/decimal"

// PartyType distinguishes customers from suppliers.
type PartyType string

const (
	PartyTypeCustomer PartyType = "CUSTOMER"
	PartyTypeSupplier PartyType = "SUPPLIER"
)

// PartySubType is the pricing tier of a party.
type PartySubType string

const (
	PartySubTypeRetail    PartySubType = "RETAIL"
	PartySubTypeWholesale PartySubType = "WHOLESALE"
)

// Party is a customer or supplier with a running balance. A positive balance
// is owed to the business (receivable); a negative balance is owed by the
// business (payable).
type Party struct {
	ID      string          `json:"id" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Phone   string          `json:"phone"`
	Type    PartyType       `json:"type" validate:"oneof=CUSTOMER SUPPLIER"`
	SubType PartySubType    `json:"subType" validate:"oneof=RETAIL WHOLESALE"`
	Balance decimal.Decimal `json:"balance"`
}

// IsCustomer reports whether the party buys from the business.
func (p Party) IsCustomer() bool { return p.Type == PartyTypeCustomer }

// IsSupplier reports whether the party sells to the business.
func (p Party) IsSupplier() bool { return p.Type == PartyTypeSupplier }
