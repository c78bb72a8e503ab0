package models

import "github.com/shopspring/decimal"

// SeedProducts returns the starting catalogue.
func SeedProducts() []Product {
	return []Product{
		{ID: "1", SKU: "SKU001", Name: "Premium Coffee Beans (1kg)", Category: "Grocery",
			CostPrice: decimal.NewFromInt(1500), RetailPrice: decimal.NewFromInt(2250), WholesalePrice: decimal.NewFromInt(1800),
			Stock: 45, MinStock: 10},
		{ID: "2", SKU: "SKU002", Name: "Organic Almond Milk (1L)", Category: "Dairy",
			CostPrice: decimal.NewFromInt(350), RetailPrice: decimal.NewFromInt(550), WholesalePrice: decimal.NewFromInt(480),
			Stock: 120, MinStock: 20},
		{ID: "3", SKU: "SKU003", Name: "Stainless Steel Whisk", Category: "Kitchen",
			CostPrice: decimal.NewFromInt(450), RetailPrice: decimal.NewFromInt(850), WholesalePrice: decimal.NewFromInt(650),
			Stock: 15, MinStock: 5},
		{ID: "4", SKU: "SKU004", Name: "Laundry Pods (30pk)", Category: "Cleaning",
			CostPrice: decimal.NewFromInt(800), RetailPrice: decimal.NewFromInt(1450), WholesalePrice: decimal.NewFromInt(1100),
			Stock: 60, MinStock: 15},
		{ID: "5", SKU: "SKU005", Name: "Whole Grain Sourdough", Category: "Bakery",
			CostPrice: decimal.NewFromInt(200), RetailPrice: decimal.NewFromInt(450), WholesalePrice: decimal.NewFromInt(350),
			Stock: 8, MinStock: 5},
	}
}

// WalkInCustomerID identifies the default cash customer.
const WalkInCustomerID = "c1"

// SeedParties returns the starting customers and suppliers with their opening balances.
func SeedParties() []Party {
	return []Party{
		{ID: WalkInCustomerID, Name: "Walk-in Customer", Type: PartyTypeCustomer, SubType: PartySubTypeRetail,
			Balance: decimal.Zero},
		{ID: "c2", Name: "City Cafe Ltd", Phone: "555-0199", Type: PartyTypeCustomer, SubType: PartySubTypeWholesale,
			Balance: decimal.NewFromInt(45000)},
		{ID: "s1", Name: "Global Provisions Inc", Phone: "555-8822", Type: PartyTypeSupplier, SubType: PartySubTypeWholesale,
			Balance: decimal.NewFromInt(-120000)},
	}
}

// NewSeedSnapshot returns a fresh snapshot built from the fixtures, with empty
// histories and no active session.
func NewSeedSnapshot() Snapshot {
	return Snapshot{
		Products:     SeedProducts(),
		Parties:      SeedParties(),
		Transactions: []Transaction{},
		Expenses:     []Expense{},
		LoginLogs:    []LoginEvent{},
	}
}
