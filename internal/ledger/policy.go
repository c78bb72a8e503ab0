package ledger

import "mughal/internal/models"

// Policy holds the business rules callers enforce before Apply.
type Policy struct {
	// AllowNegativeStock lets a sale take stock below zero (back-orders).
	AllowNegativeStock bool
}

// DefaultPolicy is permissive: sales may drive stock negative.
func DefaultPolicy() Policy {
	return Policy{AllowNegativeStock: true}
}

// Shortfall describes a product a sale would take below zero.
type Shortfall struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// CheckStock returns the products tx would oversell under the policy.
// Only sales are checked; quantities of repeated lines are summed.
func (p Policy) CheckStock(snap models.Snapshot, tx models.Transaction) []Shortfall {
	if p.AllowNegativeStock || !tx.IsSale() {
		return nil
	}

	requested := make(map[string]int)
	var order []string
	for _, item := range tx.Items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	var shortfalls []Shortfall
	for _, id := range order {
		product, ok := snap.FindProduct(id)
		if !ok {
			continue
		}
		if requested[id] > product.Stock {
			shortfalls = append(shortfalls, Shortfall{
				ProductID: id,
				Name:      product.Name,
				Requested: requested[id],
				Available: product.Stock,
			})
		}
	}
	return shortfalls
}
