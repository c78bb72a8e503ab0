// Package ledger applies transactions to a snapshot.
//
// Apply is pure and total: it never fails and never mutates its input. Stock
// moves per line item and the referenced party's running balance moves once
// per transaction:
//
//	SALE_RETAIL, SALE_WHOLESALE   stock -= qty   balance += tx.Balance
//	PURCHASE                      stock += qty   balance -= tx.Balance
//	RETURN                        stock += qty   balance -= tx.Total
//
// Lines that reference unknown products and transactions that reference an
// unknown party degrade to no-ops for that part of the update. Business rules
// such as sufficient stock are checked by callers through Policy.
package ledger

import (
	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

// StockDelta returns the signed stock change for qty units moved by a
// transaction of type t.
func StockDelta(t models.TransactionType, qty int) int {
	switch t {
	case models.TransactionTypeSaleRetail, models.TransactionTypeSaleWholesale:
		return -qty
	case models.TransactionTypePurchase, models.TransactionTypeReturn:
		return qty
	}
	return 0
}

// BalanceDelta returns the signed change tx makes to its party's balance.
func BalanceDelta(tx models.Transaction) decimal.Decimal {
	switch tx.Type {
	case models.TransactionTypeSaleRetail, models.TransactionTypeSaleWholesale:
		return tx.Balance
	case models.TransactionTypePurchase:
		return tx.Balance.Neg()
	case models.TransactionTypeReturn:
		return tx.Total.Neg()
	}
	return decimal.Zero
}

// Apply returns the snapshot that results from recording tx against snap.
func Apply(snap models.Snapshot, tx models.Transaction) models.Snapshot {
	next := snap

	next.Products = make([]models.Product, len(snap.Products))
	copy(next.Products, snap.Products)
	index := make(map[string]int, len(next.Products))
	for i, p := range next.Products {
		index[p.ID] = i
	}
	for _, item := range tx.Items {
		if i, ok := index[item.ProductID]; ok {
			next.Products[i].Stock += StockDelta(tx.Type, item.Quantity)
		}
	}

	next.Parties = make([]models.Party, len(snap.Parties))
	copy(next.Parties, snap.Parties)
	if tx.PartyID != "" {
		delta := BalanceDelta(tx)
		for i := range next.Parties {
			if next.Parties[i].ID == tx.PartyID {
				next.Parties[i].Balance = next.Parties[i].Balance.Add(delta)
				break
			}
		}
	}

	next.Transactions = make([]models.Transaction, 0, len(snap.Transactions)+1)
	next.Transactions = append(next.Transactions, tx.Clone())
	next.Transactions = append(next.Transactions, snap.Transactions...)

	return next
}

// ApplyExpense returns snap with e prepended to the expense history. Products
// and parties are left as they are.
func ApplyExpense(snap models.Snapshot, e models.Expense) models.Snapshot {
	next := snap
	next.Expenses = make([]models.Expense, 0, len(snap.Expenses)+1)
	next.Expenses = append(next.Expenses, e)
	next.Expenses = append(next.Expenses, snap.Expenses...)
	return next
}

// AppendLogin returns snap with ev prepended to the session log, keeping only
// the most recent models.MaxLoginEvents entries.
func AppendLogin(snap models.Snapshot, ev models.LoginEvent) models.Snapshot {
	next := snap
	keep := len(snap.LoginLogs)
	if keep > models.MaxLoginEvents-1 {
		keep = models.MaxLoginEvents - 1
	}
	next.LoginLogs = make([]models.LoginEvent, 0, keep+1)
	next.LoginLogs = append(next.LoginLogs, ev)
	next.LoginLogs = append(next.LoginLogs, snap.LoginLogs[:keep]...)
	return next
}

// ReplayBalances recomputes party balances from the opening balances plus the
// delta of every transaction in txs. Parties absent from opening start at zero.
func ReplayBalances(opening []models.Party, txs []models.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(opening))
	for _, p := range opening {
		balances[p.ID] = p.Balance
	}
	for _, tx := range txs {
		if tx.PartyID == "" {
			continue
		}
		balances[tx.PartyID] = balances[tx.PartyID].Add(BalanceDelta(tx))
	}
	return balances
}
