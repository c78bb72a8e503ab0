package models

// Snapshot is the complete business state: catalogue, parties and the
// most-recent-first histories of transactions, expenses and logins.
type Snapshot struct {
	CurrentUser  *User         `json:"currentUser"`
	Products     []Product     `json:"products" validate:"dive"`
	Parties      []Party       `json:"parties" validate:"dive"`
	Transactions []Transaction `json:"transactions" validate:"dive"`
	Expenses     []Expense     `json:"expenses" validate:"dive"`
	LoginLogs    []LoginEvent  `json:"loginLogs" validate:"max=50,dive"`
}

// Clone returns a deep copy of s. Slices in the copy are never nil.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Products:     append(make([]Product, 0, len(s.Products)), s.Products...),
		Parties:      append(make([]Party, 0, len(s.Parties)), s.Parties...),
		Transactions: make([]Transaction, 0, len(s.Transactions)),
		Expenses:     append(make([]Expense, 0, len(s.Expenses)), s.Expenses...),
		LoginLogs:    append(make([]LoginEvent, 0, len(s.LoginLogs)), s.LoginLogs...),
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		c.CurrentUser = &u
	}
	for _, tx := range s.Transactions {
		c.Transactions = append(c.Transactions, tx.Clone())
	}
	return c
}

// FindProduct returns the product with the given id.
func (s Snapshot) FindProduct(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindParty returns the party with the given id.
func (s Snapshot) FindParty(id string) (Party, bool) {
	for _, p := range s.Parties {
		if p.ID == id {
			return p, true
		}
	}
	return Party{}, false
}

// FindTransaction returns the transaction with the given id.
func (s Snapshot) FindTransaction(id string) (Transaction, bool) {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}
