package domain

import "github.com/google/uuid"

// Budget holds a trip's cost line items. Only the items are stored;
// totals are summed by whoever displays them.
type Budget struct {
	Hotels     []Hotel     `json:"hotels"`
	Transports []Transport `json:"transports"`
	Expenses   []Expense   `json:"expenses"`
	Tours      []Tour      `json:"tours"`
}

// Hotel is a lodging booking. URL is optional.
type Hotel struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	URL   string    `json:"url,omitempty"`
	Price float64   `json:"price"`
}

// Transport is a travel leg such as a flight, train or car rental.
type Transport struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
}

// Expense is any other planned cost.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
}

// Tour is a paid guided visit or excursion.
type Tour struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
}

// NonNil returns b with every nil list replaced by an empty one, so the
// stored and serialised forms always carry [] rather than null.
func (b Budget) NonNil() Budget {
	if b.Hotels == nil {
		b.Hotels = []Hotel{}
	}
	if b.Transports == nil {
		b.Transports = []Transport{}
	}
	if b.Expenses == nil {
		b.Expenses = []Expense{}
	}
	if b.Tours == nil {
		b.Tours = []Tour{}
	}
	return b
}

// Clone deep-copies the item lists of b.
func (b Budget) Clone() Budget {
	return Budget{
		Hotels:     append([]Hotel{}, b.Hotels...),
		Transports: append([]Transport{}, b.Transports...),
		Expenses:   append([]Expense{}, b.Expenses...),
		Tours:      append([]Tour{}, b.Tours...),
	}
}
