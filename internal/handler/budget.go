package handler

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Budget is the JSON form of a trip's cost line items. In requests an item
// without an id is new and gets one assigned; responses always carry ids.
type Budget struct {
	Hotels     []Hotel     `json:"hotels"`
	Transports []Transport `json:"transports"`
	Expenses   []Expense   `json:"expenses"`
	Tours      []Tour      `json:"tours"`
}

type Hotel struct {
	Id    *openapi_types.UUID `json:"id,omitempty"`
	Name  string              `json:"name"`
	Url   *string             `json:"url,omitempty"`
	Price float64             `json:"price"`
}

type Transport struct {
	Id       *openapi_types.UUID `json:"id,omitempty"`
	Category string              `json:"category"`
	Amount   float64             `json:"amount"`
}

type Expense struct {
	Id          *openapi_types.UUID `json:"id,omitempty"`
	Category    string              `json:"category"`
	Description *string             `json:"description,omitempty"`
	Amount      float64             `json:"amount"`
}

type Tour struct {
	Id     *openapi_types.UUID `json:"id,omitempty"`
	Name   string              `json:"name"`
	Amount float64             `json:"amount"`
}

// requestToBudget maps a request budget onto the domain. A nil budget is
// an empty one.
func requestToBudget(b *Budget) domain.Budget {
	if b == nil {
		return domain.Budget{}
	}
	out := domain.Budget{
		Hotels:     make([]domain.Hotel, len(b.Hotels)),
		Transports: make([]domain.Transport, len(b.Transports)),
		Expenses:   make([]domain.Expense, len(b.Expenses)),
		Tours:      make([]domain.Tour, len(b.Tours)),
	}
	for i, h := range b.Hotels {
		out.Hotels[i] = domain.Hotel{ID: idOrNil(h.Id), Name: h.Name, URL: deref(h.Url), Price: h.Price}
	}
	for i, t := range b.Transports {
		out.Transports[i] = domain.Transport{ID: idOrNil(t.Id), Category: t.Category, Amount: t.Amount}
	}
	for i, e := range b.Expenses {
		out.Expenses[i] = domain.Expense{ID: idOrNil(e.Id), Category: e.Category, Description: deref(e.Description), Amount: e.Amount}
	}
	for i, t := range b.Tours {
		out.Tours[i] = domain.Tour{ID: idOrNil(t.Id), Name: t.Name, Amount: t.Amount}
	}
	return out
}

func budgetToResponse(b domain.Budget) Budget {
	out := Budget{
		Hotels:     make([]Hotel, len(b.Hotels)),
		Transports: make([]Transport, len(b.Transports)),
		Expenses:   make([]Expense, len(b.Expenses)),
		Tours:      make([]Tour, len(b.Tours)),
	}
	for i, h := range b.Hotels {
		out.Hotels[i] = Hotel{Id: &h.ID, Name: h.Name, Url: optional(h.URL), Price: h.Price}
	}
	for i, t := range b.Transports {
		out.Transports[i] = Transport{Id: &t.ID, Category: t.Category, Amount: t.Amount}
	}
	for i, e := range b.Expenses {
		out.Expenses[i] = Expense{Id: &e.ID, Category: e.Category, Description: optional(e.Description), Amount: e.Amount}
	}
	for i, t := range b.Tours {
		out.Tours[i] = Tour{Id: &t.ID, Name: t.Name, Amount: t.Amount}
	}
	return out
}

func idOrNil(id *openapi_types.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional returns nil for the empty string so omitempty drops the field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
