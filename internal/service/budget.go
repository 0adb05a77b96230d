package service

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// normalizeBudget trims every line item, gives items without an id a fresh
// one and rejects items with a missing label, a negative or non-finite
// amount, or an id used twice in the same list.
func normalizeBudget(b domain.Budget) (domain.Budget, error) {
	var err error
	if b.Hotels, err = normalizeItems("hotels", b.Hotels, normalizeHotel); err != nil {
		return domain.Budget{}, err
	}
	if b.Transports, err = normalizeItems("transports", b.Transports, normalizeTransport); err != nil {
		return domain.Budget{}, err
	}
	if b.Expenses, err = normalizeItems("expenses", b.Expenses, normalizeExpense); err != nil {
		return domain.Budget{}, err
	}
	if b.Tours, err = normalizeItems("tours", b.Tours, normalizeTour); err != nil {
		return domain.Budget{}, err
	}
	return b, nil
}

// normalizeItems applies fix to each item. fix returns a pointer to the
// item's id so ids can be assigned and checked for duplicates here.
func normalizeItems[T any](list string, in []T, fix func(*T) (*uuid.UUID, error)) ([]T, error) {
	out := make([]T, 0, len(in))
	seen := make(map[uuid.UUID]bool, len(in))
	for i, item := range in {
		id, err := fix(&item)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %s", domain.ErrValidation, list, i, err)
		}
		if *id == uuid.Nil {
			*id = uuid.New()
		}
		if seen[*id] {
			return nil, fmt.Errorf("%w: %s[%d]: duplicate id %s", domain.ErrValidation, list, i, *id)
		}
		seen[*id] = true
		out = append(out, item)
	}
	return out, nil
}

func normalizeHotel(h *domain.Hotel) (*uuid.UUID, error) {
	h.Name = strings.TrimSpace(h.Name)
	h.URL = strings.TrimSpace(h.URL)
	if h.Name == "" {
		return nil, errors.New("name is required")
	}
	if h.URL != "" {
		u, err := url.Parse(h.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errors.New("url must be an absolute http or https URL")
		}
	}
	return &h.ID, checkAmount("price", h.Price)
}

func normalizeTransport(t *domain.Transport) (*uuid.UUID, error) {
	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		return nil, errors.New("category is required")
	}
	return &t.ID, checkAmount("amount", t.Amount)
}

func normalizeExpense(e *domain.Expense) (*uuid.UUID, error) {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	if e.Category == "" {
		return nil, errors.New("category is required")
	}
	return &e.ID, checkAmount("amount", e.Amount)
}

func normalizeTour(t *domain.Tour) (*uuid.UUID, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, errors.New("name is required")
	}
	return &t.ID, checkAmount("amount", t.Amount)
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a non-negative number", field)
	}
	return nil
}
