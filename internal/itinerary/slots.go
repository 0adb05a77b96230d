package itinerary

import (
	"cmp"
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Slot is one day of the itinerary with its three period columns, each
// ordered by ascending Order.
type Slot struct {
	Date      string            `json:"date"`
	Morning   []domain.Activity `json:"morning"`
	Afternoon []domain.Activity `json:"afternoon"`
	Night     []domain.Activity `json:"night"`
}

// Period returns the column for p.
func (s Slot) Period(p domain.Period) []domain.Activity {
	switch p {
	case domain.PeriodMorning:
		return s.Morning
	case domain.PeriodAfternoon:
		return s.Afternoon
	case domain.PeriodNight:
		return s.Night
	}
	return nil
}

// Grouping maps date, then period, to the activities in that slot.
type Grouping map[string]map[domain.Period][]domain.Activity

// Group buckets activities by date and period. Every date that has at least
// one activity gets all three period lists. Each list is sorted by Order;
// equal orders keep their relative position in activities.
func Group(activities []domain.Activity) Grouping {
	g := make(Grouping)
	for _, a := range activities {
		day, ok := g[a.Date]
		if !ok {
			day = emptyDay()
			g[a.Date] = day
		}
		day[a.Period] = append(day[a.Period], a)
	}
	for _, day := range g {
		for _, list := range day {
			sortByOrder(list)
		}
	}
	return g
}

// ListSlots returns one Slot per date in dates, in the same order. Dates
// without activities get three empty columns. Activities on dates outside
// dates are left out.
func ListSlots(dates []string, activities []domain.Activity) []Slot {
	g := Group(activities)
	out := make([]Slot, 0, len(dates))
	for _, date := range dates {
		day, ok := g[date]
		if !ok {
			day = emptyDay()
		}
		out = append(out, Slot{
			Date:      date,
			Morning:   day[domain.PeriodMorning],
			Afternoon: day[domain.PeriodAfternoon],
			Night:     day[domain.PeriodNight],
		})
	}
	return out
}

func emptyDay() map[domain.Period][]domain.Activity {
	day := make(map[domain.Period][]domain.Activity, len(domain.Periods))
	for _, p := range domain.Periods {
		day[p] = []domain.Activity{}
	}
	return day
}

func sortByOrder(list []domain.Activity) {
	slices.SortStableFunc(list, func(a, b domain.Activity) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
