package models

import "encoding/json"

// FilterKind tags the landing page's active selection criterion.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterCategory
	FilterQuery
)

func (k FilterKind) String() string {
	switch k {
	case FilterCategory:
		return "category"
	case FilterQuery:
		return "query"
	default:
		return "all"
	}
}

// MarshalJSON renders the kind as its name; view snapshots are the only
// consumers and never unmarshal it.
func (k FilterKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Filter is a tagged union: Category is meaningful only under
// FilterCategory, Query only under FilterQuery. Exactly one criterion is
// active at a time; constructors below are the only way transitions build
// one, which rules out mixed states.
type Filter struct {
	Kind     FilterKind `json:"kind"`
	Category string     `json:"category,omitempty"`
	Query    string     `json:"query,omitempty"`
}

func AllFilter() Filter { return Filter{Kind: FilterAll} }

func CategoryFilter(name string) Filter {
	return Filter{Kind: FilterCategory, Category: name}
}

func QueryFilter(query string) Filter {
	return Filter{Kind: FilterQuery, Query: query}
}
