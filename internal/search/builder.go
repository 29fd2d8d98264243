package search

import (
	"fmt"
	"strings"
)

// LocationMatch selects how the location filter compares values
type LocationMatch string

const (
	// LocationSubstring matches case-insensitively anywhere in the location,
	// so "Nasr" finds "Nasr City".
	LocationSubstring LocationMatch = "substring"
	// LocationExact requires the location to equal the filter value
	LocationExact LocationMatch = "exact"
)

// ParseLocationMatch validates a configured location match mode
func ParseLocationMatch(s string) (LocationMatch, error) {
	switch LocationMatch(strings.ToLower(strings.TrimSpace(s))) {
	case LocationSubstring, "":
		return LocationSubstring, nil
	case LocationExact:
		return LocationExact, nil
	default:
		return "", fmt.Errorf("unknown location match mode %q (want substring or exact)", s)
	}
}

// Scope decides whether the visibility rule applies
type Scope int

const (
	// Public queries only ever see active listings
	Public Scope = iota
	// Admin queries see every listing
	Admin
)

// Builder turns filters into predicate conjunctions. It is shared by every
// call site so location matching is the same everywhere.
type Builder struct {
	locationMatch LocationMatch
}

// NewBuilder creates a builder with the given location semantics
func NewBuilder(locationMatch LocationMatch) *Builder {
	if locationMatch == "" {
		locationMatch = LocationSubstring
	}
	return &Builder{locationMatch: locationMatch}
}

// LocationMatch returns the builder's location semantics
func (b *Builder) LocationMatch() LocationMatch {
	return b.locationMatch
}

// Build maps a filter to predicates in a fixed order: visibility, location,
// property type, price type, bedrooms, bathrooms, minimum price, maximum price.
func (b *Builder) Build(f Filter, scope Scope) []Predicate {
	preds := make([]Predicate, 0, 8)

	if scope == Public {
		preds = append(preds, Active())
	}

	if f.Location != "" {
		if b.locationMatch == LocationExact {
			preds = append(preds, Eq(FieldLocation, f.Location))
		} else {
			preds = append(preds, Contains(FieldLocation, f.Location))
		}
	}
	if f.PropertyType != "" {
		preds = append(preds, Eq(FieldPropertyType, f.PropertyType))
	}
	if f.PriceType != "" {
		preds = append(preds, Eq(FieldPriceType, f.PriceType))
	}
	if f.Bedrooms != nil {
		preds = append(preds, countPredicate(FieldBedrooms, *f.Bedrooms))
	}
	if f.Bathrooms != nil {
		preds = append(preds, countPredicate(FieldBathrooms, *f.Bathrooms))
	}
	if f.PriceMin != nil {
		preds = append(preds, Gte(FieldPrice, *f.PriceMin))
	}
	if f.PriceMax != nil {
		preds = append(preds, Lte(FieldPrice, *f.PriceMax))
	}

	return preds
}

func countPredicate(field Field, c Count) Predicate {
	if c.OrMore {
		return Gte(field, c.N)
	}
	return Eq(field, c.N)
}
