package search

import (
	"sort"
	"strings"

	"estate/internal/model"
)

// Matches reports whether p satisfies every predicate. A missing (NULL)
// field never matches, mirroring SQL comparison semantics.
func Matches(p *model.Property, preds []Predicate) bool {
	for _, pred := range preds {
		if !matchOne(p, pred) {
			return false
		}
	}
	return true
}

// Apply filters, orders newest first and limits properties in memory
func Apply(properties []model.Property, q Query) []model.Property {
	out := make([]model.Property, 0)
	for i := range properties {
		if Matches(&properties[i], q.Where) {
			out = append(out, properties[i])
		}
	}
	SortNewestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// SortNewestFirst orders by created_at descending, ties by id
func SortNewestFirst(properties []model.Property) {
	sort.SliceStable(properties, func(i, j int) bool {
		a, b := properties[i], properties[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func matchOne(p *model.Property, pred Predicate) bool {
	switch pred.Field {
	case FieldIsActive:
		return compareBool(p.IsActive, pred)
	case FieldIsFeatured:
		return compareBool(p.IsFeatured, pred)
	case FieldID:
		return compareString(p.ID, pred)
	case FieldLocation:
		return compareString(p.Location, pred)
	case FieldPropertyType:
		return compareString(p.PropertyType, pred)
	case FieldPriceType:
		return compareString(p.PriceType, pred)
	case FieldGovernorate:
		return p.Governorate != nil && compareString(*p.Governorate, pred)
	case FieldCity:
		return p.City != nil && compareString(*p.City, pred)
	case FieldPrice:
		return compareNumber(p.Price, pred)
	case FieldArea:
		return p.Area != nil && compareNumber(*p.Area, pred)
	case FieldBedrooms:
		return p.Bedrooms != nil && compareNumber(float64(*p.Bedrooms), pred)
	case FieldBathrooms:
		return p.Bathrooms != nil && compareNumber(float64(*p.Bathrooms), pred)
	default:
		return false
	}
}

func compareBool(v bool, pred Predicate) bool {
	want, ok := pred.Value.(bool)
	if !ok {
		return false
	}
	switch pred.Op {
	case OpEq:
		return v == want
	case OpNeq:
		return v != want
	default:
		return false
	}
}

func compareString(v string, pred Predicate) bool {
	want, ok := pred.Value.(string)
	if !ok {
		return false
	}
	switch pred.Op {
	case OpEq:
		return v == want
	case OpNeq:
		return v != want
	case OpContains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(want))
	default:
		return false
	}
}

func compareNumber(v float64, pred Predicate) bool {
	want, ok := toFloat(pred.Value)
	if !ok {
		return false
	}
	switch pred.Op {
	case OpEq:
		return v == want
	case OpNeq:
		return v != want
	case OpGte:
		return v >= want
	case OpLte:
		return v <= want
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
