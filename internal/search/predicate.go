package search

import (
	"fmt"
	"strings"
)

// Field is a filterable property column
type Field string

const (
	FieldID           Field = "id"
	FieldIsActive     Field = "is_active"
	FieldIsFeatured   Field = "is_featured"
	FieldLocation     Field = "location"
	FieldGovernorate  Field = "governorate"
	FieldCity         Field = "city"
	FieldPropertyType Field = "property_type"
	FieldPriceType    Field = "price_type"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldPrice        Field = "price"
	FieldArea         Field = "area"
)

// Op is a comparison operator
type Op string

const (
	OpEq       Op = "eq"
	OpNeq      Op = "neq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpContains Op = "contains" // case-insensitive substring
)

// Predicate is a single condition over a property field. A list of
// predicates is always combined with AND.
type Predicate struct {
	Field Field
	Op    Op
	Value interface{}
}

func Eq(f Field, v interface{}) Predicate  { return Predicate{Field: f, Op: OpEq, Value: v} }
func Neq(f Field, v interface{}) Predicate { return Predicate{Field: f, Op: OpNeq, Value: v} }
func Gte(f Field, v interface{}) Predicate { return Predicate{Field: f, Op: OpGte, Value: v} }
func Lte(f Field, v interface{}) Predicate { return Predicate{Field: f, Op: OpLte, Value: v} }

func Contains(f Field, s string) Predicate {
	return Predicate{Field: f, Op: OpContains, Value: s}
}

var opSymbols = map[Op]string{
	OpEq:       "=",
	OpNeq:      "<>",
	OpGte:      ">=",
	OpLte:      "<=",
	OpContains: "~",
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %v", p.Field, opSymbols[p.Op], p.Value)
}

// Describe joins predicates for log output
func Describe(preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
	}
	return strings.Join(parts, " AND ")
}

// Query is a predicate conjunction run against the property collection.
// Results are always ordered newest first. Limit <= 0 means unlimited.
type Query struct {
	Where []Predicate
	Limit int
}

// Active is the visibility rule applied to every public query
func Active() Predicate {
	return Eq(FieldIsActive, true)
}
