package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"estate/internal/model"
	"estate/internal/search"
)

// columns maps filterable fields to their properties table column
var columns = map[search.Field]string{
	search.FieldID:           "id",
	search.FieldIsActive:     "is_active",
	search.FieldIsFeatured:   "is_featured",
	search.FieldLocation:     "location",
	search.FieldGovernorate:  "governorate",
	search.FieldCity:         "city",
	search.FieldPropertyType: "property_type",
	search.FieldPriceType:    "price_type",
	search.FieldBedrooms:     "bedrooms",
	search.FieldBathrooms:    "bathrooms",
	search.FieldPrice:        "price",
	search.FieldArea:         "area",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere translates a predicate conjunction into a WHERE clause with
// $N placeholders starting at argIndex. It returns the clause, the bound
// arguments and the next free placeholder index.
func buildWhere(preds []search.Predicate, argIndex int) (string, []interface{}, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	for _, p := range preds {
		column, ok := columns[p.Field]
		if !ok {
			return "", nil, argIndex, fmt.Errorf("unsupported filter field %q", p.Field)
		}

		switch p.Op {
		case search.OpEq:
			whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", column, argIndex))
			args = append(args, p.Value)
		case search.OpNeq:
			whereClauses = append(whereClauses, fmt.Sprintf("%s <> $%d", column, argIndex))
			args = append(args, p.Value)
		case search.OpGte:
			whereClauses = append(whereClauses, fmt.Sprintf("%s >= $%d", column, argIndex))
			args = append(args, p.Value)
		case search.OpLte:
			whereClauses = append(whereClauses, fmt.Sprintf("%s <= $%d", column, argIndex))
			args = append(args, p.Value)
		case search.OpContains:
			s, ok := p.Value.(string)
			if !ok {
				return "", nil, argIndex, fmt.Errorf("substring filter on %s needs a string, got %T", column, p.Value)
			}
			whereClauses = append(whereClauses, fmt.Sprintf("%s ILIKE $%d", column, argIndex))
			args = append(args, "%"+likeEscaper.Replace(s)+"%")
		default:
			return "", nil, argIndex, fmt.Errorf("unsupported operator %q", p.Op)
		}
		argIndex++
	}

	return strings.Join(whereClauses, " AND "), args, argIndex, nil
}

// setClause collects "column = $N" assignments for a partial update
type setClause struct {
	assignments []string
	args        []interface{}
	argIndex    int
}

func newSetClause() *setClause {
	return &setClause{argIndex: 1}
}

func (s *setClause) add(column string, value interface{}) {
	s.assignments = append(s.assignments, fmt.Sprintf("%s = $%d", column, s.argIndex))
	s.args = append(s.args, value)
	s.argIndex++
}

func (s *setClause) String() string {
	return strings.Join(s.assignments, ", ")
}

// addIf adds an assignment only when the patch field is set
func addIf[T any](s *setClause, column string, value *T) {
	if value != nil {
		s.add(column, *value)
	}
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
