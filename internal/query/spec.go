// Package query builds the filter, ordering and pagination directives used to
// list and count ships.
//
// A Spec is a conjunction of Predicates. The same Spec renders to a
// parameterised PostgreSQL WHERE clause and can be evaluated in memory, so SQL
// and non-SQL collaborators agree on what matches.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/shipregistry/internal/domain/models"
)

// Field is a filterable or sortable ship column.
type Field string

const (
	FieldID       Field = "id"
	FieldName     Field = "name"
	FieldPlanet   Field = "planet"
	FieldShipType Field = "ship_type"
	FieldProdDate Field = "prod_date"
	FieldIsUsed   Field = "is_used"
	FieldSpeed    Field = "speed"
	FieldCrewSize Field = "crew_size"
	FieldRating   Field = "rating"
)

// Op is a predicate operator.
type Op int

const (
	OpContains Op = iota // case-sensitive substring
	OpEq
	OpGte
	OpLte
)

func (o Op) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEq:
		return "eq"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Predicate is a single condition over one field.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}

// Spec is a conjunction of predicates. A nil or empty Spec matches every ship.
type Spec []Predicate

// And combines specs by conjunction. Nil specs ("no constraint") are skipped,
// so And() and And(nil, nil) both match everything.
func And(specs ...Spec) Spec {
	var out Spec
	for _, s := range specs {
		out = append(out, s...)
	}
	return out
}

// Empty reports whether the spec places no constraint.
func (s Spec) Empty() bool { return len(s) == 0 }

// Where renders the spec as a SQL boolean expression using positional
// placeholders starting at $start. It returns "TRUE" for an empty spec so
// callers can always write "WHERE " + clause.
func (s Spec) Where(start int) (string, []any) {
	if len(s) == 0 {
		return "TRUE", nil
	}
	parts := make([]string, 0, len(s))
	args := make([]any, 0, len(s))
	for i, p := range s {
		n := start + i
		switch p.Op {
		case OpContains:
			parts = append(parts, fmt.Sprintf("strpos(%s, $%d) > 0", p.Field, n))
		case OpEq:
			parts = append(parts, fmt.Sprintf("%s = $%d", p.Field, n))
		case OpGte:
			parts = append(parts, fmt.Sprintf("%s >= $%d", p.Field, n))
		case OpLte:
			parts = append(parts, fmt.Sprintf("%s <= $%d", p.Field, n))
		}
		args = append(args, p.Value)
	}
	return strings.Join(parts, " AND "), args
}

// Matches evaluates the spec against a ship in memory.
func (s Spec) Matches(ship models.Ship) bool {
	for _, p := range s {
		if !p.Matches(ship) {
			return false
		}
	}
	return true
}

// Matches evaluates a single predicate against a ship.
func (p Predicate) Matches(ship models.Ship) bool {
	v := fieldValue(ship, p.Field)
	switch p.Op {
	case OpContains:
		str, ok := v.(string)
		sub, ok2 := p.Value.(string)
		return ok && ok2 && strings.Contains(str, sub)
	case OpEq:
		c, ok := compare(v, p.Value)
		return ok && c == 0
	case OpGte:
		c, ok := compare(v, p.Value)
		return ok && c >= 0
	case OpLte:
		c, ok := compare(v, p.Value)
		return ok && c <= 0
	}
	return false
}

func fieldValue(s models.Ship, f Field) any {
	switch f {
	case FieldID:
		return s.ID
	case FieldName:
		return s.Name
	case FieldPlanet:
		return s.Planet
	case FieldShipType:
		return string(s.ShipType)
	case FieldProdDate:
		return s.ProdDate
	case FieldIsUsed:
		return s.IsUsed
	case FieldSpeed:
		return s.Speed
	case FieldCrewSize:
		return s.CrewSize
	case FieldRating:
		return s.Rating
	}
	return nil
}

// compare orders a against b when both hold the same concrete type.
func compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return strings.Compare(x, y), ok
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	case int:
		y, ok := b.(int)
		return cmpOrdered(x, y), ok
	case int64:
		y, ok := b.(int64)
		return cmpOrdered(x, y), ok
	case float64:
		y, ok := b.(float64)
		return cmpOrdered(x, y), ok
	case time.Time:
		y, ok := b.(time.Time)
		return x.Compare(y), ok
	}
	return 0, false
}

func cmpOrdered[T int | int64 | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
