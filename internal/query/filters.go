package query

import (
	"time"

	"github.com/guttosm/shipregistry/internal/domain/models"
)

// ByName constrains ships whose name contains name. nil means no constraint.
func ByName(name *string) Spec {
	if name == nil {
		return nil
	}
	return Spec{{Field: FieldName, Op: OpContains, Value: *name}}
}

// ByPlanet constrains ships whose planet contains planet.
func ByPlanet(planet *string) Spec {
	if planet == nil {
		return nil
	}
	return Spec{{Field: FieldPlanet, Op: OpContains, Value: *planet}}
}

// ByShipType constrains ships of exactly the given type.
func ByShipType(t *models.ShipType) Spec {
	if t == nil {
		return nil
	}
	return Spec{{Field: FieldShipType, Op: OpEq, Value: string(*t)}}
}

// ByProdDate constrains the production date to [after, before]; both bounds
// are epoch milliseconds, inclusive and optional.
func ByProdDate(after, before *int64) Spec {
	var from, to *time.Time
	if after != nil {
		t := time.UnixMilli(*after).UTC()
		from = &t
	}
	if before != nil {
		t := time.UnixMilli(*before).UTC()
		to = &t
	}
	return between(FieldProdDate, from, to)
}

// ByUsage constrains the isUsed flag.
func ByUsage(isUsed *bool) Spec {
	if isUsed == nil {
		return nil
	}
	return Spec{{Field: FieldIsUsed, Op: OpEq, Value: *isUsed}}
}

// BySpeed constrains speed to the closed range [min, max]; either bound may be nil.
func BySpeed(min, max *float64) Spec {
	return between(FieldSpeed, min, max)
}

// ByCrewSize constrains crew size to the closed range [min, max].
func ByCrewSize(min, max *int) Spec {
	return between(FieldCrewSize, min, max)
}

// ByRating constrains rating to the closed range [min, max].
func ByRating(min, max *float64) Spec {
	return between(FieldRating, min, max)
}

func between[T any](f Field, min, max *T) Spec {
	if min == nil && max == nil {
		return nil
	}
	var s Spec
	if min != nil {
		s = append(s, Predicate{Field: f, Op: OpGte, Value: *min})
	}
	if max != nil {
		s = append(s, Predicate{Field: f, Op: OpLte, Value: *max})
	}
	return s
}

// Filters gathers every optional list/count parameter.
type Filters struct {
	Name        *string
	Planet      *string
	ShipType    *models.ShipType
	After       *int64
	Before      *int64
	IsUsed      *bool
	MinSpeed    *float64
	MaxSpeed    *float64
	MinCrewSize *int
	MaxCrewSize *int
	MinRating   *float64
	MaxRating   *float64
}

// Spec composes every set filter into one conjunction.
func (f Filters) Spec() Spec {
	return And(
		ByName(f.Name),
		ByPlanet(f.Planet),
		ByShipType(f.ShipType),
		ByUsage(f.IsUsed),
		ByProdDate(f.After, f.Before),
		BySpeed(f.MinSpeed, f.MaxSpeed),
		ByCrewSize(f.MinCrewSize, f.MaxCrewSize),
		ByRating(f.MinRating, f.MaxRating),
	)
}
