package service

import (
	"math"
	"unicode/utf8"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
)

const (
	maxTextLength = 50
	minProdYear   = 2800
	maxProdYear   = currentYear
	minSpeed      = 0.01
	maxSpeed      = 0.99
	minCrewSize   = 1
	maxCrewSize   = 9999
)

// validateRequired fails when a field needed to create a ship is missing.
func validateRequired(p models.ShipPatch) error {
	if p.Name == nil || p.Planet == nil || p.ShipType == nil ||
		p.ProdDate == nil || p.Speed == nil || p.CrewSize == nil {
		return apperr.BadRequest("One of ship parameters is null.")
	}
	return nil
}

// validateFields checks every present field and reports the first violation.
// Absent fields are skipped.
func validateFields(p models.ShipPatch) error {
	if p.Name != nil && !validText(*p.Name) {
		return apperr.InvalidField("name")
	}
	if p.Planet != nil && !validText(*p.Planet) {
		return apperr.InvalidField("planet")
	}
	if p.ShipType != nil && !p.ShipType.Valid() {
		return apperr.InvalidField("shipType")
	}
	if p.ProdDate != nil {
		if y := p.ProdDate.UTC().Year(); y < minProdYear || y > maxProdYear {
			return apperr.InvalidField("prodDate")
		}
	}
	if p.Speed != nil {
		if s := *p.Speed; math.IsNaN(s) || s < minSpeed || s > maxSpeed {
			return apperr.InvalidField("speed")
		}
	}
	if p.CrewSize != nil {
		if c := *p.CrewSize; c < minCrewSize || c > maxCrewSize {
			return apperr.InvalidField("crewSize")
		}
	}
	return nil
}

func validText(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= maxTextLength
}
