package dto

import (
	"time"

	"github.com/guttosm/shipregistry/internal/domain/models"
)

// ShipRequest is the body accepted by POST /ships and POST /ships/{id}.
//
// Every field is optional at the decoding level; the service decides which
// ones are required. id and rating are accepted but ignored.
type ShipRequest struct {
	Name     *string  `json:"name" example:"Daedalus"`
	Planet   *string  `json:"planet" example:"Earth"`
	ShipType *string  `json:"shipType" example:"MILITARY" enums:"TRANSPORT,MILITARY,MERCHANT"`
	ProdDate *int64   `json:"prodDate" example:"32503680000000"` // epoch milliseconds
	IsUsed   *bool    `json:"isUsed" example:"false"`
	Speed    *float64 `json:"speed" example:"0.5"`
	CrewSize *int     `json:"crewSize" example:"120"`
	ID       *int64   `json:"id,omitempty" swaggerignore:"true"`
	Rating   *float64 `json:"rating,omitempty" swaggerignore:"true"`
}

// ToPatch converts the request into a models.ShipPatch.
// shipType is passed through as sent; unknown values are rejected by the
// service's field validation.
func (r ShipRequest) ToPatch() models.ShipPatch {
	p := models.ShipPatch{
		Name:     r.Name,
		Planet:   r.Planet,
		IsUsed:   r.IsUsed,
		Speed:    r.Speed,
		CrewSize: r.CrewSize,
	}
	if r.ShipType != nil {
		st := models.ShipType(*r.ShipType)
		p.ShipType = &st
	}
	if r.ProdDate != nil {
		d := time.UnixMilli(*r.ProdDate).UTC()
		p.ProdDate = &d
	}
	return p
}

// ShipResponse is the JSON representation of a stored ship.
type ShipResponse struct {
	ID       int64   `json:"id" example:"1"`
	Name     string  `json:"name" example:"Daedalus"`
	Planet   string  `json:"planet" example:"Earth"`
	ShipType string  `json:"shipType" example:"MILITARY"`
	ProdDate int64   `json:"prodDate" example:"32503680000000"` // epoch milliseconds
	IsUsed   bool    `json:"isUsed" example:"false"`
	Speed    float64 `json:"speed" example:"0.5"`
	CrewSize int     `json:"crewSize" example:"120"`
	Rating   float64 `json:"rating" example:"40"`
}

// NewShipResponse maps a domain ship to its wire form.
func NewShipResponse(s models.Ship) ShipResponse {
	return ShipResponse{
		ID:       s.ID,
		Name:     s.Name,
		Planet:   s.Planet,
		ShipType: string(s.ShipType),
		ProdDate: s.ProdDate.UnixMilli(),
		IsUsed:   s.IsUsed,
		Speed:    s.Speed,
		CrewSize: s.CrewSize,
		Rating:   s.Rating,
	}
}

// NewShipResponses maps a slice of ships, never returning nil so the API
// always renders a JSON array.
func NewShipResponses(ships []models.Ship) []ShipResponse {
	out := make([]ShipResponse, 0, len(ships))
	for _, s := range ships {
		out = append(out, NewShipResponse(s))
	}
	return out
}
