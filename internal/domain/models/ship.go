package models

import (
	"fmt"
	"strings"
	"time"
)

// ShipType is the closed set of ship classes.
type ShipType string

const (
	ShipTypeTransport ShipType = "TRANSPORT"
	ShipTypeMilitary  ShipType = "MILITARY"
	ShipTypeMerchant  ShipType = "MERCHANT"
)

// ShipTypes lists every valid ShipType.
var ShipTypes = []ShipType{ShipTypeTransport, ShipTypeMilitary, ShipTypeMerchant}

// Valid reports whether t is one of the known ship types.
func (t ShipType) Valid() bool {
	switch t {
	case ShipTypeTransport, ShipTypeMilitary, ShipTypeMerchant:
		return true
	}
	return false
}

// ParseShipType matches s against the known ship types. Matching is exact
// and case-sensitive; surrounding whitespace is ignored.
func ParseShipType(s string) (ShipType, error) {
	t := ShipType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown ship type %q", s)
	}
	return t, nil
}

// Ship is a registered spaceship.
//
// Rating is derived from Speed, IsUsed and the ProdDate year and is
// recomputed by the service on every write; it is never taken from clients.
type Ship struct {
	ID       int64
	Name     string
	Planet   string
	ShipType ShipType
	ProdDate time.Time
	IsUsed   bool
	Speed    float64
	CrewSize int
	Rating   float64
}

// ShipPatch carries the optional fields of a create or update request.
// A nil field means "not supplied".
type ShipPatch struct {
	Name     *string
	Planet   *string
	ShipType *ShipType
	ProdDate *time.Time
	IsUsed   *bool
	Speed    *float64
	CrewSize *int
}

// ApplyTo overwrites the fields of s that are present in p.
func (p ShipPatch) ApplyTo(s *Ship) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Planet != nil {
		s.Planet = *p.Planet
	}
	if p.ShipType != nil {
		s.ShipType = *p.ShipType
	}
	if p.ProdDate != nil {
		s.ProdDate = *p.ProdDate
	}
	if p.IsUsed != nil {
		s.IsUsed = *p.IsUsed
	}
	if p.Speed != nil {
		s.Speed = *p.Speed
	}
	if p.CrewSize != nil {
		s.CrewSize = *p.CrewSize
	}
}
