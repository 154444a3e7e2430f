package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/query"
	"github.com/guttosm/shipregistry/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func year(y int) time.Time { return time.Date(y, 6, 15, 0, 0, 0, 0, time.UTC) }

func fullPatch() models.ShipPatch {
	return models.ShipPatch{
		Name:     ptr("Daedalus"),
		Planet:   ptr("Earth"),
		ShipType: ptr(models.ShipTypeMilitary),
		ProdDate: ptr(year(3019)),
		IsUsed:   ptr(false),
		Speed:    ptr(0.5),
		CrewSize: ptr(120),
	}
}

func newService(seed ...models.Ship) ShipService {
	return NewShipService(storage.NewMemoryShipsRepository(seed...))
}

func TestRating(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		isUsed bool
		prod   time.Time
		want   float64
	}{
		{"new ship built this year", 0.5, false, year(3019), 40.00},
		{"used ship built last year", 0.5, true, year(3018), 10.00},
		{"old fast ship", 0.8, false, year(2995), 2.56},
		{"oldest allowed", 0.01, true, year(2800), 0.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rating(tt.speed, tt.isUsed, tt.prod); got != tt.want {
				t.Fatalf("Rating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.13},
		{1.005, 1.0},
		{2.675, 2.67},
		{0.004, 0.0},
		{0.005, 0.01},
		{-0.125, -0.13},
		{40, 40},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in, 2); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, apperr.ErrBadRequest) {
				t.Errorf("ParseID(%q) err = %v, want bad request", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestCreate_ComputesRatingAndAssignsID(t *testing.T) {
	svc := newService()
	ship, err := svc.Create(context.Background(), fullPatch())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ship.ID != 1 || ship.Rating != 40.00 {
		t.Fatalf("unexpected ship: %+v", ship)
	}
}

func TestCreate_IsUsedDefaultsToFalse(t *testing.T) {
	p := fullPatch()
	p.IsUsed = nil
	ship, err := newService().Create(context.Background(), p)
	if err != nil || ship.IsUsed {
		t.Fatalf("isUsed should default to false: %+v %v", ship, err)
	}
}

func TestCreate_MissingField(t *testing.T) {
	p := fullPatch()
	p.Planet = nil
	_, err := newService().Create(context.Background(), p)
	if !errors.Is(err, apperr.ErrBadRequest) || err.Error() != "One of ship parameters is null." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_FieldRanges(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(p *models.ShipPatch)
		field string
	}{
		{"empty name", func(p *models.ShipPatch) { p.Name = ptr("") }, "name"},
		{"long planet", func(p *models.ShipPatch) {
			p.Planet = ptr("123456789012345678901234567890123456789012345678901")
		}, "planet"},
		{"bad type", func(p *models.ShipPatch) { p.ShipType = ptr(models.ShipType("CARGO")) }, "shipType"},
		{"too old", func(p *models.ShipPatch) { p.ProdDate = ptr(year(2799)) }, "prodDate"},
		{"from the future", func(p *models.ShipPatch) { p.ProdDate = ptr(year(3020)) }, "prodDate"},
		{"too slow", func(p *models.ShipPatch) { p.Speed = ptr(0.0) }, "speed"},
		{"too fast", func(p *models.ShipPatch) { p.Speed = ptr(1.0) }, "speed"},
		{"crew too big", func(p *models.ShipPatch) { p.CrewSize = ptr(10000) }, "crewSize"},
		{"no crew", func(p *models.ShipPatch) { p.CrewSize = ptr(0) }, "crewSize"},
		{"first violation wins", func(p *models.ShipPatch) {
			p.Name = ptr("")
			p.CrewSize = ptr(0)
		}, "name"},
		{"planet before type", func(p *models.ShipPatch) {
			p.Planet = ptr("")
			p.ShipType = ptr(models.ShipType("CARGO"))
		}, "planet"},
		{"type before date", func(p *models.ShipPatch) {
			p.ShipType = ptr(models.ShipType("military"))
			p.ProdDate = ptr(year(2799))
		}, "shipType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullPatch()
			tt.mut(&p)
			_, err := newService().Create(context.Background(), p)
			if !errors.Is(err, apperr.ErrBadRequest) {
				t.Fatalf("want bad request, got %v", err)
			}
			if got := apperr.FieldOf(err); got != tt.field {
				t.Fatalf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestCreate_BoundaryValuesAccepted(t *testing.T) {
	p := fullPatch()
	p.Name = ptr("12345678901234567890123456789012345678901234567890")
	p.ProdDate = ptr(year(2800))
	p.Speed = ptr(0.99)
	p.CrewSize = ptr(9999)
	if _, err := newService().Create(context.Background(), p); err != nil {
		t.Fatalf("boundary values rejected: %v", err)
	}
}

func TestGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, fullPatch())

	got, err := svc.Get(ctx, created.ID)
	if err != nil || got.Name != "Daedalus" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := svc.Get(ctx, 404); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, fullPatch())

	updated, err := svc.Update(ctx, created.ID, models.ShipPatch{IsUsed: ptr(true), ProdDate: ptr(year(3018))})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Daedalus" || updated.CrewSize != 120 || updated.Speed != 0.5 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Rating != 10.00 {
		t.Fatalf("rating not recomputed: %v", updated.Rating)
	}
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, fullPatch())
	updated, err := svc.Update(ctx, created.ID, models.ShipPatch{})
	if err != nil || updated.Name != created.Name || updated.Rating != created.Rating ||
		!updated.ProdDate.Equal(created.ProdDate) || updated.CrewSize != created.CrewSize {
		t.Fatalf("empty update changed ship: %+v vs %+v (%v)", updated, created, err)
	}
}

func TestUpdate_InvalidBeforeMissing(t *testing.T) {
	_, err := newService().Update(context.Background(), 77, models.ShipPatch{CrewSize: ptr(10000)})
	if !errors.Is(err, apperr.ErrBadRequest) {
		t.Fatalf("validation must run before the existence check, got %v", err)
	}
	_, err = newService().Update(context.Background(), 77, models.ShipPatch{CrewSize: ptr(10)})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, fullPatch())

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("deleted ship still readable: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestListAndCount(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	for _, speed := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		p := fullPatch()
		p.Speed = ptr(speed)
		if _, err := svc.Create(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	spec := query.BySpeed(ptr(0.3), ptr(0.7))
	ships, err := svc.List(ctx, spec, query.OrderSpeed, query.Page{Number: 0, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ships) != 2 || ships[0].Speed != 0.3 || ships[1].Speed != 0.5 {
		t.Fatalf("unexpected page: %+v", ships)
	}

	n, err := svc.Count(ctx, spec)
	if err != nil || n != 3 {
		t.Fatalf("count must ignore paging: %d %v", n, err)
	}

	all, _ := svc.Count(ctx, nil)
	if all != 5 {
		t.Fatalf("count all = %d", all)
	}
}
