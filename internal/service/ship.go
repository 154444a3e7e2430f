package service

import (
	"context"
	"strconv"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/logger"
	"github.com/guttosm/shipregistry/internal/query"
	"github.com/guttosm/shipregistry/internal/storage"
	"github.com/rs/zerolog"
)

// ShipService defines the business operations on ships.
// HTTP handlers and the importer depend on this interface, never on storage.
type ShipService interface {
	List(ctx context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
	Get(ctx context.Context, id int64) (models.Ship, error)
	Create(ctx context.Context, p models.ShipPatch) (models.Ship, error)
	Update(ctx context.Context, id int64, p models.ShipPatch) (models.Ship, error)
	Delete(ctx context.Context, id int64) error
}

type shipService struct {
	repo storage.ShipsRepository
	log  zerolog.Logger
}

func NewShipService(repo storage.ShipsRepository) ShipService {
	return &shipService{repo: repo, log: logger.For("ship-service")}
}

// ParseID converts a path id into a ship id. Empty, "0", negative and
// non-numeric ids are bad requests.
func ParseID(raw string) (int64, error) {
	if raw == "" || raw == "0" {
		return 0, apperr.BadRequest("Ship not found")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Id is not correct.")
	}
	return id, nil
}

func (s *shipService) List(ctx context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error) {
	return s.repo.FindAll(ctx, spec, order, page)
}

func (s *shipService) Count(ctx context.Context, spec query.Spec) (int64, error) {
	return s.repo.Count(ctx, spec)
}

func (s *shipService) Get(ctx context.Context, id int64) (models.Ship, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return models.Ship{}, err
	}
	ship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Ship{}, err
	}
	if ship == nil {
		return models.Ship{}, apperr.NotFound("Ship", id)
	}
	return *ship, nil
}

// Create validates a complete ship, computes its rating and persists it.
func (s *shipService) Create(ctx context.Context, p models.ShipPatch) (models.Ship, error) {
	if err := validateRequired(p); err != nil {
		return models.Ship{}, err
	}
	if err := validateFields(p); err != nil {
		return models.Ship{}, err
	}

	var ship models.Ship
	p.ApplyTo(&ship)
	ship.Rating = Rating(ship.Speed, ship.IsUsed, ship.ProdDate)

	saved, err := s.repo.SaveAndFlush(ctx, ship)
	if err != nil {
		return models.Ship{}, err
	}
	s.log.Info().Int64("id", saved.ID).Float64("rating", saved.Rating).Msg("ship created")
	return saved, nil
}

// Update validates the supplied fields, merges them onto the stored ship and
// recomputes the rating from the merged values. Validation runs before the
// existence check, so an invalid body on a missing id is a bad request.
func (s *shipService) Update(ctx context.Context, id int64, p models.ShipPatch) (models.Ship, error) {
	if err := validateFields(p); err != nil {
		return models.Ship{}, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Ship{}, err
	}

	p.ApplyTo(&current)
	current.Rating = Rating(current.Speed, current.IsUsed, current.ProdDate)

	saved, err := s.repo.Save(ctx, current)
	if err != nil {
		return models.Ship{}, err
	}
	s.log.Info().Int64("id", saved.ID).Float64("rating", saved.Rating).Msg("ship updated")
	return saved, nil
}

func (s *shipService) Delete(ctx context.Context, id int64) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("id", id).Msg("ship deleted")
	return nil
}

func (s *shipService) mustExist(ctx context.Context, id int64) error {
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Ship", id)
	}
	return nil
}
