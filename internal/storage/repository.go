package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/query"
	pq "github.com/lib/pq"
)

// maxPrealloc caps the slice capacity reserved from a client supplied page size.
const maxPrealloc = 64

// ShipsRepository defines the storage operations the ship service relies on.
//
// FindByID returns (nil, nil) when the ship does not exist.
type ShipsRepository interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*models.Ship, error)
	FindAll(ctx context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
	Save(ctx context.Context, ship models.Ship) (models.Ship, error)
	SaveAndFlush(ctx context.Context, ship models.Ship) (models.Ship, error)
	DeleteByID(ctx context.Context, id int64) error
}

const shipColumns = "id, name, planet, ship_type, prod_date, is_used, speed, crew_size, rating"

// pgCheckViolation is the SQLSTATE for CHECK constraint failures.
const pgCheckViolation = "23514"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type shipsRepository struct {
	db *sql.DB
}

func NewShipsRepository(db *sql.DB) ShipsRepository {
	return &shipsRepository{db: db}
}

// ExistsByID checks whether a ship with the given id is stored.
func (r *shipsRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ships WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists ship %d: %w", id, err)
	}
	return exists, nil
}

// FindByID loads one ship, or returns nil if it does not exist.
func (r *shipsRepository) FindByID(ctx context.Context, id int64) (*models.Ship, error) {
	return findByID(ctx, r.db, id)
}

func findByID(ctx context.Context, q querier, id int64) (*models.Ship, error) {
	row := q.QueryRowContext(ctx, `SELECT `+shipColumns+` FROM ships WHERE id = $1`, id)
	s, err := scanShip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ship %d: %w", id, err)
	}
	return &s, nil
}

// FindAll returns one page of ships matching spec, sorted by order.
func (r *shipsRepository) FindAll(ctx context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error) {
	where, args := spec.Where(1)
	limitAt := len(args) + 1
	stmt := fmt.Sprintf(
		`SELECT %s FROM ships WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		shipColumns, where, order.OrderBy(), limitAt, limitAt+1,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ships := make([]models.Ship, 0, min(page.Size, maxPrealloc))
	for rows.Next() {
		s, err := scanShip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ship: %w", err)
		}
		ships = append(ships, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	return ships, nil
}

// Count returns how many ships match spec, ignoring pagination.
func (r *shipsRepository) Count(ctx context.Context, spec query.Spec) (int64, error) {
	where, args := spec.Where(1)
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ships WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ships: %w", err)
	}
	return n, nil
}

// Save inserts the ship when it has no id yet, otherwise overwrites the stored row.
func (r *shipsRepository) Save(ctx context.Context, ship models.Ship) (models.Ship, error) {
	return save(ctx, r.db, ship)
}

// SaveAndFlush writes the ship inside a transaction, commits it and returns the
// row as stored by the database.
func (r *shipsRepository) SaveAndFlush(ctx context.Context, ship models.Ship) (models.Ship, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ship{}, fmt.Errorf("begin: %w", err)
	}

	saved, err := save(ctx, tx, ship)
	if err != nil {
		_ = tx.Rollback()
		return models.Ship{}, err
	}
	stored, err := findByID(ctx, tx, saved.ID)
	if err != nil {
		_ = tx.Rollback()
		return models.Ship{}, err
	}
	if stored == nil {
		_ = tx.Rollback()
		return models.Ship{}, fmt.Errorf("ship %d vanished before commit", saved.ID)
	}
	if err := tx.Commit(); err != nil {
		return models.Ship{}, fmt.Errorf("commit: %w", err)
	}
	return *stored, nil
}

func save(ctx context.Context, q querier, s models.Ship) (models.Ship, error) {
	if s.ID == 0 {
		err := q.QueryRowContext(ctx, `
			INSERT INTO ships (name, planet, ship_type, prod_date, is_used, speed, crew_size, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			s.Name, s.Planet, string(s.ShipType), s.ProdDate, s.IsUsed, s.Speed, s.CrewSize, s.Rating,
		).Scan(&s.ID)
		if err != nil {
			return models.Ship{}, translate("insert ship", err)
		}
		return s, nil
	}

	res, err := q.ExecContext(ctx, `
		UPDATE ships
		SET name = $1, planet = $2, ship_type = $3, prod_date = $4,
			is_used = $5, speed = $6, crew_size = $7, rating = $8
		WHERE id = $9`,
		s.Name, s.Planet, string(s.ShipType), s.ProdDate, s.IsUsed, s.Speed, s.CrewSize, s.Rating, s.ID,
	)
	if err != nil {
		return models.Ship{}, translate(fmt.Sprintf("update ship %d", s.ID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Ship{}, fmt.Errorf("update ship %d: %w", s.ID, err)
	}
	if n == 0 {
		return models.Ship{}, apperr.NotFound("Ship", s.ID)
	}
	return s, nil
}

// DeleteByID permanently removes a ship. Deleting a missing id is a NotFound.
func (r *shipsRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ship %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ship %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Ship", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShip(sc scanner) (models.Ship, error) {
	var (
		s        models.Ship
		shipType string
	)
	err := sc.Scan(&s.ID, &s.Name, &s.Planet, &shipType, &s.ProdDate, &s.IsUsed, &s.Speed, &s.CrewSize, &s.Rating)
	if err != nil {
		return models.Ship{}, err
	}
	s.ShipType = models.ShipType(shipType)
	s.ProdDate = s.ProdDate.UTC()
	return s, nil
}

// translate maps CHECK constraint failures to bad requests; the table
// constraints mirror the service validation rules.
func translate(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgCheckViolation {
		return apperr.BadRequest("ship violates constraint %s.", pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}
