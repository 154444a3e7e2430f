package query

import (
	"math"
	"sort"
	"strings"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
)

// Order selects the field ships are sorted by (always ascending).
type Order string

const (
	OrderID       Order = "ID"
	OrderSpeed    Order = "SPEED"
	OrderCrewSize Order = "CREW_SIZE"
	OrderRating   Order = "RATING"
	OrderDate     Order = "DATE"
)

// DefaultPageSize is used when the client does not send pageSize.
const DefaultPageSize = 3

var orderFields = map[Order]Field{
	OrderID:       FieldID,
	OrderSpeed:    FieldSpeed,
	OrderCrewSize: FieldCrewSize,
	OrderRating:   FieldRating,
	OrderDate:     FieldProdDate,
}

// ParseOrder accepts either the enum name (ID, SPEED, CREW_SIZE, RATING, DATE)
// or the JSON field name (id, speed, crewSize, rating, prodDate), ignoring case.
// An empty string selects OrderID.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ID":
		return OrderID, nil
	case "SPEED":
		return OrderSpeed, nil
	case "CREW_SIZE", "CREWSIZE":
		return OrderCrewSize, nil
	case "RATING":
		return OrderRating, nil
	case "DATE", "PRODDATE", "PROD_DATE":
		return OrderDate, nil
	}
	return "", apperr.BadRequest("order %q is not valid.", s)
}

// Field returns the column the order sorts by.
func (o Order) Field() Field {
	if f, ok := orderFields[o]; ok {
		return f
	}
	return FieldID
}

// OrderBy renders the SQL ORDER BY list. id breaks ties so pages are stable.
func (o Order) OrderBy() string {
	f := o.Field()
	if f == FieldID {
		return "id ASC"
	}
	return string(f) + " ASC, id ASC"
}

// Sort orders ships in place the same way OrderBy does in SQL.
func (o Order) Sort(ships []models.Ship) {
	f := o.Field()
	sort.SliceStable(ships, func(i, j int) bool {
		c, _ := compare(fieldValue(ships[i], f), fieldValue(ships[j], f))
		if c != 0 {
			return c < 0
		}
		return ships[i].ID < ships[j].ID
	})
}

// Page is a zero-based pagination directive.
type Page struct {
	Number int
	Size   int
}

// DefaultPage is the first page of DefaultPageSize ships.
func DefaultPage() Page {
	return Page{Number: 0, Size: DefaultPageSize}
}

// NewPage validates a page directive.
func NewPage(number, size int) (Page, error) {
	if number < 0 {
		return Page{}, apperr.BadRequest("pageNumber must not be negative.")
	}
	if size < 1 {
		return Page{}, apperr.BadRequest("pageSize must be positive.")
	}
	return Page{Number: number, Size: size}, nil
}

// Offset is the number of records skipped before this page. It saturates at
// math.MaxInt, so a page far past the end is simply empty.
func (p Page) Offset() int {
	if p.Size > 0 && p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// Slice returns the window of ships covered by the page.
func (p Page) Slice(ships []models.Ship) []models.Ship {
	start := p.Offset()
	if start >= len(ships) {
		return nil
	}
	end := len(ships)
	if p.Size < end-start {
		end = start + p.Size
	}
	return ships[start:end]
}

// Apply filters, sorts and paginates ships in memory. It never mutates the input.
func Apply(ships []models.Ship, spec Spec, order Order, page Page) []models.Ship {
	matched := Filter(ships, spec)
	order.Sort(matched)
	return page.Slice(matched)
}

// Filter returns a new slice with the ships matching spec.
func Filter(ships []models.Ship, spec Spec) []models.Ship {
	out := make([]models.Ship, 0, len(ships))
	for _, s := range ships {
		if spec.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
