package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/dto"
	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/query"
	"github.com/guttosm/shipregistry/internal/service"
)

// Handler provides HTTP handlers for the /ships resource.
//
// Responsibilities:
//   - Parse path ids, query filters and JSON bodies
//   - Delegate to the ship service
//   - Translate results into response DTOs
//
// Errors are attached with c.Error and rendered by middleware.ErrorHandler.
type Handler struct {
	svc service.ShipService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.ShipService) *Handler {
	return &Handler{svc: svc}
}

// ListShips godoc
// @Summary      List ships
// @Description  Returns one page of ships matching every supplied filter
// @Tags         ships
// @Produce      json
// @Param        name         query     string   false  "Name contains"
// @Param        planet       query     string   false  "Planet contains"
// @Param        shipType     query     string   false  "Ship type" Enums(TRANSPORT, MILITARY, MERCHANT)
// @Param        after        query     integer  false  "Produced at or after (epoch ms)"
// @Param        before       query     integer  false  "Produced at or before (epoch ms)"
// @Param        isUsed       query     boolean  false  "Used flag"
// @Param        minSpeed     query     number   false  "Minimum speed"
// @Param        maxSpeed     query     number   false  "Maximum speed"
// @Param        minCrewSize  query     integer  false  "Minimum crew size"
// @Param        maxCrewSize  query     integer  false  "Maximum crew size"
// @Param        minRating    query     number   false  "Minimum rating"
// @Param        maxRating    query     number   false  "Maximum rating"
// @Param        order        query     string   false  "Sort field" Enums(ID, SPEED, CREW_SIZE, RATING, DATE)
// @Param        pageNumber   query     integer  false  "Zero-based page" default(0)
// @Param        pageSize     query     integer  false  "Page size" default(3)
// @Success      200          {array}   dto.ShipResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      500          {object}  dto.ErrorResponse
// @Router       /ships [get]
func (h *Handler) ListShips(c *gin.Context) {
	p := newParams(c)
	spec := p.filters().Spec()
	order := p.order()
	page := p.page()
	if p.err != nil {
		_ = c.Error(p.err)
		return
	}

	ships, err := h.svc.List(c.Request.Context(), spec, order, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewShipResponses(ships))
}

// CountShips godoc
// @Summary      Count ships
// @Description  Counts every ship matching the filters; paging and order are ignored
// @Tags         ships
// @Produce      json
// @Param        name         query     string   false  "Name contains"
// @Param        planet       query     string   false  "Planet contains"
// @Param        shipType     query     string   false  "Ship type" Enums(TRANSPORT, MILITARY, MERCHANT)
// @Param        after        query     integer  false  "Produced at or after (epoch ms)"
// @Param        before       query     integer  false  "Produced at or before (epoch ms)"
// @Param        isUsed       query     boolean  false  "Used flag"
// @Param        minSpeed     query     number   false  "Minimum speed"
// @Param        maxSpeed     query     number   false  "Maximum speed"
// @Param        minCrewSize  query     integer  false  "Minimum crew size"
// @Param        maxCrewSize  query     integer  false  "Maximum crew size"
// @Param        minRating    query     number   false  "Minimum rating"
// @Param        maxRating    query     number   false  "Maximum rating"
// @Success      200          {integer} integer
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      500          {object}  dto.ErrorResponse
// @Router       /ships/count [get]
func (h *Handler) CountShips(c *gin.Context) {
	p := newParams(c)
	spec := p.filters().Spec()
	if p.err != nil {
		_ = c.Error(p.err)
		return
	}

	n, err := h.svc.Count(c.Request.Context(), spec)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// GetShip godoc
// @Summary      Get a ship
// @Tags         ships
// @Produce      json
// @Param        id   path      integer  true  "Ship id"
// @Success      200  {object}  dto.ShipResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ships/{id} [get]
func (h *Handler) GetShip(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ship, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewShipResponse(ship))
}

// CreateShip godoc
// @Summary      Create a ship
// @Description  Every field except isUsed is required; rating is computed by the server
// @Tags         ships
// @Accept       json
// @Produce      json
// @Param        ship  body      dto.ShipRequest  true  "Ship"
// @Success      200   {object}  dto.ShipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /ships [post]
func (h *Handler) CreateShip(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	ship, err := h.svc.Create(c.Request.Context(), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewShipResponse(ship))
}

// UpdateShip godoc
// @Summary      Update a ship
// @Description  Only supplied fields change; rating is recomputed from the merged ship
// @Tags         ships
// @Accept       json
// @Produce      json
// @Param        id    path      integer          true  "Ship id"
// @Param        ship  body      dto.ShipRequest  true  "Fields to change"
// @Success      200   {object}  dto.ShipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /ships/{id} [post]
func (h *Handler) UpdateShip(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	ship, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewShipResponse(ship))
}

// DeleteShip godoc
// @Summary      Delete a ship
// @Tags         ships
// @Param        id   path      integer  true  "Ship id"
// @Success      200  "Deleted"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ships/{id} [delete]
func (h *Handler) DeleteShip(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func bindPatch(c *gin.Context) (models.ShipPatch, bool) {
	var req dto.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.BadRequest("Request body is not valid."))
		return models.ShipPatch{}, false
	}
	return req.ToPatch(), true
}

// params reads optional query parameters and keeps the first parse failure.
// Empty values count as absent.
type params struct {
	c   *gin.Context
	err error
}

func newParams(c *gin.Context) *params { return &params{c: c} }

func (p *params) raw(name string) (string, bool) {
	v, ok := p.c.GetQuery(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *params) fail(name string) {
	if p.err == nil {
		p.err = apperr.BadRequest("Parameter %s is not valid.", name)
	}
}

// text keeps empty strings: an empty substring matches everything.
func (p *params) text(name string) *string {
	v, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}
	return &v
}

// integer parses a 32-bit value, the width of the crew_size column.
func (p *params) integer(name string) *int {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		p.fail(name)
		return nil
	}
	i := int(n)
	return &i
}

// index parses a paging value; any int is accepted here and range checked
// by query.NewPage.
func (p *params) index(name string) *int {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &n
}

func (p *params) integer64(name string) *int64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &n
}

func (p *params) number(name string) *float64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &f
}

func (p *params) flag(name string) *bool {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &b
}

func (p *params) shipType(name string) *models.ShipType {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	t, err := models.ParseShipType(v)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &t
}

func (p *params) filters() query.Filters {
	return query.Filters{
		Name:        p.text("name"),
		Planet:      p.text("planet"),
		ShipType:    p.shipType("shipType"),
		After:       p.integer64("after"),
		Before:      p.integer64("before"),
		IsUsed:      p.flag("isUsed"),
		MinSpeed:    p.number("minSpeed"),
		MaxSpeed:    p.number("maxSpeed"),
		MinCrewSize: p.integer("minCrewSize"),
		MaxCrewSize: p.integer("maxCrewSize"),
		MinRating:   p.number("minRating"),
		MaxRating:   p.number("maxRating"),
	}
}

func (p *params) order() query.Order {
	v, _ := p.raw("order")
	o, err := query.ParseOrder(v)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return query.OrderID
	}
	return o
}

func (p *params) page() query.Page {
	def := query.DefaultPage()
	number, size := def.Number, def.Size
	if n := p.index("pageNumber"); n != nil {
		number = *n
	}
	if s := p.index("pageSize"); s != nil {
		size = *s
	}
	if p.err != nil {
		return def
	}
	page, err := query.NewPage(number, size)
	if err != nil {
		p.err = err
		return def
	}
	return page
}
