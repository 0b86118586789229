package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"winedash/internal/engine"
	"winedash/internal/models"
)

// Handler serves the dashboard API. It answers 503 until SetStore is called.
type Handler struct {
	store atomic.Pointer[engine.ColumnStore]
}

func NewHandler(store *engine.ColumnStore) *Handler {
	h := &Handler{}
	if store != nil {
		h.store.Store(store)
	}
	return h
}

// SetStore publishes the loaded record set.
func (h *Handler) SetStore(store *engine.ColumnStore) {
	h.store.Store(store)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/filters", h.GetFilters)
	api.GET("/wines", h.GetWines)
	api.GET("/correlation", h.GetCorrelation)
	api.GET("/provinces/:measure", h.GetProvinceMeans)
	api.GET("/designations", h.GetDesignationStats)
	api.GET("/dashboard", h.GetDashboard)
	api.POST("/dashboard", h.PostDashboard)
	api.GET("/export/:format", h.Export)
	api.GET("/charts/:name", h.Chart)
}

var errLoading = echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")

func (h *Handler) loaded() (*engine.ColumnStore, error) {
	cs := h.store.Load()
	if cs == nil {
		return nil, errLoading
	}
	return cs, nil
}

// selectionFromQuery reads repeated province/designation parameters.
// An absent parameter selects every value; a parameter with only empty
// values selects none.
func selectionFromQuery(c echo.Context, cs *engine.ColumnStore) models.Selection {
	sel := cs.AllSelected()
	params := c.QueryParams()
	if vals, ok := params["province"]; ok {
		sel.Provinces = nonEmpty(vals)
	}
	if vals, ok := params["designation"]; ok {
		sel.Designations = nonEmpty(vals)
	}
	return sel
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// filtered resolves the store and the request's filter in one step.
func (h *Handler) filtered(c echo.Context) (*engine.ColumnStore, error) {
	cs, err := h.loaded()
	if err != nil {
		return nil, err
	}
	return engine.Filter(cs, selectionFromQuery(c, cs)), nil
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) Health(c echo.Context) error {
	cs, err := h.loaded()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "rows": cs.Len()})
}

func (h *Handler) GetFilters(c echo.Context) error {
	cs, err := h.loaded()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cs.FilterOptions())
}

func (h *Handler) GetWines(c echo.Context) error {
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}
	wines := sub.Wines()
	total := len(wines)
	limit, offset := getPaginationParams(c, total)

	page := []models.Wine{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = wines[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   page,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetCorrelation(c echo.Context) error {
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"correlation": engine.Correlation(sub),
		"count":       sub.Len(),
	})
}

// GetProvinceMeans returns the average price or points per province,
// highest first.
func (h *Handler) GetProvinceMeans(c echo.Context) error {
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}
	groups, err := engine.GroupMeans(sub, engine.Province, engine.Field(c.Param("measure")))
	if errors.Is(err, engine.ErrUnknownField) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *Handler) GetDesignationStats(c echo.Context) error {
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.DesignationStats(sub))
}

func (h *Handler) GetDashboard(c echo.Context) error {
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub.Aggregate())
}

// dashboardRequest distinguishes an omitted list (everything) from an empty
// one (nothing).
type dashboardRequest struct {
	Provinces    *[]string `json:"provinces"`
	Designations *[]string `json:"designations"`
}

func (h *Handler) PostDashboard(c echo.Context) error {
	cs, err := h.loaded()
	if err != nil {
		return err
	}
	var req dashboardRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	sel := cs.AllSelected()
	if req.Provinces != nil {
		sel.Provinces = *req.Provinces
	}
	if req.Designations != nil {
		sel.Designations = *req.Designations
	}
	return c.JSON(http.StatusOK, engine.Filter(cs, sel).Aggregate())
}
