package carmuseum

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status string `json:"status"`
}

type brandsResponse struct {
	Data []Brand `json:"data"`
}

type garageResponse struct {
	Vehicles []GarageVehicle `json:"vehicles"`
}

type dealershipsResponse struct {
	Data []Dealership `json:"data"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// handleNews filters by the category query parameter. A missing parameter
// lists every article; a present but empty one is a literal filter that
// matches nothing.
func (a *App) handleNews(c echo.Context) error {
	params := c.QueryParams()
	category := params.Get("category")
	res := a.Query.ListNews(category)
	if category == "" && params.Has("category") {
		res.Articles = []NewsArticle{}
	}
	return c.JSON(http.StatusOK, res)
}

// handleModels narrows the encyclopedia list with the optional q parameter.
// Featured models are never searched.
func (a *App) handleModels(c echo.Context) error {
	res := a.Query.ListModels()
	if q := c.QueryParam("q"); q != "" {
		res.Encyclopedia = SearchModels(q, res.Encyclopedia)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) handleBrands(c echo.Context) error {
	return c.JSON(http.StatusOK, brandsResponse{Data: a.Query.ListBrands()})
}

func (a *App) handleGarage(c echo.Context) error {
	return c.JSON(http.StatusOK, garageResponse{Vehicles: a.Query.ListGarageVehicles()})
}

func (a *App) handleDealerships(c echo.Context) error {
	return c.JSON(http.StatusOK, dealershipsResponse{Data: a.Query.ListDealerships()})
}

func (a *App) handleProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Query.ListProjects())
}

func (a *App) handleSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Query.GetSummary())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Query.ListNews(CategoryAll).Articles)
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Query.ListNews(CategoryAll).Articles)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("uri", c.Request().RequestURI),
		)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, ErrorResponse{Error: msg, Status: code})
}
