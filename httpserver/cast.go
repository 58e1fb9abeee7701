package httpserver

import (
	"net/http"

	"moviecast/cast"
	"moviecast/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterCastRoutes(g *echo.Group) {
	g.GET("/cast", s.handleListCast)
}

// handleListCast godoc
// @Summary List Cast Members
// @Description Cast of a movie, optionally filtered by role or actor name prefix
// @Tags cast
// @Produce json
// @Param movieId query int true "Movie id"
// @Param roleName query string false "Role name prefix, takes precedence over actorName"
// @Param actorName query string false "Actor name prefix"
// @Param movie query string false "Set to true to include movie metadata"
// @Success 200 {object} cast.Result
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/cast [get]
func (s *Server) handleListCast(c echo.Context) error {
	if s.CastService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "cast service not configured")
	}

	s.Logger.InfoContext(c.Request().Context(), "list cast",
		"request_id", requestID(c),
		"query", c.QueryString(),
	)

	q, err := cast.ParseQuery(cast.URLParams(c.QueryParams()))
	if err != nil {
		return err
	}

	result, err := s.CastService.ListCast(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return writeJSON(c, http.StatusOK, result)
}
