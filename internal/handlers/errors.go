package handlers

import (
	"net/http"

	"shopadmin/internal/common"

	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto HTTP status codes. Anything outside the
// known taxonomy is a 500 with a generic message.
func httpError(err error, fallback string) *echo.HTTPError {
	switch {
	case common.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case common.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case common.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}
